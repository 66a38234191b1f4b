package main

import (
	"context"
	"fmt"
	"time"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/watch"
)

// runWatch publishes pending folders, then publishes again whenever the
// markdown directory changes, until ctx is canceled.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	sc, err := loadSite(flags.common, env)
	if err != nil {
		return err
	}
	if err := applyRenderFlags(flags.render, sc.cfg); err != nil {
		return err
	}

	audit, closeAudit := openAudit(sc.cfg.LogDir, sc.logger)
	defer closeAudit()

	pub, err := md2blog.NewPublisher(siteConfig(sc.cfg), siteOptions(sc, audit)...)
	if err != nil {
		return err
	}

	run := func(ctx context.Context) error {
		report, err := pub.Run(ctx)
		printReport(env, report, sc.cfg.RootDir, flags.common)
		if err != nil {
			return err
		}
		return report.Err()
	}

	w := watch.New(sc.cfg.MarkdownDir, run,
		watch.WithDebounce(watchDebounce(flags, sc.env)),
		watch.WithIgnore(md2blog.IsProcessed),
		watch.WithLogger(sc.logger),
	)

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (Ctrl+C to stop)\n", sc.cfg.MarkdownDir)
	}
	return w.Run(ctx)
}

// watchDebounce picks the debounce: flag, then MD2BLOG_WATCH_DEBOUNCE, then
// the watcher default.
func watchDebounce(f *watchFlags, env *envConfig) time.Duration {
	if f.debounce > 0 {
		return f.debounce
	}
	if env.Debounce > 0 {
		return env.Debounce
	}
	return watch.DefaultDebounce
}
