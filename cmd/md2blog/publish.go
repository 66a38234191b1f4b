package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	md2blog "github.com/alnah/go-md2blog"
)

// runPublish publishes every pending source folder.
func runPublish(ctx context.Context, args []string, env *Environment) error {
	flags, err := parsePublishFlags(args, env.Stderr)
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

	report, runErr := pub.Run(ctx)
	printReport(env, report, sc.cfg.RootDir, flags.common)
	if runErr != nil {
		return runErr
	}

	if len(report.Folders) == 0 && !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Nothing to publish in %s\n", sc.cfg.MarkdownDir)
	}
	if n := report.Count(md2blog.StatusFailed); n > 0 {
		return fmt.Errorf("%w: %d of %d left unprocessed", md2blog.ErrFoldersFailed, n, len(report.Folders))
	}
	return nil
}

// printReport writes one line per article, skipped and failed folder.
// Failures go to stderr and are shown even with --quiet.
func printReport(env *Environment, report *md2blog.PublishReport, root string, f commonFlags) {
	if report == nil {
		return
	}
	for _, folder := range report.Folders {
		switch folder.Status {
		case md2blog.StatusFailed:
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", folder.Name, folder.Err, hintFor(folder.Err))
		case md2blog.StatusSkipped:
			if !f.quiet {
				fmt.Fprintf(env.Stdout, "Skipped %s (%s)\n", folder.Name, folder.Reason)
			}
		case md2blog.StatusPublished:
			if !f.quiet {
				printArticles(env.Stdout, folder.Articles, root, f.verbose)
			}
		}
	}

	if !f.quiet && len(report.Folders) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d published, %d skipped, %d failed\n",
			report.Count(md2blog.StatusPublished),
			report.Count(md2blog.StatusSkipped),
			report.Count(md2blog.StatusFailed))
	}
}

func printArticles(w io.Writer, articles []md2blog.ArticleResult, root string, verbose bool) {
	for _, a := range articles {
		verb := "Published"
		if a.Updated {
			verb = "Updated"
		}
		page := a.PagePath
		if rel, err := filepath.Rel(root, a.PagePath); err == nil {
			page = rel
		}
		if verbose {
			fmt.Fprintf(w, "%s %s -> %s (preview %s)\n", verb, a.Source, page, a.Preview)
		} else {
			fmt.Fprintf(w, "%s %s -> %s\n", verb, a.Source, page)
		}
	}
}
