package main

import (
	"context"
	"fmt"
	"strings"

	md2blog "github.com/alnah/go-md2blog"
)

// notFoundMessage is printed when no preview card matches the title.
const notFoundMessage = "No such article was found. Please check the article name and try again."

// runRemove unpublishes the article named by the positional arguments.
// Several words are joined, so quoting the title is optional.
func runRemove(ctx context.Context, args []string, env *Environment) error {
	flags, words, err := parseRemoveFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	title := strings.Join(words, " ")
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: remove needs an article title", ErrUsage)
	}

	sc, err := loadSite(flags.common, env)
	if err != nil {
		return err
	}

	audit, closeAudit := openAudit(sc.cfg.LogDir, sc.logger)
	defer closeAudit()

	rm, err := md2blog.NewRemover(siteConfig(sc.cfg), siteOptions(sc, audit)...)
	if err != nil {
		return err
	}

	res, err := rm.Remove(ctx, title)
	if err != nil {
		return err
	}

	if !res.Found {
		fmt.Fprintln(env.Stdout, notFoundMessage)
		return nil
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Removed %s\n", res.Slug)
		if flags.common.verbose {
			fmt.Fprintf(env.Stdout, "  page removed: %t, assets removed: %t\n", res.PageRemoved, res.AssetsRemoved)
		}
	}
	return nil
}
