package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/config"
)

// Directories created next to the root in local mode, or in the working
// directory in server mode.
const (
	logDirName      = "logs"
	markdownDirName = "markdown-posts"
)

// Prompts shown when values are missing from the flags.
const (
	promptRoot    = "Please specify a web root directory for this project (for example, /var/www): "
	promptTitle   = "Enter your blog title: "
	promptTagline = "Enter your blog tagline: "
)

// runSetup creates the site layout, the starter homepage and stylesheet,
// and writes the config file.
func runSetup(args []string, env *Environment) error {
	flags, err := parseSetupFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cwd, err := env.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	ask := newPrompter(env.Stdin, env.Stdout)

	root, base := flags.root, cwd
	switch flags.mode {
	case modeLocal:
		if root == "" {
			root = cwd
		}
		base = absFrom(cwd, root)
	case modeServer:
		if root == "" {
			if root, err = ask(promptRoot); err != nil {
				return err
			}
		}
	}
	if root == "" {
		return fmt.Errorf("%w: a web root directory is required", ErrUsage)
	}
	root = absFrom(cwd, root)

	title, tagline := flags.title, flags.tagline
	if title == "" {
		if title, err = ask(promptTitle); err != nil {
			return err
		}
		if tagline == "" {
			if tagline, err = ask(promptTagline); err != nil {
				return err
			}
		}
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: a blog title is required", ErrUsage)
	}

	cfg := config.NewLayout(root, filepath.Join(base, logDirName), filepath.Join(base, markdownDirName))
	res, err := md2blog.Scaffold(md2blog.ScaffoldOptions{
		Site:      siteConfig(cfg),
		Title:     title,
		Tagline:   tagline,
		AssetPath: flags.assetPath,
		Style:     flags.style,
		Template:  flags.template,
		Force:     flags.force,
	})
	if err != nil {
		return err
	}

	cfgPath, err := setupConfigPath(flags.common, env, cwd)
	if err != nil {
		return err
	}
	if err := config.SaveConfig(cfgPath, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if !flags.common.quiet {
		for _, dir := range res.Dirs {
			fmt.Fprintf(env.Stdout, "Created %s\n", dir)
		}
		fmt.Fprintf(env.Stdout, "Wrote %s\n", res.Homepage)
		if res.Stylesheet != "" {
			fmt.Fprintf(env.Stdout, "Wrote %s\n", res.Stylesheet)
		}
		fmt.Fprintf(env.Stdout, "Saved config to %s\n", cfgPath)
		fmt.Fprintf(env.Stdout, "\nDrop article folders into %s and run 'md2blog publish'.\n", cfg.MarkdownDir)
	}
	return nil
}

// setupConfigPath returns where setup writes the config: the --config or
// MD2BLOG_CONFIG value, else blog.yaml in the working directory. A bare
// name becomes <cwd>/<name>.yaml.
func setupConfigPath(common commonFlags, env *Environment, cwd string) (string, error) {
	envFile, err := resolvePath(env, common.envFile)
	if err != nil {
		return "", err
	}
	dotenv, err := readDotEnv(envFile)
	if err != nil {
		return "", err
	}

	name := configName(common.config, loadEnvConfig(dotenv))
	if strings.ContainsAny(name, `/\`) {
		return absFrom(cwd, name), nil
	}
	return filepath.Join(cwd, name+".yaml"), nil
}

// newPrompter returns a function asking a question on w and reading one
// line from r. The reader is shared so buffered input survives between
// questions.
func newPrompter(r io.Reader, w io.Writer) func(question string) (string, error) {
	if r == nil {
		r = strings.NewReader("")
	}
	br := bufio.NewReader(r)
	return func(question string) (string, error) {
		fmt.Fprint(w, question)
		line, err := br.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: no answer to %q", ErrUsage, strings.TrimSpace(question))
			}
			return "", fmt.Errorf("reading answer: %w", err)
		}
		return strings.TrimSpace(line), nil
	}
}

func absFrom(cwd, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(cwd, p)
}
