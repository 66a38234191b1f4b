package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  publish    Publish pending article folders (default)")
	fmt.Fprintln(w, "  remove     Unpublish an article by title")
	fmt.Fprintln(w, "  setup      Create the site layout, homepage and config")
	fmt.Fprintln(w, "  watch      Publish, then publish again on every change")
	fmt.Fprintln(w, "  doctor     Check config, directories and homepage")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2blog help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every site command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: blog)")
	fmt.Fprintln(w, "      --env-file <path>     Dotenv file with MD2BLOG_* variables (default: .env)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show diagnostics")
}

// printRenderUsage prints rendering flags shared by publish and watch.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --highlight           Highlight fenced code blocks")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style (implies --highlight)")
	fmt.Fprintln(w, "  -n, --preview-paragraphs <n>")
	fmt.Fprintln(w, "                            Paragraphs kept in homepage previews (1-20)")
}

// printPublishUsage prints usage for the publish command.
func printPublishUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog publish [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Publish every folder of the markdown directory not yet marked .PROCESSED.")
	fmt.Fprintln(w, "Each article gets a page in the posts directory, its files are copied to")
	fmt.Fprintln(w, "assets/<slug>/, and a preview card is added on top of the homepage.")
	fmt.Fprintln(w)
	printRenderUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printRemoveUsage prints usage for the remove command.
func printRemoveUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog remove <title> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Remove the preview card, page and assets of the article with this title.")
	fmt.Fprintln(w, "Matching is case-insensitive; spaces become hyphens.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printSetupUsage prints usage for the setup command.
func printSetupUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog setup [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create the site directories, a starter homepage and stylesheet, and the config.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  -m, --mode <s>            local: everything under the working directory")
	fmt.Fprintln(w, "                            server: web root elsewhere, logs and sources here")
	fmt.Fprintln(w, "      --root <dir>          Web root directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Homepage:")
	fmt.Fprintln(w, "      --title <s>           Blog title (prompted when empty)")
	fmt.Fprintln(w, "      --tagline <s>         Blog tagline")
	fmt.Fprintln(w, "      --style <name>        Stylesheet name (default: default)")
	fmt.Fprintln(w, "      --template <name>     Homepage template name (default: index)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with custom styles/ and templates/")
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing homepage and stylesheet")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog watch [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Publish pending folders, then watch the markdown directory and publish")
	fmt.Fprintln(w, "again after every burst of changes. Stop with Ctrl+C.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --debounce <d>        Quiet period before publishing (default: 2s)")
	fmt.Fprintln(w)
	printRenderUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the config loads, the site directories are writable and the")
	fmt.Fprintln(w, "homepage can host preview cards.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "publish":
		printPublishUsage(env.Stdout)
	case "remove":
		printRemoveUsage(env.Stdout)
	case "setup":
		printSetupUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2blog version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2blog help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
