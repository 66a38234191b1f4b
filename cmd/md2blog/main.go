package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerbose(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// commands lists the subcommand names. Anything else starting the argument
// list is an error, except flags, which go to publish.
var commands = map[string]bool{
	"publish": true,
	"remove":  true,
	"setup":   true,
	"watch":   true,
	"doctor":  true,
	"version": true,
	"help":    true,
}

// runMain dispatches args (including the program name) and returns the exit
// code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	cmd, rest := splitCommand(args[1:])
	if !isCommand(cmd) {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	var err error
	switch cmd {
	case "publish":
		err = runPublish(ctx, rest, env)
	case "remove":
		err = runRemove(ctx, rest, env)
	case "setup":
		err = runSetup(rest, env)
	case "watch":
		err = runWatch(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "md2blog %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	}

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(env.Stderr, "interrupted")
		return ExitGeneral
	default:
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
}

// splitCommand returns the command and its arguments. No arguments, or a
// flag first, means publish. -h and --help alone mean help.
func splitCommand(args []string) (string, []string) {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		return "help", args[1:]
	}
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "publish", args
	}
	return args[0], args[1:]
}

// isCommand reports whether name is a known subcommand.
func isCommand(name string) bool {
	return commands[name]
}

// hasVerbose reports whether -v or --verbose appears in args.
func hasVerbose(args []string) bool {
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
