package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	flag "github.com/spf13/pflag"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/config"
	"github.com/alnah/go-md2blog/internal/feed"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Config   configInfo   `json:"config"`
	Dirs     []dirInfo    `json:"directories,omitempty"`
	Homepage homepageInfo `json:"homepage"`
	Pending  int          `json:"pending_folders"`
	Env      envInfo      `json:"environment"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// configInfo holds config resolution results.
type configInfo struct {
	Name   string `json:"name"`
	Loaded bool   `json:"loaded"`
}

// dirInfo holds one site directory check.
type dirInfo struct {
	Role     string `json:"role"`
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Writable bool   `json:"writable"`
}

// homepageInfo holds the homepage check.
type homepageInfo struct {
	Path     string `json:"path,omitempty"`
	Valid    bool   `json:"valid"`
	Articles int    `json:"articles"`
}

// envInfo holds platform details.
type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	result := runDoctor(flags.common, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(common commonFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env:    envInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	// Diagnostics belong in the report, not on stderr.
	common.quiet, common.verbose = true, false
	sc, err := loadSite(common, env)
	if err != nil {
		result.Config.Name = common.config
		result.Errors = append(result.Errors, err.Error()+hintFor(err))
		result.Status = "errors"
		return result
	}
	result.Config = configInfo{Name: sc.cfgName, Loaded: true}

	checkDirs(result, sc.cfg)
	checkHomepage(result, sc.cfg)
	checkSources(result, sc.cfg)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkDirs verifies every site directory exists and is writable. A missing
// log directory is only a warning: it is created on first publish.
func checkDirs(result *doctorResult, cfg *config.Config) {
	roles := []struct {
		role string
		path string
	}{
		{"root", cfg.RootDir},
		{"posts", cfg.PostsDir},
		{"assets", cfg.AssetsDir},
		{"log", cfg.LogDir},
		{"markdown", cfg.MarkdownDir},
	}
	for _, r := range roles {
		d := dirInfo{Role: r.role, Path: r.path}
		info, err := os.Stat(r.path)
		d.Exists = err == nil && info.IsDir()
		if d.Exists {
			d.Writable = isWritable(r.path)
		}
		result.Dirs = append(result.Dirs, d)

		switch {
		case !d.Exists && r.role == "log":
			result.Warnings = append(result.Warnings, fmt.Sprintf("log directory %s does not exist yet", r.path))
		case !d.Exists:
			result.Errors = append(result.Errors, fmt.Sprintf("%s directory %s does not exist", r.role, r.path))
		case !d.Writable:
			result.Errors = append(result.Errors, fmt.Sprintf("%s directory %s is not writable", r.role, r.path))
		}
	}
}

// checkHomepage loads index.html and checks it can host preview cards.
func checkHomepage(result *doctorResult, cfg *config.Config) {
	site := siteConfig(cfg)
	result.Homepage.Path = site.HomepagePath()

	home, err := feed.Load(site.HomepagePath(), nil)
	if err != nil {
		result.Errors = append(result.Errors, err.Error()+hintFor(err))
		return
	}
	result.Homepage.Valid = true
	result.Homepage.Articles = len(home.Slugs())
}

// checkSources counts the folders waiting to be published.
func checkSources(result *doctorResult, cfg *config.Config) {
	folders, err := md2blog.ScanSources(cfg.MarkdownDir)
	if err != nil {
		// Already reported by checkDirs when the directory is missing.
		if !errors.Is(err, os.ErrNotExist) {
			result.Errors = append(result.Errors, err.Error())
		}
		return
	}
	result.Pending = len(folders)
}

// isWritable creates and removes a probe file in dir.
func isWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".md2blog-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2blog doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	if r.Config.Loaded {
		fmt.Fprintf(w, "  [OK] Loaded %s\n", r.Config.Name)
	} else {
		fmt.Fprintln(w, "  [ERROR] Not loaded")
	}
	fmt.Fprintln(w)

	if len(r.Dirs) > 0 {
		fmt.Fprintln(w, "Directories")
		for _, d := range r.Dirs {
			switch {
			case d.Exists && d.Writable:
				fmt.Fprintf(w, "  [OK] %s: %s\n", d.Role, d.Path)
			case d.Exists:
				fmt.Fprintf(w, "  [ERROR] %s: %s (not writable)\n", d.Role, d.Path)
			default:
				fmt.Fprintf(w, "  [MISSING] %s: %s\n", d.Role, d.Path)
			}
		}
		fmt.Fprintln(w)
	}

	if r.Homepage.Path != "" {
		fmt.Fprintln(w, "Homepage")
		if r.Homepage.Valid {
			fmt.Fprintf(w, "  [OK] %s (%d articles)\n", r.Homepage.Path, r.Homepage.Articles)
		} else {
			fmt.Fprintf(w, "  [ERROR] %s\n", r.Homepage.Path)
		}
		fmt.Fprintf(w, "  [OK] Pending folders: %d\n", r.Pending)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to publish")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
