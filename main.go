package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blogcraft/blogcraft/app"
	"github.com/blogcraft/blogcraft/infra/auth"
	"github.com/blogcraft/blogcraft/infra/blogapi"
	"github.com/blogcraft/blogcraft/infra/cache"
	"github.com/blogcraft/blogcraft/infra/config"
	"github.com/blogcraft/blogcraft/infra/editor"
	"github.com/blogcraft/blogcraft/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: blogcraft [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("BlogCraft %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// 2. Build infrastructure.
	tokens := auth.NewFileTokenStore(cfg.TokenPath)
	client := blogapi.NewClient(cfg.ServerURL, tokens)

	// 3. Build services (concrete types satisfy app.* interfaces).
	postSvc := blogapi.NewPostService(client)
	accountSvc := blogapi.NewAccountService(client)
	stream := blogapi.NewStream(client)
	editorSvc := editor.NewEnvEditor()

	// 4. Seed the store from the snapshot cache so the feed renders
	// immediately; the live fetch replaces it.
	store := app.NewPostsStore()
	feedCache := cache.NewFeedCache(cfg.SnapshotPath)
	if posts, ok := feedCache.Load(); ok {
		store.SetPosts(posts)
	}

	// 5. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Posts:   postSvc,
		Account: accountSvc,
		Stream:  stream,
		Store:   store,
		Editor:  editorSvc,
		Cache:   feedCache,
	})

	// 6. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "blogcraft: %v\n", err)
		os.Exit(1)
	}
}
