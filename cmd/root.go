// Package cmd implements the CLI command structure for ryo.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/ryo-go/internal/config"
	"github.com/nibzard/ryo-go/internal/container"
	"github.com/nibzard/ryo-go/internal/engine"
	"github.com/nibzard/ryo-go/internal/gamedefaults"
	"github.com/nibzard/ryo-go/internal/logging"
	"github.com/nibzard/ryo-go/internal/mediaconfig"
	"github.com/nibzard/ryo-go/internal/parallel"
	"github.com/nibzard/ryo-go/internal/scanner"
	"github.com/nibzard/ryo-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the ryo CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

// cli carries what every subcommand needs.
type cli struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	logger  *log.Logger
	stdout  io.Writer
	stderr  io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("ryo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	c := &cli{
		cfg:     cws.Config,
		sources: cws,
		logger:  logging.NewFromConfig(stderr, cws.Config.LogLevel, cws.Config.LogFormat, cws.Config.LogTimestamps, cws.Config.LogCaller),
		stdout:  stdout,
		stderr:  stderr,
	}

	subcommand := "scan"
	remaining := fs.Args()
	if len(remaining) > 0 {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}

	switch subcommand {
	case "scan":
		return c.scanCommand(remaining)
	case "resolve":
		return c.resolveCommand(remaining)
	case "groups":
		return c.groupsCommand(remaining)
	case "doctor":
		return c.doctorCommand(ctx, remaining)
	case "tui":
		return c.tuiCommand(ctx, remaining)
	case "config":
		return c.configCommand(remaining)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// buildEngine scans the configured media plus extraAudio and seals the
// engine. Per-path failures are logged and counted, never fatal.
func (c *cli) buildEngine(extraAudio []string) (*engine.Engine, int) {
	eng := engine.New(c.cfg.Game, gamedefaults.Default(), engine.WithLogger(c.logger))
	failures := 0

	report := func(kind, path string, err error) {
		if err == nil {
			return
		}
		failures++
		if errors.Is(err, scanner.ErrPathNotFound) {
			c.logger.Warn(kind+" path skipped", "path", path)
			return
		}
		c.logger.Error(kind+" path had errors", "path", path, "err", err)
	}

	for _, path := range append(slices.Clone(c.cfg.AudioPaths), extraAudio...) {
		report("audio", path, eng.AddAudioPath(path, mediaconfig.AudioConfig{}))
	}
	for _, path := range c.cfg.MoviePaths {
		report("movie", path, eng.AddMoviePath(path, mediaconfig.MovieConfig{}))
	}
	targets := make([]string, 0, len(c.cfg.MovieBinds))
	for target := range c.cfg.MovieBinds {
		targets = append(targets, target)
	}
	slices.Sort(targets)
	for _, target := range targets {
		report("movie bind", target, eng.AddMovieBind(target, c.cfg.MovieBinds[target]))
	}

	eng.Seal()
	return eng, failures
}

// scanCommand scans media and prints every container.
func (c *cli) scanCommand(args []string) error {
	fs := flag.NewFlagSet("ryo scan", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	verbose := fs.Bool("files", false, "List pooled files for each container")
	if err := fs.Parse(args); err != nil {
		return err
	}

	eng, failures := c.buildEngine(fs.Args())
	stats := eng.Stats()

	fmt.Fprintf(c.stdout, "Game: %s\n", displayGame(eng.Game()))
	fmt.Fprintf(c.stdout, "Cues: %d  Files: %d  Data: %d  Movies: %d  Containers: %d\n\n",
		stats.Cues, stats.Files, stats.Data, stats.Movies, stats.Containers)
	for _, ct := range eng.Containers() {
		fmt.Fprintf(c.stdout, "%s\n", describeContainer(ct))
		if *verbose {
			for _, f := range ct.Files() {
				fmt.Fprintf(c.stdout, "    %s\n", f)
			}
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d media path(s) had errors", failures)
	}
	return nil
}

// resolveCommand looks up a container the way the game would and draws
// replacement paths from it.
func (c *cli) resolveCommand(args []string) error {
	fs := flag.NewFlagSet("ryo resolve", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	cue := fs.String("cue", "", "Cue name the game plays")
	acb := fs.String("acb", "", "ACB (bank) name of the cue")
	file := fs.String("file", "", "Game audio file path")
	data := fs.String("data", "", "Audio data name")
	movie := fs.String("movie", "", "Game movie path")
	count := fs.Int("n", 1, "Number of selections to draw")
	raw := fs.Bool("raw", false, "Skip the game's cue renaming")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *count < 1 {
		return fmt.Errorf("-n must be at least 1")
	}

	eng, _ := c.buildEngine(fs.Args())

	var (
		ct    container.Container
		found bool
	)
	switch {
	case *cue != "":
		name := *cue
		if !*raw {
			name = eng.RewriteCue(*cue, *acb)
			if name != *cue {
				fmt.Fprintf(c.stdout, "Cue %q is looked up as %q\n", *cue, name)
			}
		}
		ct, found = asContainer[*container.AudioContainer](eng.TryGetCueContainer(name, *acb))
	case *file != "":
		ct, found = asContainer[*container.AudioContainer](eng.TryGetFileContainer(*file))
	case *data != "":
		ct, found = asContainer[*container.AudioContainer](eng.TryGetDataContainer(*data))
	case *movie != "":
		ct, found = asContainer[*container.MovieContainer](eng.TryGetMovie(*movie))
	default:
		return fmt.Errorf("one of -cue, -file, -data or -movie is required")
	}
	if !found {
		return fmt.Errorf("no enabled replacement found")
	}

	fmt.Fprintf(c.stdout, "%s\n", describeContainer(ct))
	for i := 0; i < *count; i++ {
		path, err := ct.SelectMediaPath()
		if err != nil {
			return fmt.Errorf("selecting media: %w", err)
		}
		fmt.Fprintf(c.stdout, "  %s\n", path)
	}
	return nil
}

// asContainer widens a typed lookup result to the Container interface
// without turning a nil pointer into a non-nil interface.
func asContainer[C container.Container](ct C, ok bool) (container.Container, bool) {
	if !ok {
		return nil, false
	}
	return ct, true
}

// groupsCommand lists groups, optionally toggling some first.
func (c *cli) groupsCommand(args []string) error {
	fs := flag.NewFlagSet("ryo groups", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	enable := fs.String("enable", "", "Enable the group with this id")
	disable := fs.String("disable", "", "Disable the group with this id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	eng, _ := c.buildEngine(fs.Args())
	if *disable != "" {
		eng.GetContainerGroup(*disable).Disable()
	}
	if *enable != "" {
		eng.GetContainerGroup(*enable).Enable()
	}

	ids := eng.GroupIDs()
	if len(ids) == 0 {
		fmt.Fprintln(c.stdout, "No groups configured.")
		return nil
	}
	for _, id := range ids {
		group := eng.GetContainerGroup(id)
		fmt.Fprintf(c.stdout, "%s: %d/%d enabled\n", id, group.EnabledCount(), group.Len())
		for _, member := range group.Members() {
			fmt.Fprintf(c.stdout, "  %s\n", describeContainer(member))
		}
	}
	return nil
}

// doctorCommand checks settings and every pooled media file.
func (c *cli) doctorCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ryo doctor", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	verbose := fs.Bool("v", false, "Show passing files too")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintln(c.stdout, "Ryo Doctor")
	fmt.Fprintln(c.stdout, "==========")
	fmt.Fprintln(c.stdout)

	allOK := true

	fmt.Fprintln(c.stdout, "Config:")
	if file := c.sources.ConfigFile(); file != "" {
		fmt.Fprintf(c.stdout, "  ✅ Config file: %s\n", file)
	} else {
		fmt.Fprintln(c.stdout, "  ✅ Config file: (none, using defaults)")
	}
	games := gamedefaults.Default().Games()
	switch {
	case c.cfg.Game == "":
		fmt.Fprintln(c.stdout, "  ⚠️  Game: not set, no game defaults will apply")
	case slices.Contains(games, strings.ToLower(c.cfg.Game)):
		fmt.Fprintf(c.stdout, "  ✅ Game: %s\n", c.cfg.Game)
	default:
		fmt.Fprintf(c.stdout, "  ⚠️  Game: %s has no built-in defaults\n", c.cfg.Game)
	}
	fmt.Fprintln(c.stdout)

	fmt.Fprintln(c.stdout, "Media paths:")
	paths := append(slices.Clone(c.cfg.AudioPaths), c.cfg.MoviePaths...)
	paths = append(paths, fs.Args()...)
	if len(paths) == 0 {
		fmt.Fprintln(c.stdout, "  ❌ No audio or movie paths configured")
		allOK = false
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			fmt.Fprintf(c.stdout, "  ❌ %s: %v\n", p, err)
			allOK = false
			continue
		}
		fmt.Fprintf(c.stdout, "  ✅ %s\n", p)
	}
	fmt.Fprintln(c.stdout)

	eng, failures := c.buildEngine(fs.Args())
	if failures > 0 {
		allOK = false
	}
	files := eng.MediaFiles()
	fmt.Fprintf(c.stdout, "Media files (%d, %d workers):\n", len(files), c.cfg.CheckWorkers)
	checks, err := parallel.CheckFiles(ctx, files, c.cfg.CheckWorkers)
	if err != nil {
		return fmt.Errorf("checking media: %w", err)
	}
	bad := 0
	for _, check := range checks {
		if !check.OK() {
			bad++
			fmt.Fprintf(c.stdout, "  ❌ %s: %v\n", check.Path, check.Err)
			continue
		}
		if *verbose {
			fmt.Fprintf(c.stdout, "  ✅ %s (%d bytes)\n", check.Path, check.Size)
		}
	}
	if bad == 0 {
		fmt.Fprintln(c.stdout, "  ✅ All media files OK")
	} else {
		allOK = false
	}
	fmt.Fprintln(c.stdout)

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Fprintln(c.stdout, "All checks passed.")
	return nil
}

// tuiCommand launches the group browser.
func (c *cli) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ryo tui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	eng, _ := c.buildEngine(fs.Args())
	return ui.RunTUI(ctx, eng)
}

// configCommand prints an example config, or the effective one with "show".
func (c *cli) configCommand(args []string) error {
	if len(args) == 0 || args[0] == "example" {
		fmt.Fprint(c.stdout, config.ExampleConfig())
		return nil
	}
	if args[0] != "show" {
		return fmt.Errorf("unknown config command: %s (expected example or show)", args[0])
	}

	cfg := c.cfg
	src := c.sources.Sources
	fmt.Fprintf(c.stdout, "game = %q  # %s\n", cfg.Game, src["game"])
	fmt.Fprintf(c.stdout, "audio_paths = %s  # %s\n", tomlList(cfg.AudioPaths), src["audio_paths"])
	fmt.Fprintf(c.stdout, "movie_paths = %s  # %s\n", tomlList(cfg.MoviePaths), src["movie_paths"])
	fmt.Fprintf(c.stdout, "check_workers = %d  # %s\n", cfg.CheckWorkers, src["check_workers"])
	fmt.Fprintf(c.stdout, "log_level = %q  # %s\n", cfg.LogLevel, src["log_level"])
	fmt.Fprintf(c.stdout, "log_format = %q  # %s\n", cfg.LogFormat, src["log_format"])
	fmt.Fprintf(c.stdout, "log_timestamps = %t  # %s\n", cfg.LogTimestamps, src["log_timestamps"])
	fmt.Fprintf(c.stdout, "log_caller = %t  # %s\n", cfg.LogCaller, src["log_caller"])
	fmt.Fprintf(c.stdout, "\n[movie_binds]  # %s\n", src["movie_binds"])
	targets := make([]string, 0, len(cfg.MovieBinds))
	for target := range cfg.MovieBinds {
		targets = append(targets, target)
	}
	slices.Sort(targets)
	for _, target := range targets {
		fmt.Fprintf(c.stdout, "%q = %q\n", target, cfg.MovieBinds[target])
	}
	return nil
}

func tomlList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// versionCommand shows version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "ryo %s\n", Version)
	return nil
}

func displayGame(game string) string {
	if game == "" {
		return "(not set)"
	}
	return game
}

func describeContainer(ct container.Container) string {
	state := "on"
	if !ct.Enabled() {
		state = "off"
	}
	line := fmt.Sprintf("[%-3s] %s (%d file", state, ct.Name(), ct.Len())
	if ct.Len() != 1 {
		line += "s"
	}
	line += ")"
	if id := ct.GroupID(); id != "" {
		line += " group=" + id
	}
	return line
}

// printUsage prints the usage information.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Ryo - media replacement for games")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ryo [global options] [command] [options] [paths...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  scan [paths]      Scan media and list containers (default command)")
	fmt.Fprintln(w, "  resolve [paths]   Look up a replacement the way the game would")
	fmt.Fprintln(w, "  groups [paths]    List container groups")
	fmt.Fprintln(w, "  doctor [paths]    Check settings and media files")
	fmt.Fprintln(w, "  tui [paths]       Browse and toggle groups in a terminal UI")
	fmt.Fprintln(w, "  config [show]     Print an example config, or the effective one")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Paths given after a command are scanned as extra audio folders.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scan Options:")
	fmt.Fprintln(w, "  -files")
	fmt.Fprintln(w, "        List pooled files for each container")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resolve Options:")
	fmt.Fprintln(w, "  -cue string / -acb string")
	fmt.Fprintln(w, "        Cue and bank the game plays")
	fmt.Fprintln(w, "  -file string")
	fmt.Fprintln(w, "        Game audio file path")
	fmt.Fprintln(w, "  -data string")
	fmt.Fprintln(w, "        Audio data name")
	fmt.Fprintln(w, "  -movie string")
	fmt.Fprintln(w, "        Game movie path")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of selections to draw (default 1)")
	fmt.Fprintln(w, "  -raw")
	fmt.Fprintln(w, "        Skip the game's cue renaming")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Groups Options:")
	fmt.Fprintln(w, "  -enable string / -disable string")
	fmt.Fprintln(w, "        Toggle a group before listing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options:")
	fmt.Fprintln(w, "  -v    Show passing files too")
}
