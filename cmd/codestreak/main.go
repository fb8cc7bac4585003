// Package main provides the CLI entrypoint for codestreak.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/codestreak/internal/catalog"
	"github.com/verte-zerg/codestreak/internal/config"
	"github.com/verte-zerg/codestreak/internal/generator"
	"github.com/verte-zerg/codestreak/internal/model"
	"github.com/verte-zerg/codestreak/internal/stats"
	"github.com/verte-zerg/codestreak/internal/statsui"
	"github.com/verte-zerg/codestreak/internal/store"
	"github.com/verte-zerg/codestreak/internal/streak"
)

const (
	defaultPlatform = "leetcode"
	defaultTotal    = 120
	defaultEasy     = 50
	defaultMedium   = 50
	defaultHard     = 20
)

var (
	genPlatform  string
	genTotal     int
	genEasy      int
	genMedium    int
	genHard      int
	genWeekday   float64
	genWeekend   float64
	genDouble    float64
	genAccept    float64
	genJitter    int
	genSeed      int64
	genSince     string
	genUntil     string
	genCatalog   string
	genLanguages string
	genSave      bool
	genJSON      bool

	statsPlatform string
	statsSince    string
	statsPlain    bool

	streakPlatform string

	catalogPath       string
	catalogDifficulty string
	catalogTag        string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "codestreak",
		Short:         "Synthetic coding activity generator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newStreakCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate activity for a date range",
		Args:  cobra.NoArgs,
		RunE:  runGenerateCmd,
	}
	cmd.Flags().StringVar(&genPlatform, "platform", defaultPlatform, "platform name")
	cmd.Flags().IntVar(&genTotal, "total", defaultTotal, "target number of events")
	cmd.Flags().IntVar(&genEasy, "easy", defaultEasy, "target easy events")
	cmd.Flags().IntVar(&genMedium, "medium", defaultMedium, "target medium events")
	cmd.Flags().IntVar(&genHard, "hard", defaultHard, "target hard events")
	cmd.Flags().Float64Var(&genWeekday, "weekday", generator.DefaultWeekdayProb, "activity probability on weekdays (0-1)")
	cmd.Flags().Float64Var(&genWeekend, "weekend", generator.DefaultWeekendProb, "activity probability on weekends (0-1)")
	cmd.Flags().Float64Var(&genDouble, "double", generator.DefaultDoubleProb, "probability of a second event on an active day (0-1)")
	cmd.Flags().Float64Var(&genAccept, "accept", generator.DefaultAcceptProb, "probability an event is accepted (0-1)")
	cmd.Flags().IntVar(&genJitter, "jitter", generator.DefaultJitter, "time spent jitter in minutes")
	cmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (default: current time)")
	cmd.Flags().StringVar(&genSince, "since", "", "start date (YYYY-MM-DD, default: Jan 1 of this year)")
	cmd.Flags().StringVar(&genUntil, "until", "", "end date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&genCatalog, "catalog", "", "problem catalog TOML file")
	cmd.Flags().StringVar(&genLanguages, "languages", "", "language list file")
	cmd.Flags().BoolVar(&genSave, "save", false, "save the run to the database")
	cmd.Flags().BoolVar(&genJSON, "json", false, "print events as JSON")
	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	act := fileCfg.Activity
	applyStringConfig(cmd, "platform", &genPlatform, act.Platform)
	applyIntConfig(cmd, "total", &genTotal, act.Total)
	applyIntConfig(cmd, "easy", &genEasy, act.Easy)
	applyIntConfig(cmd, "medium", &genMedium, act.Medium)
	applyIntConfig(cmd, "hard", &genHard, act.Hard)
	applyFloatConfig(cmd, "weekday", &genWeekday, act.WeekdayProb)
	applyFloatConfig(cmd, "weekend", &genWeekend, act.WeekendProb)
	applyFloatConfig(cmd, "double", &genDouble, act.DoubleProb)
	applyFloatConfig(cmd, "accept", &genAccept, act.AcceptProb)
	applyIntConfig(cmd, "jitter", &genJitter, act.Jitter)
	applyInt64Config(cmd, "seed", &genSeed, act.Seed)
	applyStringConfig(cmd, "catalog", &genCatalog, fileCfg.Catalog.Problems)
	applyStringConfig(cmd, "languages", &genLanguages, fileCfg.Catalog.Languages)

	now := time.Now()
	if !cmd.Flags().Changed("seed") && act.Seed == nil {
		genSeed = now.UnixNano()
	}
	cfg := model.Config{
		Platform:    genPlatform,
		Total:       genTotal,
		Targets:     model.Targets{Easy: genEasy, Medium: genMedium, Hard: genHard},
		WeekdayProb: genWeekday,
		WeekendProb: genWeekend,
		DoubleProb:  genDouble,
		AcceptProb:  genAccept,
		Jitter:      genJitter,
		Seed:        genSeed,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	today := model.Day(now)
	start, end, err := resolveRange(genSince, genUntil, today)
	if err != nil {
		return err
	}

	problems, languages, err := catalog.Resolve(genCatalog, genLanguages)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	gen := generator.NewSeeded(cfg.Seed)
	events, err := gen.Generate(generator.Request{
		Platform:    cfg.Platform,
		TargetTotal: cfg.Total,
		Start:       start,
		End:         end,
		Problems:    problems,
		Languages:   languages,
		WeekdayProb: cfg.WeekdayProb,
		WeekendProb: cfg.WeekendProb,
		DoubleProb:  cfg.DoubleProb,
		AcceptProb:  cfg.AcceptProb,
		Jitter:      cfg.Jitter,
	})
	if err != nil {
		return fmt.Errorf("failed to generate activity: %w", err)
	}
	relabeled := gen.Reconcile(events, cfg.Targets)
	logErrf("seed: %d\n", cfg.Seed)

	if len(events) < cfg.Total {
		logErrf("generated %d of %d events (range too short)\n", len(events), cfg.Total)
	}
	if got := generator.Breakdown(events); got != cfg.Targets {
		logErrf("difficulty breakdown easy %d / medium %d / hard %d differs from targets %d / %d / %d (%d relabeled)\n",
			got.Easy, got.Medium, got.Hard, cfg.Targets.Easy, cfg.Targets.Medium, cfg.Targets.Hard, relabeled)
	}

	if genSave {
		if err := saveRun(cmd.Context(), cfg, now, events); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if genJSON {
		return writeJSON(out, events)
	}
	report := stats.NewReport(events, start, end, today)
	if err := stats.RenderReport(out, report, stats.TerminalWidth(), stats.ShouldUseColor(out, false)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func saveRun(ctx context.Context, cfg model.Config, now time.Time, events []model.Event) error {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	run := model.Run{
		Platform:    cfg.Platform,
		GeneratedAt: now,
		Seed:        cfg.Seed,
		TargetTotal: cfg.Total,
		Targets:     cfg.Targets,
	}
	id, err := st.InsertRun(ctx, run, events)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	logErrf("saved run %d (%d events)\n", id, len(events))
	return nil
}

func writeJSON(w io.Writer, events []model.Event) error {
	if events == nil {
		events = []model.Event{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats for saved activity",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsPlatform, "platform", "", "platform filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the dashboard")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	sinceTime, err := parseDateFlag("since", statsSince)
	if err != nil {
		return err
	}
	cfg := model.StatsConfig{
		Platform: statsPlatform,
		Since:    sinceTime,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	today := model.Day(time.Now())
	if statsPlain {
		report, err := stats.BuildReport(context.Background(), st, cfg, today)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		out := cmd.OutOrStdout()
		if err := stats.RenderReport(out, report, stats.TerminalWidth(), stats.ShouldUseColor(out, false)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	m := statsui.NewModel(st, cfg, today)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newStreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Print current and longest streak",
		Args:  cobra.NoArgs,
		RunE:  runStreakCmd,
	}
	cmd.Flags().StringVar(&streakPlatform, "platform", "", "platform filter")
	return cmd
}

func runStreakCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	events, err := st.ListEvents(context.Background(), model.StatsConfig{Platform: streakPlatform})
	if err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}
	if len(events) == 0 {
		logErrln("No saved activity. Generate some with: codestreak generate --save")
	}
	result := streak.FromEvents(events, model.Day(time.Now()))
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "current: %d\nlongest: %d\n", result.CurrentStreak, result.LongestStreak); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the problem catalog",
		Args:  cobra.NoArgs,
		RunE:  runCatalogCmd,
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "problem catalog TOML file")
	cmd.Flags().StringVar(&catalogDifficulty, "difficulty", "", "only list this difficulty")
	cmd.Flags().StringVar(&catalogTag, "tag", "", "only list problems with this tag")
	return cmd
}

func runCatalogCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "catalog", &catalogPath, fileCfg.Catalog.Problems)

	problems, _, err := catalog.Resolve(catalogPath, "")
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	var filters []catalog.FilterFunc
	if catalogDifficulty != "" {
		d, err := model.ParseDifficulty(catalogDifficulty)
		if err != nil {
			return fmt.Errorf("invalid --difficulty value: %w", err)
		}
		filters = append(filters, catalog.ByDifficulty(d))
	}
	if catalogTag != "" {
		filters = append(filters, catalog.ByTag(catalogTag))
	}
	matched := catalog.Filter(problems, filters...)
	if len(matched) == 0 {
		logErrln("No problems match the filters.")
		if catalogTag != "" {
			if suggestion := catalog.SuggestTag(problems, catalogTag); suggestion != "" {
				logErrf("Did you mean --tag %s?\n", suggestion)
			}
		}
		return nil
	}
	problems = matched
	if err := stats.RenderProblemTable(cmd.OutOrStdout(), problems); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func resolveRange(since, until string, today time.Time) (time.Time, time.Time, error) {
	start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	end := model.Day(today)
	if parsed, err := parseDateFlag("since", since); err != nil {
		return time.Time{}, time.Time{}, err
	} else if parsed != nil {
		start = *parsed
	}
	if parsed, err := parseDateFlag("until", until); err != nil {
		return time.Time{}, time.Time{}, err
	} else if parsed != nil {
		end = *parsed
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--until %s is before --since %s", model.DayKey(end), model.DayKey(start))
	}
	return start, end, nil
}

func parseDateFlag(name, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(model.DayLayout, value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s value: %w", name, err)
	}
	return &parsed, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# codestreak configuration
# Uncomment a value to enable it. CLI flags override config values.

[activity]
# platform = %q    # Platform name stored with events
# total = %d              # Target number of events
# easy = %d                # Target easy events
# medium = %d              # Target medium events
# hard = %d                # Target hard events
# weekday = %.2f          # Activity probability on weekdays (0-1)
# weekend = %.2f          # Activity probability on weekends (0-1)
# double = %.2f           # Probability of a second event per active day (0-1)
# accept = %.2f           # Probability an event is accepted (0-1)
# jitter = %d              # Time spent jitter in minutes
# seed = 42               # Fixed random seed

[catalog]
# problems = "/path/to/problems.toml"   # [[problem]] entries
# languages = "/path/to/languages.txt"  # One language per line
`,
		defaultPlatform,
		defaultTotal,
		defaultEasy,
		defaultMedium,
		defaultHard,
		generator.DefaultWeekdayProb,
		generator.DefaultWeekendProb,
		generator.DefaultDoubleProb,
		generator.DefaultAcceptProb,
		generator.DefaultJitter,
	)
}

func validateConfig(cfg model.Config) error {
	if strings.TrimSpace(cfg.Platform) == "" {
		return fmt.Errorf("--platform must not be empty")
	}
	if cfg.Total < 0 {
		return fmt.Errorf("--total must be >= 0")
	}
	if cfg.Targets.Easy < 0 || cfg.Targets.Medium < 0 || cfg.Targets.Hard < 0 {
		return fmt.Errorf("--easy, --medium and --hard must be >= 0")
	}
	probs := []struct {
		flag  string
		value float64
	}{
		{"weekday", cfg.WeekdayProb},
		{"weekend", cfg.WeekendProb},
		{"double", cfg.DoubleProb},
		{"accept", cfg.AcceptProb},
	}
	for _, p := range probs {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("--%s must be between 0 and 1", p.flag)
		}
	}
	if cfg.Jitter < 0 {
		return fmt.Errorf("--jitter must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
