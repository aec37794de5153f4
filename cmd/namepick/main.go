// Package main provides the CLI entrypoint for namepick.
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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/namepick/internal/config"
	"github.com/verte-zerg/namepick/internal/dataset"
	"github.com/verte-zerg/namepick/internal/favorites"
	"github.com/verte-zerg/namepick/internal/model"
	"github.com/verte-zerg/namepick/internal/query"
	"github.com/verte-zerg/namepick/internal/report"
	"github.com/verte-zerg/namepick/internal/store"
	"github.com/verte-zerg/namepick/internal/tui"
)

const (
	defaultLocale    = query.DefaultLocale
	defaultLimit     = query.DefaultDisplayLimit
	defaultSort      = "none"
	defaultDirection = "asc"
)

var (
	exploreDataset       string
	exploreLimit         int
	exploreLocale        string
	exploreSort          string
	exploreDirection     string
	exploreIgnoreAccents bool
	exploreNoDuplicates  bool
	exploreEphemeral     bool

	listSex      string
	listYear     string
	listTotal    string
	listContains string
	listLength   string
	listStarts   string
	listEnds     string
	listFormat   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "namepick",
		Short:         "Explore given names and keep favorites",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runExploreCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&exploreDataset, "dataset", "", "dataset file (.json, .yaml or .yml)")
	flags.IntVar(&exploreLimit, "limit", defaultLimit, "maximum number of rows displayed")
	flags.StringVar(&exploreLocale, "locale", defaultLocale, "collation locale for text sorting")
	flags.StringVar(&exploreSort, "sort", defaultSort, "sort field: none, name, sex, year or total")
	flags.StringVar(&exploreDirection, "direction", defaultDirection, "sort direction: asc or desc")
	flags.BoolVar(&exploreIgnoreAccents, "ignore-accents", false, "ignore accents when matching names")
	flags.BoolVar(&exploreNoDuplicates, "no-duplicates", false, "keep only the first record of each name")
	rootCmd.Flags().BoolVar(&exploreEphemeral, "ephemeral", false, "keep favorites in memory only")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newFavoritesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dataset", &exploreDataset, fileCfg.Explore.Dataset)
	applyIntConfig(cmd, "limit", &exploreLimit, fileCfg.Explore.DisplayLimit)
	applyStringConfig(cmd, "locale", &exploreLocale, fileCfg.Explore.Locale)
	applyStringConfig(cmd, "sort", &exploreSort, fileCfg.Explore.Sort)
	applyStringConfig(cmd, "direction", &exploreDirection, fileCfg.Explore.Direction)
	applyBoolConfig(cmd, "ignore-accents", &exploreIgnoreAccents, fileCfg.Explore.IgnoreAccents)
	applyBoolConfig(cmd, "no-duplicates", &exploreNoDuplicates, fileCfg.Explore.NoDuplicates)

	field, err := model.ParseSortField(exploreSort)
	if err != nil {
		return model.Config{}, fmt.Errorf("--sort: %w", err)
	}
	direction, err := model.ParseSortDirection(exploreDirection)
	if err != nil {
		return model.Config{}, fmt.Errorf("--direction: %w", err)
	}
	cfg := model.Config{
		DatasetPath:   exploreDataset,
		DisplayLimit:  exploreLimit,
		Locale:        exploreLocale,
		Sort:          model.SortSpec{Field: field, Direction: direction},
		IgnoreAccents: exploreIgnoreAccents,
		NoDuplicates:  exploreNoDuplicates,
		Ephemeral:     exploreEphemeral,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runExploreCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	records, err := loadRecords(cfg.DatasetPath)
	if err != nil {
		return err
	}
	sorter, err := query.NewSorter(cfg.Locale)
	if err != nil {
		return err
	}

	var kv favorites.KV
	if cfg.Ephemeral {
		kv = store.NewMemory()
	} else {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		kv = st
	}
	fav, err := favorites.Load(context.Background(), kv)
	if err != nil {
		logErrf("%v; starting with no favorites\n", err)
	}

	explorer := tui.NewModel(cfg, records, sorter, fav)
	program := tea.NewProgram(explorer, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print filtered and sorted records",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
	cmd.Flags().StringVar(&listSex, "sex", "", "F or M")
	cmd.Flags().StringVar(&listYear, "year", "", "exact year")
	cmd.Flags().StringVar(&listTotal, "total", "", "exact cumulative total")
	cmd.Flags().StringVar(&listContains, "contains", "", "letters appearing in order in the name")
	cmd.Flags().StringVar(&listLength, "length", "", "exact name length")
	cmd.Flags().StringVar(&listStarts, "starts", "", "name prefix")
	cmd.Flags().StringVar(&listEnds, "ends", "", "name suffix")
	cmd.Flags().StringVar(&listFormat, "format", "table", "output format: table, json or yaml")
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sex, err := model.ParseSex(listSex)
	if err != nil {
		return fmt.Errorf("--sex: %w", err)
	}
	criteria := model.FilterCriteria{
		Sex:                sex,
		Year:               listYear,
		CumulativeTotal:    listTotal,
		NameContains:       listContains,
		Length:             listLength,
		StartsWith:         listStarts,
		EndsWith:           listEnds,
		SuppressDuplicates: cfg.NoDuplicates,
		IgnoreAccents:      cfg.IgnoreAccents,
	}
	if err := criteria.Validate(); err != nil {
		logErrf("warning: %v; no record will match\n", err)
	}

	records, err := loadRecords(cfg.DatasetPath)
	if err != nil {
		return err
	}
	sorter, err := query.NewSorter(cfg.Locale)
	if err != nil {
		return err
	}
	res := query.Run(records, criteria, cfg.Sort, sorter, cfg.DisplayLimit)

	isFavorite := loadFavoriteLookup()
	out := cmd.OutOrStdout()
	switch strings.ToLower(listFormat) {
	case "table":
		return writeTable(out, res, cfg.DisplayLimit, isFavorite)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newListOutput(res, isFavorite)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(newListOutput(res, isFavorite)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown --format %q (use table, json or yaml)", listFormat)
	}
}

type listRecord struct {
	Name            string `json:"name" yaml:"name"`
	Sex             string `json:"sex" yaml:"sex"`
	Year            string `json:"year" yaml:"year"`
	Count           int    `json:"count" yaml:"count"`
	CumulativeTotal int    `json:"cumulativeTotal" yaml:"cumulativeTotal"`
	Favorite        bool   `json:"favorite" yaml:"favorite"`
}

type listOutput struct {
	FilteredCount int          `json:"filteredCount" yaml:"filteredCount"`
	Truncated     bool         `json:"truncated" yaml:"truncated"`
	Rows          []listRecord `json:"rows" yaml:"rows"`
}

func newListOutput(res query.Result, isFavorite func(string) bool) listOutput {
	out := listOutput{
		FilteredCount: res.FilteredCount,
		Truncated:     res.Truncated,
		Rows:          make([]listRecord, 0, len(res.Rows)),
	}
	for _, r := range res.Rows {
		out.Rows = append(out.Rows, listRecord{
			Name:            r.Name,
			Sex:             string(r.Sex),
			Year:            r.Year,
			Count:           r.Count,
			CumulativeTotal: r.CumulativeTotal,
			Favorite:        isFavorite(r.Name),
		})
	}
	return out
}

func writeTable(w io.Writer, res query.Result, limit int, isFavorite func(string) bool) error {
	width := terminalWidth(w)
	lines := []string{report.RecordsFound(res.FilteredCount)}
	if res.FilteredCount > 0 {
		lines = append(lines, report.Summarize(res.Sorted).String())
		if trend := report.YearTrend(res.Sorted).String(); trend != "" {
			lines = append(lines, trend)
		}
	}
	if res.Truncated {
		lines = append(lines, report.TruncatedNotice(limit))
	}
	if len(res.Rows) > 0 {
		lines = append(lines, "")
		lines = append(lines, report.Table(res.Rows, isFavorite)...)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, report.Truncate(line, width)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// terminalWidth returns 0 (no truncation) unless w is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// loadFavoriteLookup never fails: list output simply shows no favorites.
func loadFavoriteLookup() func(string) bool {
	none := func(string) bool { return false }
	path := config.DefaultDBPath()
	if _, err := os.Stat(path); err != nil {
		return none
	}
	st, err := store.Open(path)
	if err != nil {
		logErrf("failed to open db: %v\n", err)
		return none
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	fav, err := favorites.Load(context.Background(), st)
	if err != nil {
		logErrf("%v\n", err)
		return none
	}
	return fav.Current().Contains
}

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List favorite names",
		Args:  cobra.NoArgs,
		RunE:  runFavoritesCmd,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle NAME...",
		Short: "Add or remove favorite names",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFavoritesToggleCmd,
	})
	return cmd
}

func openFavorites() (*favorites.Favorites, func(), error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	closeFn := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	fav, err := favorites.Load(context.Background(), st)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	if cerr := fav.Corrupt(); cerr != nil {
		logErrf("ignored malformed favorites: %v\n", cerr)
	}
	return fav, closeFn, nil
}

func runFavoritesCmd(cmd *cobra.Command, _ []string) error {
	fav, closeFn, err := openFavorites()
	if err != nil {
		return err
	}
	defer closeFn()
	names := fav.Names()
	if len(names) == 0 {
		logErrln("No favorites yet. Add one with: namepick favorites toggle <name>")
		return nil
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runFavoritesToggleCmd(cmd *cobra.Command, args []string) error {
	fav, closeFn, err := openFavorites()
	if err != nil {
		return err
	}
	defer closeFn()
	ctx := context.Background()
	for _, name := range args {
		if err := fav.Toggle(ctx, name); err != nil {
			return err
		}
		state := "removed"
		if fav.IsFavorite(name) {
			state = "added"
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
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

// loadRecords falls back to the bundled sample when no dataset is configured
// and none exists at the default location.
func loadRecords(path string) ([]model.NameRecord, error) {
	if path == "" {
		path = config.DefaultDatasetPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logErrf("no dataset at %s; using the bundled sample\n", path)
			return dataset.Sample(), nil
		}
	}
	records, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return records, nil
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# namepick configuration
# Uncomment a value to enable it. CLI flags override config values.

[explore]
# dataset = %q        # Dataset file (.json, .yaml or .yml)
# display-limit = %d          # Maximum number of rows displayed
# locale = %q                 # Collation locale for text sorting
# sort = %q                 # none, name, sex, year or total
# direction = %q             # asc or desc
# ignore-accents = false      # Ignore accents when matching names
# no-duplicates = false       # Keep only the first record of each name
`,
		config.DefaultDatasetPath(),
		defaultLimit,
		defaultLocale,
		defaultSort,
		defaultDirection,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.DisplayLimit <= 0 {
		return fmt.Errorf("--limit must be > 0")
	}
	if strings.TrimSpace(cfg.Locale) == "" {
		return fmt.Errorf("--locale must not be empty")
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
