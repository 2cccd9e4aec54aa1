package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/EdwardBetts/fosdem-speakers/internal/aggregate"
	"github.com/EdwardBetts/fosdem-speakers/internal/config"
	"github.com/EdwardBetts/fosdem-speakers/internal/fetcher"
	"github.com/EdwardBetts/fosdem-speakers/internal/gender"
	"github.com/EdwardBetts/fosdem-speakers/internal/logger"
	"github.com/EdwardBetts/fosdem-speakers/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// options holds flags that are not part of the persistent configuration
type options struct {
	cfgFile string
	tracks  bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v := viper.New()
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "fosdem-speakers [year]",
		Short: "Estimate the gender balance of FOSDEM speakers",
		Long: `A CLI tool to estimate the share of female speakers at FOSDEM.

Speaker pages are downloaded once into the data directory and reused on
every later run. Each speaker is classified from the pronouns in their
biography, falling back to their first name.

Examples:
  fosdem-speakers                 # one summary line per year, 2023 down to 2013
  fosdem-speakers --tracks 2023   # tracks of 2023 by female ratio`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			used, err := config.Init(v, opts.cfgFile)
			if err != nil {
				return err
			}
			setupLogger(v.GetBool(config.KeyVerbose), cmd.ErrOrStderr())
			if used != "" {
				logger.Debug("Using config file", logger.Fields{"path": used})
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.tracks {
				if len(args) != 1 {
					return fmt.Errorf("--tracks requires a year argument")
				}
				return runTracks(cmd, v, args[0])
			}
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q (did you mean --tracks %s?)", args[0], args[0])
			}
			return runYears(cmd, v)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags shared by every subcommand
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ./.fosdem-speakers.yaml or $HOME/.fosdem-speakers.yaml)")
	flags.String("data-dir", config.DefaultDataDir, "Directory holding the page cache")
	flags.String("format", config.DefaultFormat, "Output format: text or json")
	flags.Bool("verbose", false, "Enable verbose logging")
	flags.Duration("delay", config.DefaultDelay, "Pause after each downloaded page")
	flags.String("base-url", config.DefaultBaseURL, "Base URL of the FOSDEM website")
	flags.Int("from", config.DefaultFromYear, "First (most recent) year to process")
	flags.Int("to", config.DefaultToYear, "Last (oldest) year to process")

	cmd.Flags().BoolVar(&opts.tracks, "tracks", false, "Show the female ratio per track for the given year")
	cmd.Flags().String("sort", config.DefaultSort, "Track ordering: ratio, name or speakers")

	bindFlags(v, cmd)

	cmd.AddCommand(newTracksCmd(v))
	cmd.AddCommand(newStatusCmd(v))

	return cmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	persistent := map[string]string{
		config.KeyDataDir:  "data-dir",
		config.KeyFormat:   "format",
		config.KeyVerbose:  "verbose",
		config.KeyDelay:    "delay",
		config.KeyBaseURL:  "base-url",
		config.KeyFromYear: "from",
		config.KeyToYear:   "to",
	}
	for key, name := range persistent {
		v.BindPFlag(key, cmd.PersistentFlags().Lookup(name)) // nolint:errcheck
	}
	v.BindPFlag(config.KeySort, cmd.Flags().Lookup("sort")) // nolint:errcheck
}

func newTracksCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks <year>",
		Short: "Show the female ratio per track for one year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTracks(cmd, v, args[0])
		},
	}
	cmd.Flags().String("sort", config.DefaultSort, "Track ordering: ratio, name or speakers")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("sort") {
			v.Set(config.KeySort, cmd.Flags().Lookup("sort").Value.String())
		}
	}
	return cmd
}

func newStatusCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "status [year...]",
		Short: "Report which pages are already cached",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, v, args)
		},
	}
}

// setupLogger points the default logger at w, at debug level when verbose
func setupLogger(verbose bool, w io.Writer) {
	level := logger.LevelInfo
	if verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, w))
}

// newAggregator builds the fetch, parse and classify pipeline from the
// configuration
func newAggregator(cfg *config.Config) (*aggregate.Aggregator, error) {
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	resolver, err := newResolver(cfg.NamesTable)
	if err != nil {
		return nil, err
	}

	f := fetcher.New(store,
		fetcher.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		fetcher.WithBaseURL(cfg.BaseURL),
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithDelay(cfg.Delay),
		fetcher.WithMetrics(logger.DefaultMetrics()),
	)

	logger.Debug("Page cache ready", logger.Fields{"data_dir": store.DataDir()})

	return aggregate.New(f, store, resolver), nil
}

// newResolver builds the gender resolver, reading a custom name table when
// one is configured
func newResolver(tablePath string) (*gender.Resolver, error) {
	var (
		table *gender.Table
		err   error
	)
	if tablePath == "" {
		table, err = gender.DefaultTable()
	} else {
		table, err = loadTable(tablePath)
	}
	if err != nil {
		return nil, fmt.Errorf("loading name table: %w", err)
	}

	parser, err := gender.DefaultHumanNameParser()
	if err != nil {
		return nil, fmt.Errorf("loading name parser: %w", err)
	}

	return gender.NewResolver(gender.NewEstimator(table, parser)), nil
}

func loadTable(path string) (*gender.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gender.LoadTable(f)
}

// runYears is the default command: one summary per year
func runYears(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	agg, err := newAggregator(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	format := OutputFormat(cfg.Format)
	result := &YearsResult{GeneratedAt: time.Now().UTC()}

	for _, year := range aggregate.Years(cfg.FromYear, cfg.ToYear) {
		yr, err := agg.Year(year)
		if err != nil {
			return err
		}

		summary := NewYearSummary(yr)
		result.Years = append(result.Years, summary)

		// Text output streams so long runs show progress
		if format == FormatText {
			if err := writeYearText(out, summary, cfg.Verbose); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
	}

	if format == FormatJSON {
		if err := WriteYears(out, result, format, cfg.Verbose); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	logMetrics()
	return nil
}

// runTracks prints the per-track breakdown for one year
func runTracks(cmd *cobra.Command, v *viper.Viper, yearArg string) error {
	year, err := strconv.Atoi(yearArg)
	if err != nil || year <= 0 {
		return fmt.Errorf("invalid year: %q", yearArg)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	order := SortOrder(cfg.Sort)
	if !order.Valid() {
		return fmt.Errorf("invalid sort order: %s (must be 'ratio', 'name' or 'speakers')", cfg.Sort)
	}

	agg, err := newAggregator(cfg)
	if err != nil {
		return err
	}

	yr, err := agg.Year(year)
	if err != nil {
		return err
	}

	tracks := yr.Tracks.Ranked()
	sortTracks(tracks, order)

	result := &TracksResult{Year: year, Tracks: tracks}
	if err := WriteTracks(cmd.OutOrStdout(), result, OutputFormat(cfg.Format)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	logMetrics()
	return nil
}

// runStatus reports cache contents without touching the network
func runStatus(cmd *cobra.Command, v *viper.Viper, args []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	years := aggregate.Years(cfg.FromYear, cfg.ToYear)
	if len(args) > 0 {
		years = years[:0]
		for _, arg := range args {
			year, err := strconv.Atoi(arg)
			if err != nil || year <= 0 {
				return fmt.Errorf("invalid year: %q", arg)
			}
			years = append(years, year)
		}
	}

	result := &StatusResult{DataDir: store.DataDir()}
	for _, year := range years {
		st, err := yearStatus(store, year)
		if err != nil {
			return err
		}
		result.Years = append(result.Years, st)
	}

	return WriteStatus(cmd.OutOrStdout(), result, OutputFormat(cfg.Format))
}

func yearStatus(store *storage.Storage, year int) (YearStatus, error) {
	st := YearStatus{Year: year}

	cached, err := store.Exists(store.DirectoryPagePath(year))
	if err != nil {
		return st, err
	}
	st.DirectoryCached = cached

	slugs, err := store.CachedSpeakers(year)
	if err != nil {
		return st, err
	}
	st.SpeakerPages = len(slugs)

	return st, nil
}

func logMetrics() {
	logger.Debug("Run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
}

// Execute runs the CLI
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
