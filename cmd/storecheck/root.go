package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"creator-store-check/internal/config"
	"creator-store-check/internal/logging"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	cfgFile     string
	storeDir    string
	catalogPath string
	outDir      string
	verbose     bool
	noColor     bool

	run runFlags

	cfg    *config.Config
	logger *zap.Logger
}

type runFlags struct {
	markdown bool
	csv      bool
	compare  string
	ci       bool
}

func (a *app) syncLogger() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "storecheck",
		Short: "Smoke-test a sovereign creator storefront before launch",
		Long: `storecheck checks that a creator storefront is ready to deploy: the store
files exist, the payment script carries the required features, the book
catalog is complete, revenue projections add up, deployment prerequisites are
met and the store page carries its anti-ISBN messaging.

Run without a subcommand to run the checks once.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: a.runSuite,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", config.DefaultPath, "Path to YAML config (missing file = defaults)")
	pf.StringVar(&a.storeDir, "store", "", "Store directory (default from config, or current directory)")
	pf.StringVar(&a.catalogPath, "catalog", "", "Catalog JSON path (default: sibling CreatorMarketLiberation directory)")
	pf.StringVar(&a.outDir, "out", "", "Directory for reports and history (default: store directory)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&a.noColor, "no-color", false, "Disable coloured output")

	addRunFlags(root.Flags(), &a.run)

	root.AddCommand(
		newRunCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
		newHistoryCmd(a),
		newFeeCmd(a),
	)
	return root
}

func addRunFlags(fs *pflag.FlagSet, rf *runFlags) {
	fs.BoolVar(&rf.markdown, "markdown", false, "Also write a markdown report")
	fs.BoolVar(&rf.csv, "csv", false, "Also write CSV exports of checks, projections and next steps")
	fs.StringVar(&rf.compare, "compare", "", "Path to a previous JSON report to diff against")
	fs.BoolVar(&rf.ci, "ci", false, "Print one JSON summary line instead of the coloured report")
}

// setup loads the config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if a.noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.StoreDir = a.storeDir
	}
	if flags.Changed("catalog") {
		cfg.CatalogPath = a.catalogPath
	}
	if flags.Changed("out") {
		cfg.OutDir = a.outDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	a.logger.Debug("config loaded",
		zap.String("config", a.cfgFile),
		zap.String("store", cfg.StoreDir),
		zap.String("catalog", cfg.ResolvedCatalogPath()))
	return nil
}
