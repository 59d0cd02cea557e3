// Package cmd provides the root command and CLI setup for blockscan.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/mouse-blink/blockscan/internal/adapter"
	"github.com/mouse-blink/blockscan/internal/config"
	"github.com/mouse-blink/blockscan/internal/controller"
	"github.com/mouse-blink/blockscan/internal/domain"
)

var cfg = config.Load()
var logLevel = new(slog.LevelVar)
var logger *slog.Logger
var storage afs.Service
var corpusStore adapter.CorpusStore
var decoder adapter.ProjectDecoder
var sinkFactory adapter.SinkFactory
var reportStore adapter.ReportStore
var processor domain.Processor
var workflow domain.Workflow
var ui controller.UI

func init() {
	logLevel.Set(cfg.LogLevel)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	storage = afs.New()
	corpusStore = adapter.NewCorpusStore(storage)
	decoder = adapter.NewProjectDecoder()
	sinkFactory = adapter.NewCSVSinkFactory(storage)
	reportStore = adapter.NewReportStore(storage)
	processor = domain.NewProcessor(
		domain.NewFlattener(),
		domain.NewWaitMiner(),
		domain.NewCloneGrouper(),
	)
	workflow = domain.NewWorkflow(
		corpusStore,
		decoder,
		sinkFactory,
		reportStore,
		ui,
		processor,
		domain.WithLogger(logger),
	)
}

var verboseFlag bool
var reportsDirFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blockscan",
		Short: "Block-tree flattening and clone detection for visual programming projects",
		Long: `Blockscan reads a corpus of serialized visual-programming projects and writes
relational CSV tables describing every command of every script, together with
reports of scripts and wait blocks that are structurally identical.

Corpus items are JSON files named <programId>_<yyyy-MM-dd>.json under any
local path or afs URL:
  - ./corpus                     local directory (searched recursively)
  - mem://localhost/corpus       in-memory storage
  - file:///data/corpus.zip/zip://localhost/   zip archive`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verboseFlag {
				logLevel.Set(slog.LevelDebug)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log skipped items and scripts")
	cmd.PersistentFlags().StringVar(&reportsDirFlag, "reports", cfg.Reports, "directory for run reports")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
