package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/blockscan/internal/domain"
	m "github.com/mouse-blink/blockscan/internal/model"
)

var analyzeOutputFlag string
var analyzeParallelFlag int
var analyzeArityFlag int
var analyzeRowsPerFileFlag int
var analyzeSkipUnchangedFlag bool
var analyzeNoReportFlag bool

// analyzeCmd represents the analyze command.
var analyzeCmd = newAnalyzeCmd()

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <corpus>",
		Short: "Flatten scripts and detect clones",
		Long: `Analyze flattens every script of every corpus item into command rows,
summarises scripts and procedure definitions, and reports clone groups of scripts
and of wait blocks. Malformed items are listed in the failures table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := m.Path(reportsDirFlag)
			if analyzeNoReportFlag {
				reports = ""
			}

			return workflow.Analyze(cmd.Context(), domain.AnalyzeArgs{
				Corpus:        m.Path(args[0]),
				Output:        m.Path(analyzeOutputFlag),
				Reports:       reports,
				Workers:       analyzeParallelFlag,
				Arity:         analyzeArityFlag,
				RowsPerFile:   analyzeRowsPerFileFlag,
				SkipUnchanged: analyzeSkipUnchangedFlag,
			})
		},
	}
	cmd.Flags().StringVarP(&analyzeOutputFlag, "output", "o", cfg.Output, "output directory or afs URL for CSV tables")
	cmd.Flags().IntVarP(&analyzeParallelFlag, "parallel", "p", cfg.Workers, "number of corpus items processed concurrently")
	cmd.Flags().IntVar(&analyzeArityFlag, "arity", cfg.Arity, "number of argument columns in command rows")
	cmd.Flags().IntVar(&analyzeRowsPerFileFlag, "rows-per-file", cfg.RowsPerFile, "rotate tables after this many rows (0 disables)")
	cmd.Flags().BoolVar(&analyzeSkipUnchangedFlag, "skip-unchanged", cfg.SkipUnchanged, "skip snapshots identical to the program's previous one")
	cmd.Flags().BoolVar(&analyzeNoReportFlag, "no-report", false, "do not store a run report")

	return cmd
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
