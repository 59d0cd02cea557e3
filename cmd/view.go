package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/blockscan/internal/domain"
	m "github.com/mouse-blink/blockscan/internal/model"
)

var viewCleanFlag bool

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously stored run reports",
		Long:  "View previously stored run reports from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{
				Reports: m.Path(reportsDirFlag),
				Clean:   viewCleanFlag,
			})
		},
	}
	cmd.Flags().BoolVar(&viewCleanFlag, "clean", false, "delete stored reports first")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
