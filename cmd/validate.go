package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/blockscan/internal/domain"
	m "github.com/mouse-blink/blockscan/internal/model"
)

// validateCmd represents the validate command.
var validateCmd = newValidateCmd()

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <corpus>",
		Short: "Check that corpus items are valid JSON",
		Long:  "Validate lists every corpus item with its size and whether it is syntactically valid JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Validate(cmd.Context(), domain.ValidateArgs{Corpus: m.Path(args[0])})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
