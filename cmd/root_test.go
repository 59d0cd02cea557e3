package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/blockscan/internal/domain"
)

// newTestRoot builds a fresh command tree with the global workflow swapped
// for mockWorkflow until the test ends.
func newTestRoot(t *testing.T, mockWorkflow domain.Workflow) *cobra.Command {
	t.Helper()

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	root := newRootCmd()
	root.AddCommand(newAnalyzeCmd(), newValidateCmd(), newViewCmd())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	return root
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	if cmd.Use != "blockscan" {
		t.Errorf("newRootCmd() Use = %v, want %v", cmd.Use, "blockscan")
	}

	if cmd.Short == "" {
		t.Error("newRootCmd() Short should not be empty")
	}

	if cmd.Long == "" {
		t.Error("newRootCmd() Long should not be empty")
	}

	for _, name := range []string{"verbose", "reports"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("newRootCmd() missing --%s flag", name)
		}
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"analyze", "validate", "view"} {
		if !names[want] {
			t.Errorf("rootCmd missing %s subcommand", want)
		}
	}
}

func TestInit(t *testing.T) {
	if ui == nil {
		t.Error("init() ui is nil")
	}

	if storage == nil {
		t.Error("init() storage is nil")
	}

	if corpusStore == nil {
		t.Error("init() corpusStore is nil")
	}

	if decoder == nil {
		t.Error("init() decoder is nil")
	}

	if sinkFactory == nil {
		t.Error("init() sinkFactory is nil")
	}

	if reportStore == nil {
		t.Error("init() reportStore is nil")
	}

	if processor == nil {
		t.Error("init() processor is nil")
	}

	if workflow == nil {
		t.Error("init() workflow is nil")
	}

	if logger == nil {
		t.Error("init() logger is nil")
	}
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() { rootCmd = originalRootCmd }()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})
	mockCmd.SetArgs([]string{})

	rootCmd = mockCmd

	Execute()
}

func TestExecute_ProcessLevel_Success(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Println("success")
				return nil
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		mockCmd.SetArgs([]string{})
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Success")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS=1")
	output, err := cmd.CombinedOutput()

	if err != nil {
		t.Errorf("Process exited with error: %v, output: %s", err, output)
	}

	if !strings.Contains(string(output), "success") {
		t.Errorf("Expected 'success' in output, got: %s", output)
	}
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(os.Stderr, "error occurred")
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		mockCmd.SetArgs([]string{})
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute() // exits with status 1
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("Expected exec.ExitError, got %T (%v)", err, err)
	}

	if exitErr.ExitCode() != 1 {
		t.Errorf("Expected exit code 1, got %d", exitErr.ExitCode())
	}

	if !strings.Contains(string(output), "error occurred") {
		t.Logf("Output: %s", output)
	}
}
