package adapter

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/viant/afs"

	m "github.com/mouse-blink/blockscan/internal/model"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}

	return rows
}

func TestCSVSink_WritesEveryTable(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	ctx := context.Background()

	sink, err := NewCSVSinkFactory(afs.New()).Open(ctx, SinkOptions{Output: m.Path(dir), Arity: 2})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	row := []string{"1", "2014-03-02", "0", "stage", `"stage"`, "0", `"say:"`, `"a,b"`}
	if err := sink.Append(ctx, TableCommands, row); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	files, err := sink.Close(ctx)
	if err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if len(files) != len(Tables()) {
		t.Fatalf("expected %d files, got %v", len(Tables()), files)
	}

	commands := readCSV(t, filepath.Join(dir, "commands.csv"))
	if len(commands) != 2 {
		t.Fatalf("expected header and one row, got %v", commands)
	}

	if strings.Join(commands[0], ",") != "program_id,date,indent,scope_kind,scope_name,order,arg_1,arg_2" {
		t.Fatalf("unexpected header: %v", commands[0])
	}

	for i, want := range row {
		if commands[1][i] != want {
			t.Fatalf("column %d = %q, want %q", i, commands[1][i], want)
		}
	}

	waits := readCSV(t, filepath.Join(dir, "wait_clones.csv"))
	if len(waits) != 1 || strings.Join(waits[0], ",") != strings.Join(m.CloneHeader(m.CloneWaitBlocks), ",") {
		t.Fatalf("expected header-only wait clone table, got %v", waits)
	}
}

func TestCSVSink_RotatesParts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	sink, err := NewCSVSinkFactory(afs.New()).Open(ctx, SinkOptions{Output: m.Path(dir), Arity: 1, RowsPerFile: 2})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		if err := sink.Append(ctx, TableFailures, []string{id, "2014-03-02", "malformed_item", "", "bad"}); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	if _, err := sink.Close(ctx); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	wantRows := map[string]int{"failures_0001.csv": 3, "failures_0002.csv": 3, "failures_0003.csv": 2, "scripts_0001.csv": 1}
	for name, want := range wantRows {
		if got := len(readCSV(t, filepath.Join(dir, name))); got != want {
			t.Errorf("%s has %d lines, want %d", name, got, want)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "failures_0004.csv")); !os.IsNotExist(err) {
		t.Fatalf("unexpected empty trailing part")
	}
}

func TestCSVSink_ExactMultipleLeavesNoEmptyPart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	sink, err := NewCSVSinkFactory(afs.New()).Open(ctx, SinkOptions{Output: m.Path(dir), Arity: 1, RowsPerFile: 1})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if err := sink.Append(ctx, TableProcedures, []string{"1", "2014-03-02", `"stage"`, `"p"`, "0"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	files, err := sink.Close(ctx)
	if err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	count := 0

	for _, f := range files {
		if strings.Contains(f, "procedures_") {
			count++
		}
	}

	if count != 1 {
		t.Fatalf("expected one procedures part, got %v", files)
	}
}

func TestCSVSink_UnknownTable(t *testing.T) {
	t.Parallel()

	sink, err := NewCSVSinkFactory(afs.New()).Open(context.Background(), SinkOptions{Output: m.Path(t.TempDir()), Arity: 1})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if err := sink.Append(context.Background(), Table("nope"), []string{"x"}); err == nil {
		t.Fatalf("expected error for unknown table")
	}
}

func TestCSVSinkFactory_InvalidArity(t *testing.T) {
	t.Parallel()

	if _, err := NewCSVSinkFactory(afs.New()).Open(context.Background(), SinkOptions{Output: m.Path(t.TempDir())}); err == nil {
		t.Fatalf("expected error for zero arity")
	}
}
