package adapter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/viant/afs"
	"github.com/viant/afs/url"

	m "github.com/mouse-blink/blockscan/internal/model"
)

// Table names an output row stream.
type Table string

// Output tables.
const (
	TableCommands   Table = "commands"
	TableScripts    Table = "scripts"
	TableProcedures Table = "procedures"
	TableClones     Table = "clones"
	TableWaitClones Table = "wait_clones"
	TableFailures   Table = "failures"
)

// Tables lists every output table in write order.
func Tables() []Table {
	return []Table{TableCommands, TableScripts, TableProcedures, TableClones, TableWaitClones, TableFailures}
}

const outputFileMode os.FileMode = 0o644

// SinkOptions configures a RowSink.
type SinkOptions struct {
	Output m.Path
	// Arity is the number of argument columns of command rows.
	Arity int
	// RowsPerFile rotates a table into numbered parts; zero disables rotation.
	RowsPerFile int
}

// RowSink persists rows into named tables.
type RowSink interface {
	Append(ctx context.Context, table Table, row []string) error
	// Close flushes every table and returns the URLs written.
	Close(ctx context.Context) ([]string, error)
}

// SinkFactory opens row sinks.
type SinkFactory interface {
	Open(ctx context.Context, opts SinkOptions) (RowSink, error)
}

type csvSinkFactory struct {
	fs afs.Service
}

// NewCSVSinkFactory constructs a SinkFactory writing CSV files through afs.
func NewCSVSinkFactory(fs afs.Service) SinkFactory {
	return &csvSinkFactory{fs: fs}
}

func (f *csvSinkFactory) Open(ctx context.Context, opts SinkOptions) (RowSink, error) {
	if opts.Arity <= 0 {
		return nil, fmt.Errorf("invalid arity %d", opts.Arity)
	}

	if err := f.fs.Create(ctx, string(opts.Output), 0o755, true); err != nil {
		if exists, _ := f.fs.Exists(ctx, string(opts.Output)); !exists {
			return nil, fmt.Errorf("failed to create output %s: %w", opts.Output, err)
		}
	}

	sink := &csvSink{
		fs:     f.fs,
		opts:   opts,
		tables: make(map[Table]*csvTable),
	}

	headers := map[Table][]string{
		TableCommands:   m.CommandHeader(opts.Arity),
		TableScripts:    m.ScriptSummaryHeader(),
		TableProcedures: m.ProcedureHeader(),
		TableClones:     m.CloneHeader(m.CloneScripts),
		TableWaitClones: m.CloneHeader(m.CloneWaitBlocks),
		TableFailures:   m.FailureHeader(),
	}

	for _, table := range Tables() {
		sink.tables[table] = &csvTable{name: table, header: headers[table]}
	}

	return sink, nil
}

type csvTable struct {
	name   Table
	header []string
	buf    bytes.Buffer
	writer *csv.Writer
	rows   int
	part   int
}

type csvSink struct {
	fs     afs.Service
	opts   SinkOptions
	tables map[Table]*csvTable
	files  []string
}

func (s *csvSink) Append(ctx context.Context, table Table, row []string) error {
	t, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}

	if t.writer == nil {
		t.writer = csv.NewWriter(&t.buf)
		if err := t.writer.Write(t.header); err != nil {
			return fmt.Errorf("failed to write %s header: %w", table, err)
		}
	}

	if err := t.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write %s row: %w", table, err)
	}

	t.rows++

	if s.opts.RowsPerFile > 0 && t.rows >= s.opts.RowsPerFile {
		return s.flush(ctx, t)
	}

	return nil
}

func (s *csvSink) Close(ctx context.Context) ([]string, error) {
	for _, table := range Tables() {
		t := s.tables[table]

		// every table gets at least a header-only file
		if t.writer == nil && t.part == 0 {
			t.writer = csv.NewWriter(&t.buf)
			if err := t.writer.Write(t.header); err != nil {
				return nil, fmt.Errorf("failed to write %s header: %w", table, err)
			}
		}

		if t.writer == nil {
			continue
		}

		if err := s.flush(ctx, t); err != nil {
			return nil, err
		}
	}

	return s.files, nil
}

func (s *csvSink) flush(ctx context.Context, t *csvTable) error {
	t.writer.Flush()

	if err := t.writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", t.name, err)
	}

	t.part++
	target := url.Join(string(s.opts.Output), s.fileName(t))

	if err := s.fs.Upload(ctx, target, outputFileMode, bytes.NewReader(t.buf.Bytes())); err != nil {
		return fmt.Errorf("failed to upload %s: %w", target, err)
	}

	s.files = append(s.files, target)
	t.buf.Reset()
	t.writer = nil
	t.rows = 0

	return nil
}

func (s *csvSink) fileName(t *csvTable) string {
	if s.opts.RowsPerFile <= 0 {
		return string(t.name) + ".csv"
	}

	return fmt.Sprintf("%s_%04d.csv", t.name, t.part)
}
