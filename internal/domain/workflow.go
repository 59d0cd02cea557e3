// Package domain implements block-tree flattening, wait-block mining and
// clone detection, and the workflow that runs them over a corpus.
package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/blockscan/internal/adapter"
	"github.com/mouse-blink/blockscan/internal/controller"
	m "github.com/mouse-blink/blockscan/internal/model"
)

// AnalyzeArgs configures a corpus analysis run.
type AnalyzeArgs struct {
	Corpus        m.Path
	Output        m.Path
	Reports       m.Path
	Workers       int
	Arity         int
	RowsPerFile   int
	SkipUnchanged bool
}

// ValidateArgs configures a corpus validation run.
type ValidateArgs struct {
	Corpus m.Path
}

// ViewArgs configures viewing stored run reports.
type ViewArgs struct {
	Reports m.Path
	// Clean deletes the stored reports before listing.
	Clean bool
}

// Workflow defines the corpus operations exposed by the CLI.
type Workflow interface {
	Analyze(ctx context.Context, args AnalyzeArgs) error
	Validate(ctx context.Context, args ValidateArgs) error
	View(ctx context.Context, args ViewArgs) error
}

// WorkflowOption customizes a Workflow.
type WorkflowOption func(*workflow)

// WithLogger sets the logger used for skipped items and anomalies.
func WithLogger(logger *slog.Logger) WorkflowOption {
	return func(w *workflow) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithClock overrides the time source used for run reports.
func WithClock(now func() time.Time) WorkflowOption {
	return func(w *workflow) {
		if now != nil {
			w.now = now
		}
	}
}

type workflow struct {
	corpus    adapter.CorpusStore
	decoder   adapter.ProjectDecoder
	sinks     adapter.SinkFactory
	reports   adapter.ReportStore
	ui        controller.UI
	processor Processor
	logger    *slog.Logger
	now       func() time.Time
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	corpus adapter.CorpusStore,
	decoder adapter.ProjectDecoder,
	sinks adapter.SinkFactory,
	reports adapter.ReportStore,
	ui controller.UI,
	processor Processor,
	options ...WorkflowOption,
) Workflow {
	w := &workflow{
		corpus:    corpus,
		decoder:   decoder,
		sinks:     sinks,
		reports:   reports,
		ui:        ui,
		processor: processor,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}

	for _, opt := range options {
		opt(w)
	}

	return w
}

// indexedResult carries a worker's result back to the ordered emitter.
type indexedResult struct {
	index  int
	result m.ItemResult
}

// Analyze processes every corpus item on a bounded worker pool and writes
// rows strictly in corpus order. Malformed items are recorded, not fatal;
// storage and sink errors abort the run.
func (w *workflow) Analyze(ctx context.Context, args AnalyzeArgs) error {
	workers := max(args.Workers, 1)
	startedAt := w.now()

	items, err := w.corpus.List(ctx, args.Corpus)
	if err != nil {
		return err
	}

	tracker, err := newSnapshotTracker(snapshotCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create snapshot tracker: %w", err)
	}

	sink, err := w.sinks.Open(ctx, adapter.SinkOptions{
		Output:      args.Output,
		Arity:       args.Arity,
		RowsPerFile: args.RowsPerFile,
	})
	if err != nil {
		return err
	}

	closed := false

	defer func() {
		if closed {
			return
		}

		// an aborted run still flushes every table
		if _, err := sink.Close(context.WithoutCancel(ctx)); err != nil {
			w.logger.Warn("failed to close row sink", "error", err)
		}
	}()

	if err := w.ui.Start(controller.WithAnalyzeMode()); err != nil {
		return err
	}
	defer w.ui.Close()

	w.ui.DisplayCorpus(args.Corpus, len(items), workers)

	report := m.RunReport{
		Corpus:    args.Corpus,
		Output:    args.Output,
		StartedAt: startedAt,
		Items:     len(items),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan indexedResult)
	poolErr := make(chan error, 1)

	go func() {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)

		for i, item := range items {
			if gctx.Err() != nil {
				break
			}

			i, item := i, item
			g.Go(func() error {
				result, err := w.processItem(gctx, item)
				if err != nil {
					return err
				}

				select {
				case done <- indexedResult{index: i, result: result}:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}

		poolErr <- g.Wait()
		close(done)
	}()

	var emitErr error

	pending := make(map[int]m.ItemResult)
	next := 0

	for res := range done {
		if emitErr != nil {
			continue
		}

		pending[res.index] = res.result

		for {
			result, ok := pending[next]
			if !ok {
				break
			}

			delete(pending, next)
			next++

			if err := w.emit(ctx, sink, tracker, args, &report, result); err != nil {
				emitErr = err
				cancel()

				break
			}
		}
	}

	if err := <-poolErr; err != nil && emitErr == nil {
		return err
	}

	if emitErr != nil {
		return emitErr
	}

	closed = true

	files, err := sink.Close(ctx)
	if err != nil {
		return err
	}

	report.Duration = w.now().Sub(startedAt)

	if args.Reports != "" {
		if _, err := w.reports.SaveReport(ctx, args.Reports, report); err != nil {
			return err
		}
	}

	return w.ui.DisplaySummary(report, files)
}

// processItem reads, decodes and processes one corpus item. Only storage
// errors are returned; a malformed item yields a failed result.
func (w *workflow) processItem(ctx context.Context, item m.CorpusItem) (result m.ItemResult, err error) {
	data, err := w.corpus.Read(ctx, item)
	if err != nil {
		return m.ItemResult{}, err
	}

	fingerprint := Fingerprint(data)

	project, err := w.decoder.Decode(item, data)
	if err != nil {
		if errors.Is(err, adapter.ErrMalformedItem) {
			return failedResult(item, fingerprint, err.Error()), nil
		}

		return m.ItemResult{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			result, err = failedResult(item, fingerprint, fmt.Sprintf("%v: %v", adapter.ErrMalformedItem, r)), nil
		}
	}()

	result = w.processor.Process(project)
	result.Item = item
	result.Fingerprint = fingerprint

	return result, nil
}

func failedResult(item m.CorpusItem, fingerprint uint64, reason string) m.ItemResult {
	return m.ItemResult{
		Item:        item,
		Status:      m.ItemFailed,
		Fingerprint: fingerprint,
		Failures: []m.FailureRecord{{
			ProgramID: item.ProgramID,
			Date:      item.Date,
			Kind:      m.FailureMalformedItem,
			Reason:    reason,
		}},
	}
}

// emit writes the rows of one result and updates the run report.
func (w *workflow) emit(
	ctx context.Context,
	sink adapter.RowSink,
	tracker *snapshotTracker,
	args AnalyzeArgs,
	report *m.RunReport,
	result m.ItemResult,
) error {
	if args.SkipUnchanged && result.Status == m.ItemProcessed && tracker.unchanged(result.Item.ProgramID, result.Fingerprint) {
		w.logger.Debug("skipping unchanged snapshot", "program", result.Item.ProgramID, "date", m.FormatDate(result.Item.Date))

		result = m.ItemResult{Item: result.Item, Status: m.ItemUnchanged, Fingerprint: result.Fingerprint}
	}

	switch result.Status {
	case m.ItemFailed:
		report.Failed++
		report.FailedItems = append(report.FailedItems, result.Item.Key())
		w.logger.Warn("skipping malformed corpus item", "program", result.Item.ProgramID,
			"date", m.FormatDate(result.Item.Date), "reason", result.Failures[0].Reason)
	case m.ItemUnchanged:
		report.Unchanged++
	default:
		report.Processed++
	}

	for _, f := range result.Failures {
		if f.Kind == m.FailureStructuralAnomaly {
			report.Anomalies++
			w.logger.Debug("skipping script", "program", f.ProgramID, "scope", f.Scope, "reason", f.Reason)
		}
	}

	if err := writeResult(ctx, sink, args.Arity, result); err != nil {
		return err
	}

	report.Rows.Add(result)
	w.ui.DisplayItem(result)

	return nil
}

func writeResult(ctx context.Context, sink adapter.RowSink, arity int, result m.ItemResult) error {
	for _, r := range result.Commands {
		if err := sink.Append(ctx, adapter.TableCommands, r.Row(arity)); err != nil {
			return err
		}
	}

	for _, r := range result.Summaries {
		if err := sink.Append(ctx, adapter.TableScripts, r.Row()); err != nil {
			return err
		}
	}

	for _, r := range result.Procedures {
		if err := sink.Append(ctx, adapter.TableProcedures, r.Row()); err != nil {
			return err
		}
	}

	for _, r := range result.Clones {
		if err := sink.Append(ctx, adapter.TableClones, r.Row()); err != nil {
			return err
		}
	}

	for _, r := range result.WaitClones {
		if err := sink.Append(ctx, adapter.TableWaitClones, r.Row()); err != nil {
			return err
		}
	}

	for _, r := range result.Failures {
		if err := sink.Append(ctx, adapter.TableFailures, r.Row()); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks that every corpus item is syntactically valid JSON.
func (w *workflow) Validate(ctx context.Context, args ValidateArgs) error {
	items, err := w.corpus.List(ctx, args.Corpus)
	if err != nil {
		return err
	}

	if err := w.ui.Start(controller.WithValidateMode()); err != nil {
		return err
	}
	defer w.ui.Close()

	results := make([]m.Validation, 0, len(items))

	for _, item := range items {
		data, err := w.corpus.Read(ctx, item)
		if err != nil {
			return err
		}

		valid := w.decoder.Valid(data)
		if !valid {
			w.logger.Warn("invalid corpus item", "program", item.ProgramID, "date", m.FormatDate(item.Date))
		}

		results = append(results, m.Validation{Item: item, Valid: valid, Size: len(data)})
	}

	return w.ui.DisplayValidation(results)
}

// View displays previously stored run reports.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if args.Clean {
		if err := w.reports.CleanReports(ctx, args.Reports); err != nil {
			return err
		}
	}

	reports, err := w.reports.LoadReports(ctx, args.Reports)
	if err != nil {
		return err
	}

	if err := w.ui.Start(controller.WithViewMode()); err != nil {
		return err
	}
	defer w.ui.Close()

	return w.ui.DisplayReports(reports)
}
