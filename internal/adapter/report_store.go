package adapter

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/minio/highwayhash"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/blockscan/internal/model"
)

const (
	reportExt     = ".yaml"
	indexFileName = "_index.yaml"
)

var reportHashKey = []byte("blockscan-run-report-hash-key-00")

// ReportStore persists and retrieves run reports.
type ReportStore interface {
	// SaveReport writes report under dir and regenerates the index.
	SaveReport(ctx context.Context, dir m.Path, report m.RunReport) (m.Path, error)
	// LoadReports returns every stored report ordered by start time.
	LoadReports(ctx context.Context, dir m.Path) ([]m.RunReport, error)
	// RegenerateIndex rewrites the index from the stored reports.
	RegenerateIndex(ctx context.Context, dir m.Path) error
	// CleanReports deletes every stored report and the index.
	CleanReports(ctx context.Context, dir m.Path) error
}

// LocalReportStore stores each run report as <hash>.yaml through afs.
type LocalReportStore struct {
	fs afs.Service
}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore(fs afs.Service) *LocalReportStore {
	return &LocalReportStore{fs: fs}
}

type rowsYAML struct {
	Commands   int `yaml:"commands"`
	Scripts    int `yaml:"scripts"`
	Procedures int `yaml:"procedures"`
	Clones     int `yaml:"clones"`
	WaitClones int `yaml:"wait_clones"`
	Failures   int `yaml:"failures"`
}

type reportYAML struct {
	Corpus      string   `yaml:"corpus"`
	Output      string   `yaml:"output"`
	StartedAt   string   `yaml:"started_at"`
	Duration    string   `yaml:"duration"`
	Items       int      `yaml:"items"`
	Processed   int      `yaml:"processed"`
	Failed      int      `yaml:"failed"`
	Unchanged   int      `yaml:"unchanged"`
	Anomalies   int      `yaml:"anomalies"`
	Rows        rowsYAML `yaml:"rows"`
	FailedItems []string `yaml:"failed_items,omitempty"`
}

type indexReport struct {
	File      string `yaml:"file"`
	StartedAt string `yaml:"started_at"`
	Corpus    string `yaml:"corpus"`
	Items     int    `yaml:"items"`
	Failed    int    `yaml:"failed"`
}

type indexEntry struct {
	Reports []indexReport `yaml:"reports"`
}

func (rs *LocalReportStore) SaveReport(ctx context.Context, dir m.Path, report m.RunReport) (m.Path, error) {
	if dir == "" {
		return "", fmt.Errorf("reports path is empty")
	}

	data, err := yaml.Marshal(toReportYAML(report))
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	target := url.Join(string(dir), rs.computeReportHash(data)+reportExt)
	if err := rs.fs.Upload(ctx, target, outputFileMode, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", target, err)
	}

	if err := rs.RegenerateIndex(ctx, dir); err != nil {
		return "", err
	}

	return m.Path(target), nil
}

func (rs *LocalReportStore) LoadReports(ctx context.Context, dir m.Path) ([]m.RunReport, error) {
	stored, err := rs.loadStored(ctx, dir)
	if err != nil {
		return nil, err
	}

	reports := make([]m.RunReport, 0, len(stored))
	for _, s := range stored {
		reports = append(reports, s.report)
	}

	return reports, nil
}

func (rs *LocalReportStore) RegenerateIndex(ctx context.Context, dir m.Path) error {
	stored, err := rs.loadStored(ctx, dir)
	if err != nil {
		return err
	}

	idx := indexEntry{Reports: make([]indexReport, 0, len(stored))}
	for _, s := range stored {
		idx.Reports = append(idx.Reports, indexReport{
			File:      s.file,
			StartedAt: s.report.StartedAt.UTC().Format(time.RFC3339),
			Corpus:    string(s.report.Corpus),
			Items:     s.report.Items,
			Failed:    s.report.Failed,
		})
	}

	data, err := yaml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	target := url.Join(string(dir), indexFileName)
	if err := rs.fs.Upload(ctx, target, outputFileMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write index %s: %w", target, err)
	}

	return nil
}

func (rs *LocalReportStore) CleanReports(ctx context.Context, dir m.Path) error {
	if dir == "" {
		return fmt.Errorf("reports path is empty")
	}

	exists, err := rs.fs.Exists(ctx, string(dir))
	if err != nil || !exists {
		return nil //nolint:nilerr // nothing to clean
	}

	objects, err := rs.fs.List(ctx, string(dir))
	if err != nil {
		return fmt.Errorf("failed to list reports %s: %w", dir, err)
	}

	for _, object := range objects {
		if object.IsDir() || path.Ext(object.Name()) != reportExt {
			continue
		}

		if err := rs.fs.Delete(ctx, object.URL()); err != nil {
			return fmt.Errorf("failed to delete %s: %w", object.URL(), err)
		}
	}

	return nil
}

type storedReport struct {
	file   string
	report m.RunReport
}

func (rs *LocalReportStore) loadStored(ctx context.Context, dir m.Path) ([]storedReport, error) {
	if dir == "" {
		return nil, fmt.Errorf("reports path is empty")
	}

	exists, err := rs.fs.Exists(ctx, string(dir))
	if err != nil || !exists {
		return nil, nil //nolint:nilerr // a missing reports dir holds no reports
	}

	objects, err := rs.fs.List(ctx, string(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to list reports %s: %w", dir, err)
	}

	var stored []storedReport

	for _, object := range objects {
		name := object.Name()
		if object.IsDir() || name == indexFileName || path.Ext(name) != reportExt {
			continue
		}

		data, err := rs.fs.DownloadWithURL(ctx, object.URL())
		if err != nil {
			return nil, fmt.Errorf("failed to read report %s: %w", object.URL(), err)
		}

		var decoded reportYAML
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			return nil, fmt.Errorf("failed to decode report %s: %w", name, err)
		}

		stored = append(stored, storedReport{file: name, report: fromReportYAML(decoded)})
	}

	sort.SliceStable(stored, func(i, j int) bool {
		a, b := stored[i].report.StartedAt, stored[j].report.StartedAt
		if !a.Equal(b) {
			return a.Before(b)
		}

		return strings.Compare(stored[i].file, stored[j].file) < 0
	})

	return stored, nil
}

// computeReportHash returns 16 hex chars identifying the report content.
func (rs *LocalReportStore) computeReportHash(data []byte) string {
	return fmt.Sprintf("%016x", highwayhash.Sum64(data, reportHashKey))
}

func toReportYAML(r m.RunReport) reportYAML {
	return reportYAML{
		Corpus:      string(r.Corpus),
		Output:      string(r.Output),
		StartedAt:   r.StartedAt.UTC().Format(time.RFC3339),
		Duration:    r.Duration.String(),
		Items:       r.Items,
		Processed:   r.Processed,
		Failed:      r.Failed,
		Unchanged:   r.Unchanged,
		Anomalies:   r.Anomalies,
		Rows:        rowsYAML(r.Rows),
		FailedItems: r.FailedItems,
	}
}

func fromReportYAML(y reportYAML) m.RunReport {
	startedAt, _ := time.Parse(time.RFC3339, y.StartedAt)
	duration, _ := time.ParseDuration(y.Duration)

	return m.RunReport{
		Corpus:      m.Path(y.Corpus),
		Output:      m.Path(y.Output),
		StartedAt:   startedAt,
		Duration:    duration,
		Items:       y.Items,
		Processed:   y.Processed,
		Failed:      y.Failed,
		Unchanged:   y.Unchanged,
		Anomalies:   y.Anomalies,
		Rows:        m.RowCounts(y.Rows),
		FailedItems: y.FailedItems,
	}
}
