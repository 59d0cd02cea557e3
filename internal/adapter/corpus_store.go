package adapter

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/viant/afs"

	m "github.com/mouse-blink/blockscan/internal/model"
)

const corpusExt = ".json"

// CorpusStore lists and reads corpus items. Any afs URL works as a root:
// local directories, mem:// and archive URLs alike.
type CorpusStore interface {
	// List returns every corpus item under root, sorted by program and date.
	List(ctx context.Context, root m.Path) ([]m.CorpusItem, error)

	// Read loads the raw JSON text of an item.
	Read(ctx context.Context, item m.CorpusItem) ([]byte, error)
}

type corpusStore struct {
	fs afs.Service
}

// NewCorpusStore constructs a CorpusStore backed by the provided afs service.
func NewCorpusStore(fs afs.Service) CorpusStore {
	return &corpusStore{fs: fs}
}

func (s *corpusStore) List(ctx context.Context, root m.Path) ([]m.CorpusItem, error) {
	var items []m.CorpusItem

	if err := s.list(ctx, string(root), &items); err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.ProgramID != b.ProgramID {
			return a.ProgramID < b.ProgramID
		}

		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}

		return a.URL < b.URL
	})

	return items, nil
}

func (s *corpusStore) list(ctx context.Context, root string, items *[]m.CorpusItem) error {
	objects, err := s.fs.List(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to list corpus %s: %w", root, err)
	}

	for i, object := range objects {
		if object.IsDir() {
			// afs lists the folder itself first
			if i == 0 {
				continue
			}

			if err := s.list(ctx, object.URL(), items); err != nil {
				return err
			}

			continue
		}

		name := object.Name()
		if !strings.EqualFold(path.Ext(name), corpusExt) {
			continue
		}

		programID, date := ParseItemName(name, object.ModTime())
		*items = append(*items, m.CorpusItem{
			ProgramID: programID,
			Date:      date,
			URL:       object.URL(),
		})
	}

	return nil
}

func (s *corpusStore) Read(ctx context.Context, item m.CorpusItem) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, item.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", item.URL, err)
	}

	return data, nil
}

// ParseItemName extracts the program id and snapshot date from a file name
// shaped <programId>_<yyyy-MM-dd>.json. Without a date suffix the whole base
// name is the id and modTime supplies the date.
func ParseItemName(name string, modTime time.Time) (string, time.Time) {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))

	if idx := strings.LastIndex(base, "_"); idx > 0 {
		if date, err := time.Parse(m.DateLayout, base[idx+1:]); err == nil {
			return base[:idx], date
		}
	}

	y, mo, d := modTime.UTC().Date()

	return base, time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
