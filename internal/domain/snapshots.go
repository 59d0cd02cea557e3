package domain

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const snapshotCacheSize = 4096

// snapshotTracker remembers the last content fingerprint seen per program.
type snapshotTracker struct {
	last *lru.Cache[string, uint64]
}

func newSnapshotTracker(size int) (*snapshotTracker, error) {
	if size <= 0 {
		size = snapshotCacheSize
	}

	cache, err := lru.New[string, uint64](size)
	if err != nil {
		return nil, err
	}

	return &snapshotTracker{last: cache}, nil
}

// unchanged records fp as the latest snapshot of programID and reports
// whether it equals the previous one.
func (s *snapshotTracker) unchanged(programID string, fp uint64) bool {
	prev, ok := s.last.Get(programID)
	s.last.Add(programID, fp)

	return ok && prev == fp
}
