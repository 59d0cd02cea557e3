package model

import "time"

// Path represents a storage location (file path or afs URL).
type Path string

// CorpusItem identifies one serialized project snapshot in storage.
type CorpusItem struct {
	ProgramID string
	Date      time.Time
	URL       string
}

// Key returns the identifier used in failure lists and logs.
func (c CorpusItem) Key() string {
	return c.ProgramID + "@" + FormatDate(c.Date)
}

// ItemStatus is the outcome of processing one corpus item.
type ItemStatus string

const (
	// ItemProcessed means rows were produced for the item.
	ItemProcessed ItemStatus = "processed"
	// ItemFailed means the item was malformed and contributed nothing.
	ItemFailed ItemStatus = "failed"
	// ItemUnchanged means the item repeated the program's previous snapshot.
	ItemUnchanged ItemStatus = "unchanged"
)

// ItemResult holds every row produced for one corpus item.
type ItemResult struct {
	Item        CorpusItem
	Status      ItemStatus
	Fingerprint uint64
	Commands    []CommandRecord
	Summaries   []ScriptSummaryRecord
	Procedures  []ProcedureRecord
	Clones      []CloneGroupRecord
	WaitClones  []CloneGroupRecord
	Failures    []FailureRecord
}

// Validation is the outcome of checking one corpus item's JSON.
type Validation struct {
	Item  CorpusItem
	Valid bool
	Size  int
}
