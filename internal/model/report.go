package model

import "time"

// RowCounts counts the rows written per output table.
type RowCounts struct {
	Commands   int `yaml:"commands"`
	Scripts    int `yaml:"scripts"`
	Procedures int `yaml:"procedures"`
	Clones     int `yaml:"clones"`
	WaitClones int `yaml:"wait_clones"`
	Failures   int `yaml:"failures"`
}

// Add accumulates the rows of one item result.
func (c *RowCounts) Add(r ItemResult) {
	c.Commands += len(r.Commands)
	c.Scripts += len(r.Summaries)
	c.Procedures += len(r.Procedures)
	c.Clones += len(r.Clones)
	c.WaitClones += len(r.WaitClones)
	c.Failures += len(r.Failures)
}

// RunReport summarises one analyze run.
type RunReport struct {
	Corpus    Path
	Output    Path
	StartedAt time.Time
	Duration  time.Duration
	Items     int
	Processed int
	Failed    int
	Unchanged int
	Anomalies int
	Rows      RowCounts
	// FailedItems lists the keys of malformed corpus items.
	FailedItems []string
}
