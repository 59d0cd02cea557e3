package domain

import (
	m "github.com/mouse-blink/blockscan/internal/model"
)

// Processor turns one decoded project into its output rows.
type Processor interface {
	Process(project m.Project) m.ItemResult
}

type processor struct {
	flattener Flattener
	miner     WaitMiner
	grouper   CloneGrouper
}

// NewProcessor constructs a Processor from the engine components.
func NewProcessor(flattener Flattener, miner WaitMiner, grouper CloneGrouper) Processor {
	return &processor{
		flattener: flattener,
		miner:     miner,
		grouper:   grouper,
	}
}

// Process flattens every script, mines its wait blocks, and runs clone
// detection once over the scripts and once over the wait blocks.
func (p *processor) Process(project m.Project) m.ItemResult {
	result := m.ItemResult{Status: m.ItemProcessed}

	var waits []m.Script

	for _, script := range project.Scripts {
		flat := p.flattener.Flatten(script)
		result.Commands = append(result.Commands, flat.Commands...)
		result.Summaries = append(result.Summaries, flat.Summary)
		result.Procedures = append(result.Procedures, flat.Procedures...)

		waits = append(waits, p.miner.Mine(script)...)
	}

	result.Clones = p.grouper.DetectClones(project.Scripts, m.CloneScripts)
	result.WaitClones = p.grouper.DetectClones(waits, m.CloneWaitBlocks)

	for _, anomaly := range project.Anomalies {
		result.Failures = append(result.Failures, m.FailureRecord{
			ProgramID: project.ProgramID,
			Date:      project.Date,
			Kind:      m.FailureStructuralAnomaly,
			Scope:     anomaly.Scope.QuotedName(),
			Reason:    anomaly.Reason,
		})
	}

	return result
}
