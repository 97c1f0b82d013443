// Package advisor derives recommendations from a process snapshot.
package advisor

import (
	"fmt"

	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/internal/statistics"
	"github.com/tinmanjk/msos/pkg/model"
)

// Advisor evaluates a set of rules against a snapshot. Each rule inspects
// the snapshot on its own; rules do not depend on other report sections.
type Advisor struct {
	rules []Rule
}

// Rule is one recommendation rule.
type Rule struct {
	Name        string
	Description string
	Check       RuleCheckFunc
}

// RuleCheckFunc inspects the snapshot and yields zero or more findings.
type RuleCheckFunc func(snap snapshot.Snapshot) []model.Recommendation

// NewAdvisor creates an Advisor with the default rule set.
func NewAdvisor() *Advisor {
	return &Advisor{rules: defaultRules()}
}

// NewAdvisorWithRules creates an Advisor with custom rules.
func NewAdvisorWithRules(rules []Rule) *Advisor {
	return &Advisor{rules: rules}
}

// Advise runs every rule and collects the findings.
func (a *Advisor) Advise(snap snapshot.Snapshot) []model.Recommendation {
	recs := make([]model.Recommendation, 0)
	for _, rule := range a.rules {
		if rule.Check == nil {
			continue
		}
		recs = append(recs, rule.Check(snap)...)
	}
	return recs
}

func defaultRules() []Rule {
	return []Rule{
		{
			Name:        "unhandled_exception",
			Description: "A thread holds a live unhandled exception",
			Check:       checkUnhandledException,
		},
		{
			Name:        "blocked_threads",
			Description: "Many threads are blocked on synchronization objects",
			Check:       checkBlockedThreads,
		},
		{
			Name:        "committed_memory",
			Description: "Committed memory approaches the usable address space",
			Check:       checkCommittedMemory,
		},
		{
			Name:        "dominant_heap_type",
			Description: "A single type dominates managed heap usage",
			Check:       checkDominantHeapType,
		},
	}
}

func checkUnhandledException(snap snapshot.Snapshot) []model.Recommendation {
	for _, t := range snap.Threads() {
		exc := t.CurrentException()
		if exc == nil {
			continue
		}
		return []model.Recommendation{{
			Rule:     "unhandled_exception",
			Severity: "error",
			Message: fmt.Sprintf(
				"thread %d faulted with %s: %s; inspect the unhandled exception section",
				t.OSThreadID(), exc.TypeName, exc.Message),
		}}
	}
	return nil
}

// blockedThreadThreshold is the blocked-thread count above which possible
// contention or a hang is flagged.
const blockedThreadThreshold = 2

func checkBlockedThreads(snap snapshot.Snapshot) []model.Recommendation {
	blocked := 0
	for _, t := range snap.Threads() {
		if len(t.BlockingObjects()) > 0 {
			blocked++
		}
	}
	if blocked < blockedThreadThreshold {
		return nil
	}
	return []model.Recommendation{{
		Rule:     "blocked_threads",
		Severity: "warning",
		Message: fmt.Sprintf(
			"%d threads are blocked on synchronization objects; traverse the lock graph for wait cycles",
			blocked),
	}}
}

// committedMemoryShare is the committed fraction of the usable address space
// (committed plus free) above which memory pressure is flagged.
const committedMemoryShare = 0.9

func checkCommittedMemory(snap snapshot.Snapshot) []model.Recommendation {
	var committed, free uint64
	for _, region := range snap.MemoryRegions() {
		switch {
		case region.IsFree():
			free += region.Size
		case region.IsCommitted():
			committed += region.Size
		}
	}
	total := committed + free
	if total == 0 {
		return nil
	}

	share := float64(committed) / float64(total)
	if share < committedMemoryShare {
		return nil
	}
	return []model.Recommendation{{
		Rule:     "committed_memory",
		Severity: "warning",
		Message: fmt.Sprintf(
			"%d of %d usable bytes are committed (%.0f%%); the process is close to its memory ceiling",
			committed, total, share*100),
	}}
}

// dominantTypeShare is the fraction of total heap bytes one type must hold
// to be flagged.
const dominantTypeShare = 0.5

func checkDominantHeapType(snap snapshot.Snapshot) []model.Recommendation {
	heap, ok := snap.Heap()
	if !ok {
		return nil
	}

	calc := statistics.NewTypeStatsCalculator(statistics.WithTopN(1))
	result, err := calc.Calculate(heap)
	if err != nil || len(result.Types) == 0 || result.TotalBytes == 0 {
		return nil
	}

	top := result.Types[0]
	share := float64(top.Size) / float64(result.TotalBytes)
	if share < dominantTypeShare {
		return nil
	}
	return []model.Recommendation{{
		Rule:     "dominant_heap_type",
		Severity: "warning",
		Message: fmt.Sprintf(
			"type %s holds %.0f%% of the managed heap (%d bytes across %d objects)",
			top.TypeName, share*100, top.Size, top.Count),
	}}
}
