package formatter

import (
	"github.com/tinmanjk/msos/pkg/model"
	"github.com/tinmanjk/msos/pkg/utils"
)

// DefaultFormatter prints only the section title. Used for sections without
// a dedicated formatter.
type DefaultFormatter struct{}

// SupportedSections returns no names; the registry uses this formatter as
// fallback only.
func (f *DefaultFormatter) SupportedSections() []string { return nil }

// Format writes the section title.
func (f *DefaultFormatter) Format(section *model.Section, log utils.Logger) {
	log.Info("== %s", section.Title)
}

// ExceptionFormatter renders the unhandled-exception section.
type ExceptionFormatter struct{}

// SupportedSections returns the handled section names.
func (f *ExceptionFormatter) SupportedSections() []string {
	return []string{"unhandled_exception"}
}

// Format writes the exception chain, one line per link.
func (f *ExceptionFormatter) Format(section *model.Section, log utils.Logger) {
	body, ok := section.Body.(*model.ExceptionReport)
	if !ok {
		log.Info("== %s", section.Title)
		return
	}

	log.Info("== %s (thread %d)", section.Title, body.OSThreadID)
	depth := 0
	for exc := body.Exception; exc != nil; exc = exc.InnerException {
		prefix := "exception"
		if depth > 0 {
			prefix = "inner exception"
		}
		log.Info("  %s: %s: %s (%d frames)", prefix, exc.ExceptionType, exc.Message, len(exc.StackFrames))
		depth++
	}
}

// LockGraphFormatter renders the blocked-threads section.
type LockGraphFormatter struct{}

// SupportedSections returns the handled section names.
func (f *LockGraphFormatter) SupportedSections() []string {
	return []string{"blocked_threads"}
}

// Format writes one line per blocked thread and lock.
func (f *LockGraphFormatter) Format(section *model.Section, log utils.Logger) {
	body, ok := section.Body.(*model.LockGraphReport)
	if !ok {
		log.Info("== %s", section.Title)
		return
	}

	log.Info("== %s (%d blocked threads)", section.Title, len(body.Threads))
	for _, t := range body.Threads {
		for _, lock := range t.Locks {
			typeName := lock.ObjectType
			if typeName == "" {
				typeName = "?"
			}
			log.Info("  thread %d waits on %s %#x (%s), %d owners, %d waiters",
				t.OSThreadID, lock.Reason, lock.Object, typeName, len(lock.Owners), len(lock.Waiters))
		}
	}
}

// MemoryUsageFormatter renders the memory-usage section.
type MemoryUsageFormatter struct{}

// SupportedSections returns the handled section names.
func (f *MemoryUsageFormatter) SupportedSections() []string {
	return []string{"memory_usage"}
}

// Format writes the usage totals.
func (f *MemoryUsageFormatter) Format(section *model.Section, log utils.Logger) {
	body, ok := section.Body.(*model.MemoryUsageReport)
	if !ok {
		log.Info("== %s", section.Title)
		return
	}

	log.Info("== %s", section.Title)
	log.Info("  committed=%d reserved=%d free=%d private=%d largest_free=%d",
		body.CommittedBytes, body.ReservedBytes, body.FreeBytes, body.PrivateBytes, body.LargestFreeBlock)
	if body.ManagedHeapBytes > 0 {
		log.Info("  managed heap=%d (gen0=%d gen1=%d gen2=%d loh=%d)",
			body.ManagedHeapBytes, body.GenerationSizes[0], body.GenerationSizes[1],
			body.GenerationSizes[2], body.GenerationSizes[3])
	}
}

// topConsumersShown is how many type rows the console rendering prints; the
// document itself keeps the full ranked list.
const topConsumersShown = 10

// TopConsumersFormatter renders the top-memory-consumers section.
type TopConsumersFormatter struct{}

// SupportedSections returns the handled section names.
func (f *TopConsumersFormatter) SupportedSections() []string {
	return []string{"top_memory_consumers"}
}

// Format writes the first rows of the ranking.
func (f *TopConsumersFormatter) Format(section *model.Section, log utils.Logger) {
	body, ok := section.Body.(*model.TopConsumersReport)
	if !ok {
		log.Info("== %s", section.Title)
		return
	}

	log.Info("== %s (%d objects, %d bytes)", section.Title, body.TotalObjects, body.TotalBytes)
	for i, ti := range body.Types {
		if i >= topConsumersShown {
			log.Info("  ... %d more types", len(body.Types)-topConsumersShown)
			break
		}
		log.Info("  %-60s count=%d size=%d avg=%.1f", ti.TypeName, ti.Count, ti.Size, ti.AverageSize)
	}
}

// RecommendationsFormatter renders the recommendations section.
type RecommendationsFormatter struct{}

// SupportedSections returns the handled section names.
func (f *RecommendationsFormatter) SupportedSections() []string {
	return []string{"recommendations"}
}

// Format writes one line per recommendation.
func (f *RecommendationsFormatter) Format(section *model.Section, log utils.Logger) {
	body, ok := section.Body.(*model.RecommendationsReport)
	if !ok {
		log.Info("== %s", section.Title)
		return
	}

	log.Info("== %s", section.Title)
	for _, rec := range body.Recommendations {
		log.Info("  [%s] %s: %s", rec.Severity, rec.Rule, rec.Message)
	}
}
