// Package formatter renders report sections to the console log.
package formatter

import (
	"github.com/tinmanjk/msos/pkg/model"
	"github.com/tinmanjk/msos/pkg/utils"
)

// SectionFormatter renders one kind of report section.
type SectionFormatter interface {
	// Format writes a human-readable rendering of the section to the logger.
	Format(section *model.Section, log utils.Logger)

	// SupportedSections returns the section names this formatter handles.
	SupportedSections() []string
}

// Registry routes sections to their formatter.
type Registry struct {
	formatters map[string]SectionFormatter
	fallback   SectionFormatter
}

// NewRegistry creates a registry with the default formatters.
func NewRegistry() *Registry {
	r := &Registry{
		formatters: make(map[string]SectionFormatter),
		fallback:   &DefaultFormatter{},
	}

	r.Register(&ExceptionFormatter{})
	r.Register(&LockGraphFormatter{})
	r.Register(&MemoryUsageFormatter{})
	r.Register(&TopConsumersFormatter{})
	r.Register(&RecommendationsFormatter{})

	return r
}

// Register registers a formatter for its supported sections.
func (r *Registry) Register(f SectionFormatter) {
	for _, name := range f.SupportedSections() {
		r.formatters[name] = f
	}
}

// FormatDocument renders the whole document, section by section.
func (r *Registry) FormatDocument(doc *model.ReportDocument, log utils.Logger) {
	if doc == nil {
		return
	}

	log.Info("report result: %s (%d sections, %s)",
		doc.Result, len(doc.Sections), doc.EndedAt.Sub(doc.StartedAt))
	for _, name := range doc.FailedComponents {
		log.Warn("component %s failed during generation", name)
	}

	for i := range doc.Sections {
		section := &doc.Sections[i]
		f, ok := r.formatters[section.Name]
		if !ok {
			f = r.fallback
		}
		f.Format(section, log)
	}
}
