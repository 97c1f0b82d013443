package report

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/pkg/model"
	"github.com/tinmanjk/msos/pkg/utils"
)

// Generator orchestrates report generation: it runs every registered
// component sequentially over the snapshot and assembles the accepted
// contributions into a ReportDocument.
//
// Execution is deliberately single-threaded. Several components acquire the
// snapshot's secondary stack-walking handle, which is exclusive and
// non-reentrant; two components must never hold it concurrently.
type Generator struct {
	components []Component
	clock      utils.Clock
	logger     utils.Logger
	tracer     trace.Tracer
}

// GeneratorOption configures the Generator.
type GeneratorOption func(*Generator)

// WithComponents replaces the default component registry.
func WithComponents(components []Component) GeneratorOption {
	return func(g *Generator) {
		g.components = components
	}
}

// WithClock sets the time source used for the document timestamps.
func WithClock(clock utils.Clock) GeneratorOption {
	return func(g *Generator) {
		g.clock = clock
	}
}

// WithLogger sets the logger.
func WithLogger(logger utils.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a Generator with the default component registry, a
// real clock and a null logger.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		components: DefaultComponents(),
		clock:      utils.NewRealClock(),
		logger:     &utils.NullLogger{},
		tracer:     otel.Tracer("msos/report"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run generates the report. Components run in registration order; a clean
// decline omits the section, a fault marks the document InternalError and
// records the component name, and in both cases the remaining components
// still run. Run never returns an error: an empty InternalError document is
// valid output.
func (g *Generator) Run(ctx context.Context, snap snapshot.Snapshot) *model.ReportDocument {
	doc := &model.ReportDocument{
		StartedAt: g.clock.Now(),
		Result:    model.ResultCompletedSuccessfully,
		Sections:  make([]model.Section, 0, len(g.components)),
	}

	for _, c := range g.components {
		body, err := g.generate(ctx, c, snap)
		if err != nil {
			g.logger.Error("component %s failed: %v", c.Name(), err)
			doc.Result = model.ResultInternalError
			doc.FailedComponents = append(doc.FailedComponents, c.Name())
			continue
		}
		if body == nil {
			g.logger.Debug("component %s: nothing to contribute", c.Name())
			continue
		}
		doc.Sections = append(doc.Sections, model.Section{
			Name:  c.Name(),
			Title: c.Title(),
			Body:  body,
		})
	}

	doc.EndedAt = g.clock.Now()
	return doc
}

// generate invokes one component with fault isolation: a panic inside the
// component surfaces as an error instead of terminating the run.
func (g *Generator) generate(ctx context.Context, c Component, snap snapshot.Snapshot) (body any, err error) {
	ctx, span := g.tracer.Start(ctx, "report."+c.Name())
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("component %s panicked: %v", c.Name(), r)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	body, err = c.Generate(ctx, snap)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return body, err
}
