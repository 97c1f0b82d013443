// Package report implements the diagnostic report engine: the component
// registry, the orchestrator that drives components over a snapshot, and the
// individual analysis components.
package report

import (
	"context"

	"github.com/tinmanjk/msos/internal/snapshot"
)

// Component is one independent analysis unit. Components are created fresh
// per run and carry no cross-run state; the snapshot is borrowed, never
// mutated.
//
// Generate returns the section body, or (nil, nil) when the analysis is not
// applicable to this snapshot; that is a clean decline, not an error. A
// non-nil error is an unrecoverable component fault; the orchestrator
// isolates it and continues with the remaining components.
type Component interface {
	// Name is the stable machine identifier of the component.
	Name() string

	// Title is the human-readable section title.
	Title() string

	// Generate runs the analysis against the snapshot.
	Generate(ctx context.Context, snap snapshot.Snapshot) (any, error)
}

// RegistryConfig tunes the default component set.
type RegistryConfig struct {
	// TopConsumers is how many ranked heap type groups the top-memory
	// component retains. Zero means the default.
	TopConsumers int
}

// DefaultComponents returns the full component set in execution order. The
// list is static: execution order is deterministic and there is no runtime
// discovery.
func DefaultComponents() []Component {
	return ComponentsFor(RegistryConfig{})
}

// ComponentsFor returns the component set in execution order, tuned by cfg.
func ComponentsFor(cfg RegistryConfig) []Component {
	return []Component{
		NewTargetOverviewComponent(),
		NewUnhandledExceptionComponent(),
		NewLoadedModulesComponent(),
		NewThreadStacksComponent(),
		NewBlockedThreadsComponent(),
		NewMemoryUsageComponent(),
		NewTopMemoryConsumersComponent(cfg.TopConsumers),
		NewMemoryFragmentationComponent(),
		NewFinalizationQueuesComponent(),
		NewRecommendationsComponent(),
	}
}
