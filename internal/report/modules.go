package report

import (
	"context"

	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/pkg/model"
)

// LoadedModulesComponent lists the modules loaded in the target process.
type LoadedModulesComponent struct{}

// NewLoadedModulesComponent creates the component.
func NewLoadedModulesComponent() *LoadedModulesComponent {
	return &LoadedModulesComponent{}
}

// Name returns the component identifier.
func (c *LoadedModulesComponent) Name() string { return "loaded_modules" }

// Title returns the section title.
func (c *LoadedModulesComponent) Title() string { return "Loaded Modules" }

// Generate maps each module record field by field. A missing version string
// stays empty; resolution gaps never abort the component.
func (c *LoadedModulesComponent) Generate(_ context.Context, snap snapshot.Snapshot) (any, error) {
	mods := snap.Modules()
	out := make([]model.ModuleInfo, 0, len(mods))
	for _, m := range mods {
		out = append(out, model.ModuleInfo{
			FileName: m.FileName,
			FileSize: m.FileSize,
			Version:  m.Version,
			Managed:  m.Managed,
		})
	}
	return &model.ModulesReport{Modules: out}, nil
}
