// Package rtlsim is the SimulatorFacade (spec.md §4.G): it owns the
// constructed graph and exposes Reset/Cycle/EvalCombinational/NCycles/
// PrintLineTrace to callers, after running the full
// elaboration-to-simulation lowering pipeline (netbuild -> bind ->
// slicelower -> sensitivity) once, at construction time.
package rtlsim

import (
	"fmt"

	"github.com/hwsim/rtlsim/bind"
	"github.com/hwsim/rtlsim/engine"
	"github.com/hwsim/rtlsim/model"
	"github.com/hwsim/rtlsim/netbuild"
	"github.com/hwsim/rtlsim/sensitivity"
	"github.com/hwsim/rtlsim/signal"
	"github.com/hwsim/rtlsim/slicelower"
)

// Builder constructs a Simulator with the teacher's fluent WithX(...)
// convention (api.DriverBuilder, config.DeviceBuilder): each With method
// returns a modified copy, and Build runs the pipeline.
type Builder struct {
	model model.ModelRoot
	dev   bool
}

// WithModel sets the elaborated model to simulate.
func (b Builder) WithModel(m model.ModelRoot) Builder {
	b.model = m
	return b
}

// WithDev selects the dev facade variant. It only sets the flag that
// Simulator.IsDev reports: cycle behavior is identical to the perf
// variant, the Simulator carries no extra diagnostics of its own and
// toggles no clock pin, and package diag can be attached to either
// variant.
func (b Builder) WithDev() Builder {
	b.dev = true
	return b
}

// Build runs net construction, signal binding, slice lowering, and
// sensitivity binding, in that order, and returns a ready Simulator.
func (b Builder) Build() (*Simulator, error) {
	if b.model == nil {
		return nil, fmt.Errorf("rtlsim: Builder.Build: no model set")
	}
	if !b.model.IsElaborated() {
		return nil, fmt.Errorf("rtlsim: %w", model.ErrNotElaborated)
	}

	arena := b.model.Arena()
	root := b.model.RootModule()
	eng := engine.New()

	netRes, err := netbuild.Build(arena, root)
	if err != nil {
		return nil, fmt.Errorf("rtlsim: net construction: %w", err)
	}

	if err := bind.Bind(arena, netRes, eng); err != nil {
		return nil, fmt.Errorf("rtlsim: signal binding: %w", err)
	}

	closures, err := slicelower.Lower(arena, netRes, eng)
	if err != nil {
		return nil, fmt.Errorf("rtlsim: slice lowering: %w", err)
	}

	sensRes, err := sensitivity.Bind(arena, root, eng)
	if err != nil {
		return nil, fmt.Errorf("rtlsim: sensitivity binding: %w", err)
	}
	eng.SetSequential(sensRes.Sequential)

	var resetSignal *signal.Value
	if rid := b.model.Reset(); rid != model.NoNode {
		resetSignal = arena.Node(rid).Signal
	}

	sim := &Simulator{
		engine:      eng,
		model:       b.model,
		arena:       arena,
		root:        root,
		dev:         b.dev,
		closures:    closures,
		sensitivity: sensRes,
		resetSignal: resetSignal,
	}

	return sim, nil
}

// Option configures a Builder; used by New for the common case.
type Option func(Builder) Builder

// WithDevDiagnostics selects the dev facade variant (see Builder.WithDev).
func WithDevDiagnostics() Option {
	return func(b Builder) Builder { return b.WithDev() }
}

// New is sugar over Builder for the common case of "just build it":
//
//	sim, err := rtlsim.New(model, rtlsim.WithDevDiagnostics())
func New(m model.ModelRoot, opts ...Option) (*Simulator, error) {
	b := Builder{}.WithModel(m)
	for _, opt := range opts {
		b = opt(b)
	}
	return b.Build()
}
