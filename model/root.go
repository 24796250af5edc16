package model

// ModelRoot is everything the simulator core consumes from the
// elaboration layer (spec.md §6). It is produced by an external
// front-end; this package's LoadFixture is a stand-in used by this
// repository's own tests and examples.
type ModelRoot interface {
	// IsElaborated reports whether elaboration has completed. The
	// construction pipeline refuses a model for which this is false
	// (ErrNotElaborated).
	IsElaborated() bool

	// Arena is the backing store for every Node/Edge/Module reachable
	// from RootModule.
	Arena() *Arena

	// RootModule is the top of the module tree.
	RootModule() *Module

	// Reset returns the NodeID of the designated synchronous-reset
	// input, or NoNode if the model declares none.
	Reset() NodeID

	// LineTrace renders a human-readable one-line summary of the
	// model's current state; SimulatorFacade.PrintLineTrace delegates
	// here after rendering signal state of its own.
	LineTrace() string
}

// Root is the concrete ModelRoot this repository builds (by fixture
// loader or directly via its builder methods in tests/examples). A real
// deployment would instead adapt its own elaborator's output to the
// ModelRoot interface.
type Root struct {
	elaborated bool
	arena      *Arena
	root       *Module
	reset      NodeID
	traceLabel string
}

// NewRoot constructs an (initially un-elaborated) Root around root. Call
// MarkElaborated once the caller is done building the module tree.
func NewRoot(arena *Arena, root *Module, label string) *Root {
	return &Root{arena: arena, root: root, reset: NoNode, traceLabel: label}
}

// MarkElaborated flips IsElaborated to true. Building nets before this is
// called is a construction-pipeline error (ErrNotElaborated).
func (r *Root) MarkElaborated() { r.elaborated = true }

// SetReset designates id as the synchronous-reset input.
func (r *Root) SetReset(id NodeID) { r.reset = id }

func (r *Root) IsElaborated() bool  { return r.elaborated }
func (r *Root) Arena() *Arena       { return r.arena }
func (r *Root) RootModule() *Module { return r.root }
func (r *Root) Reset() NodeID       { return r.reset }

func (r *Root) LineTrace() string { return r.traceLabel }
