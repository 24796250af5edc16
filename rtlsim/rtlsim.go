package rtlsim

import (
	"fmt"

	"github.com/hwsim/rtlsim/engine"
	"github.com/hwsim/rtlsim/model"
	"github.com/hwsim/rtlsim/sensitivity"
	"github.com/hwsim/rtlsim/signal"
	"github.com/hwsim/rtlsim/slicelower"
)

// Simulator is the constructed, ready-to-run graph. Its public surface
// is exactly spec.md §6's "Exposed to callers" list.
type Simulator struct {
	engine *engine.Engine
	model  model.ModelRoot
	arena  *model.Arena
	root   *model.Module
	dev    bool

	closures    []*slicelower.Closure
	sensitivity *sensitivity.Result
	resetSignal *signal.Value
}

// Reset drives the model's designated reset input high for two cycles
// then releases it, per spec.md 4.F. It is a fatal configuration error
// to call Reset on a model that declares no reset input.
func (s *Simulator) Reset() error {
	if s.resetSignal == nil {
		return fmt.Errorf("rtlsim: Reset: model declares no reset signal")
	}
	return s.engine.Reset(s.resetSignal)
}

// Cycle runs one combinational-settle/flop/combinational-settle cycle,
// per spec.md 4.F, and advances NCycles by exactly one.
func (s *Simulator) Cycle() error {
	return s.engine.Cycle()
}

// EvalCombinational drains the event queue without advancing the clock.
// Calling it twice with no intervening writes is a no-op (spec.md §8).
func (s *Simulator) EvalCombinational() error {
	return s.engine.Settle()
}

// NCycles returns the number of completed Cycle() calls.
func (s *Simulator) NCycles() uint64 {
	return s.engine.NCycles()
}

// IsDev reports whether this Simulator was built with WithDevDiagnostics.
func (s *Simulator) IsDev() bool { return s.dev }

// Model exposes the underlying model to callers.
func (s *Simulator) Model() model.ModelRoot { return s.model }

// QueueLen reports the number of combinational callbacks currently
// pending; zero between calls to Cycle()/EvalCombinational() unless a
// combinational cycle is diverging (spec.md §7 CombinationalCycle).
func (s *Simulator) QueueLen() int { return s.engine.QueueLen() }
