// Package engine implements the CycleEngine: the two-phase
// (combinational fixed-point / sequential flop) driver of a constructed
// simulator graph, with a deduplicating event queue and the shadow-state
// flop discipline for registers (spec.md §4.F).
package engine

import (
	"container/list"
	"fmt"

	"github.com/hwsim/rtlsim/sensitivity"
	"github.com/hwsim/rtlsim/signal"
)

// Engine is the CycleEngine. It implements signal.Notifier so package
// bind can hand it to every signal.Value at construction time; nothing
// else in the pipeline depends on package engine, keeping the
// dependency direction one-way.
type Engine struct {
	queue   *list.List // of signal.Callback
	inQueue map[signal.CallbackID]*list.Element

	current signal.CallbackID // 0 (the zero value) means "no block executing"

	registerList []*signal.Value

	sequential []*sensitivity.SequentialBlock

	ncycles uint64
}

// New returns an Engine with an empty event queue. SetSequential must be
// called once construction finishes gathering the model's tick/posedge
// blocks, before the first Cycle().
func New() *Engine {
	return &Engine{
		queue:   list.New(),
		inQueue: make(map[signal.CallbackID]*list.Element),
	}
}

// SetSequential installs the ordered sequential-block list Cycle runs
// unconditionally once per cycle.
func (e *Engine) SetSequential(blocks []*sensitivity.SequentialBlock) {
	e.sequential = blocks
}

// Enqueue implements signal.Notifier. It schedules every callback not
// already pending and not the block presently executing (self-write
// suppression, spec.md §8 invariant 5), preserving at-most-once
// membership (invariant 4).
func (e *Engine) Enqueue(callbacks []signal.Callback) {
	for _, cb := range callbacks {
		if cb.ID() == e.current {
			continue
		}
		if _, pending := e.inQueue[cb.ID()]; pending {
			continue
		}
		elem := e.queue.PushBack(cb)
		e.inQueue[cb.ID()] = elem
	}
}

// RecordShadowWrite implements signal.Notifier: appends v to the
// register-to-flop list for the current cycle. Append-only; duplicate
// entries for the same signal within one cycle are allowed, per
// spec.md 4.F ("duplicates allowed").
func (e *Engine) RecordShadowWrite(v *signal.Value) {
	e.registerList = append(e.registerList, v)
}

// Enqueue a single callback directly (used by slicelower/sensitivity to
// prime the queue at construction time).
func (e *Engine) EnqueueOne(cb signal.Callback) {
	e.Enqueue([]signal.Callback{cb})
}

// Settle drains the event queue to empty, invoking the oldest pending
// callback first each iteration (FIFO drain order, spec.md §5). Package
// signal never calls this directly; only Engine does, so callbacks are
// never invoked recursively — a write during execution enqueues, it
// never re-enters (spec.md §5's third ordering guarantee).
//
// Termination is only guaranteed for an acyclic combinational subgraph;
// the engine does not detect cycles (spec.md §4.F, §7 CombinationalCycle
// — a known, documented limitation; package lint offers an optional,
// out-of-hot-path pre-flight check for this).
func (e *Engine) Settle() error {
	for e.queue.Len() > 0 {
		front := e.queue.Front()
		cb := front.Value.(signal.Callback)
		e.queue.Remove(front)
		delete(e.inQueue, cb.ID())

		e.current = cb.ID()
		err := cb.Invoke()
		e.current = 0

		if err != nil {
			return fmt.Errorf("engine: settle: callback invocation failed: %w", err)
		}
	}
	return nil
}

// Cycle runs exactly one clock cycle per spec.md 4.F:
//  1. Settle() drains combinational effects of any pending input changes.
//  2. Every sequential block runs once, in declaration order, observing
//     pre-flop current values (spec.md §5's first ordering guarantee).
//  3. Every signal written to shadow this cycle is flopped (shadow ->
//     current), which may enqueue combinational callbacks.
//  4. Settle() drains combinational effects of the newly flopped values.
//  5. The cycle counter advances by exactly one (spec.md §8 invariant 7).
func (e *Engine) Cycle() error {
	if err := e.Settle(); err != nil {
		return err
	}

	for _, seq := range e.sequential {
		if err := seq.Run(); err != nil {
			return fmt.Errorf("engine: cycle: sequential block %s: %w", seq.Block.Name, err)
		}
	}

	for len(e.registerList) > 0 {
		v := e.registerList[0]
		e.registerList = e.registerList[1:]
		if err := v.Flop(); err != nil {
			return fmt.Errorf("engine: cycle: flop: %w", err)
		}
	}

	if err := e.Settle(); err != nil {
		return err
	}

	e.ncycles++
	return nil
}

// NCycles returns the number of completed Cycle() calls.
func (e *Engine) NCycles() uint64 { return e.ncycles }

// Reset drives reset high for two cycles then releases it, per spec.md
// 4.F: "write 1 to the model's designated reset input, cycle() twice,
// then write 0." The engine addresses the reset signal only by the
// *signal.Value handle the caller supplies; ownership of what that
// signal means stays with the model.
func (e *Engine) Reset(resetSignal *signal.Value) error {
	width := resetSignal.Width()
	if err := resetSignal.WriteComb(signal.FromUint64(width, 1)); err != nil {
		return err
	}
	if err := e.Cycle(); err != nil {
		return err
	}
	if err := e.Cycle(); err != nil {
		return err
	}
	return resetSignal.WriteComb(signal.FromUint64(width, 0))
}

// QueueLen reports the number of callbacks currently pending, for
// diagnostics.
func (e *Engine) QueueLen() int { return e.queue.Len() }
