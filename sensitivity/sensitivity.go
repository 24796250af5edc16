// Package sensitivity implements the SensitivityBinder: for each
// combinational block it resolves the external analyser's static
// read-set to concrete signals and registers the block as a callback on
// each, priming the event queue so the first settle() reaches a
// consistent initial state (spec.md §4.E). It also gathers the ordered
// sequential-block list the CycleEngine runs once per cycle.
package sensitivity

import (
	"fmt"
	"log/slog"

	"github.com/hwsim/rtlsim/model"
	"github.com/hwsim/rtlsim/signal"
)

// Prime is the subset of the CycleEngine this package needs at
// construction time: the ability to seed the event queue. Defined here
// (rather than imported from package engine) to keep the dependency
// direction engine -> {netbuild, bind, slicelower, sensitivity}, never
// the reverse.
type Prime interface {
	EnqueueOne(cb signal.Callback)
}

// BlockCallback adapts a validated model.Block into a signal.Callback,
// the shape every per-signal callback set and the engine's event queue
// operate on uniformly (alongside slicelower.Closure).
type BlockCallback struct {
	id    signal.CallbackID
	Block *model.Block
	run   func() error
}

func (b *BlockCallback) ID() signal.CallbackID { return b.id }
func (b *BlockCallback) Invoke() error         { return b.run() }

// SequentialBlock is a validated tick/posedge-clk block, run
// unconditionally once per cycle by the CycleEngine in declaration
// order.
type SequentialBlock struct {
	Block *model.Block
	Run   func() error
}

// Result is SensitivityBinder's output.
type Result struct {
	Combinational []*BlockCallback
	Sequential    []*SequentialBlock
}

// Bind resolves and wires every combinational block reachable from root
// (depth-first through submodules), and gathers the sequential block
// list in the same order. A name in a block's read-set that resolves to
// neither a signal nor a homogeneous list of signals is logged as an
// UnresolvedSensitivity warning and skipped, per spec.md §7 — it does
// not abort Bind.
func Bind(arena *model.Arena, root *model.Module, prime Prime) (*Result, error) {
	res := &Result{}

	for _, blk := range arena.AllCombinational(root) {
		run, err := asRunnable(blk)
		if err != nil {
			return nil, err
		}

		cb := &BlockCallback{id: signal.NextCallbackID(), Block: blk, run: run}

		resolvedAny := false
		for _, path := range blk.Reads {
			nodes, err := ResolvePath(arena, root, path)
			if err != nil {
				slog.Warn("sensitivity: unresolved read, skipping",
					slog.String("block", blk.Name),
					slog.String("path", path),
					slog.Any("error", err))
				continue
			}
			for _, n := range nodes {
				if n.Signal == nil {
					slog.Warn("sensitivity: node has no bound signal yet, skipping",
						slog.String("block", blk.Name), slog.String("path", path))
					continue
				}
				n.Signal.RegisterCallback(cb)
				resolvedAny = true
			}
		}

		res.Combinational = append(res.Combinational, cb)
		if prime != nil {
			prime.EnqueueOne(cb)
		}
		_ = resolvedAny // a block with an entirely unresolved read-set still primes once; it simply never re-fires.
	}

	for _, blk := range arena.AllSequential(root) {
		run, err := asRunnable(blk)
		if err != nil {
			return nil, fmt.Errorf("sensitivity: sequential block: %w", err)
		}
		res.Sequential = append(res.Sequential, &SequentialBlock{Block: blk, Run: run})
	}

	return res, nil
}
