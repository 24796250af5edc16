// Package slicelower turns every bit-slice structural edge into a
// synthesized combinational closure, the third elaboration-to-simulation
// lowering stage (spec.md §4.D). It runs after package bind has
// installed signal.Values.
package slicelower

import (
	"fmt"

	"github.com/hwsim/rtlsim/model"
	"github.com/hwsim/rtlsim/netbuild"
	"github.com/hwsim/rtlsim/signal"
)

// Closure is the "tagged record { src, dst, src_range, dst_range }
// dispatched through a single run function" spec.md §9 recommends in
// place of a source-language closure capturing two signal handles.
type Closure struct {
	id CallbackIDHolder

	Src, Dst             *signal.Value
	SrcRange, DstRange   model.Range
}

// CallbackIDHolder defers ID allocation to construction time so every
// Closure gets a distinct, stable identity for event-queue deduplication.
type CallbackIDHolder struct {
	id signal.CallbackID
}

func (c *Closure) ID() signal.CallbackID { return c.id.id }

// Run copies Src.current[SrcRange] into Dst.current[DstRange]. Per
// spec.md 4.D, overlapping writes to disjoint sub-ranges of the same
// destination are fine (each Closure performs only its own
// range-bounded write); overlapping writes to overlapping sub-ranges are
// undefined and not diagnosed here.
func (c *Closure) Run() error {
	src := c.Src.Read().Slice(c.SrcRange.Start, c.SrcRange.End)
	dst := c.Dst.Read()
	dst.SetSlice(c.DstRange.Start, c.DstRange.End, src)
	return c.Dst.WriteComb(dst)
}

// Invoke satisfies signal.Callback.
func (c *Closure) Invoke() error { return c.Run() }

// Prime is implemented by whatever owns the event queue (package
// engine); slicelower hands back the closures it created that need
// priming rather than depending on engine directly, avoiding an import
// cycle (engine already depends on signal, and slicelower depends on
// model/netbuild/signal only).
type Prime interface {
	EnqueueOne(cb signal.Callback)
}

// Lower synthesizes one Closure per slice edge in res.SliceEdges and
// registers it as a callback on its source signal. A slice edge whose
// source is a structural constant performs its partial write once, here,
// at construction time, with no runtime callback — spec.md 4.D's
// constant-source case. Every non-constant closure is additionally
// primed into the event queue (via prime) so the first settle() phase
// makes every slice consistent before any behavioral block runs.
func Lower(arena *model.Arena, res *netbuild.Result, prime Prime) ([]*Closure, error) {
	var closures []*Closure

	for _, edgeID := range res.SliceEdges {
		edge := arena.Edge(edgeID)
		srcNode := arena.Node(edge.Src)
		dstNode := arena.Node(edge.Dst)

		srcRange := fullRange(srcNode)
		if edge.SrcRange != nil {
			srcRange = *edge.SrcRange
		}
		dstRange := fullRange(dstNode)
		if edge.DstRange != nil {
			dstRange = *edge.DstRange
		}

		if srcRange.Width() != dstRange.Width() {
			return nil, fmt.Errorf("slicelower: edge %s[%d:%d] -> %s[%d:%d]: width mismatch",
				srcNode.Name, srcRange.Start, srcRange.End,
				dstNode.Name, dstRange.Start, dstRange.End)
		}

		if srcNode.IsConstant {
			dst := dstNode.Signal.Read()
			srcVal := signal.FromUint64(srcNode.Width, srcNode.ConstValue).Slice(srcRange.Start, srcRange.End)
			dst.SetSlice(dstRange.Start, dstRange.End, srcVal)
			if err := dstNode.Signal.WriteComb(dst); err != nil {
				return nil, err
			}
			continue
		}

		c := &Closure{
			id:       CallbackIDHolder{id: signal.NextCallbackID()},
			Src:      srcNode.Signal,
			Dst:      dstNode.Signal,
			SrcRange: srcRange,
			DstRange: dstRange,
		}
		srcNode.Signal.RegisterCallback(c)
		closures = append(closures, c)
		if prime != nil {
			prime.EnqueueOne(c)
		}
	}

	return closures, nil
}

func fullRange(n *model.Node) model.Range {
	return model.Range{Start: 0, End: n.Width - 1}
}
