package signal

import (
	"fmt"

	"github.com/rs/xid"
)

// ErrConstantWrite is the error kind returned (wrapped) when something
// attempts to write a net marked read-only because it carries a
// structural constant.
type ErrConstantWrite struct {
	Signal *Value
}

func (e *ErrConstantWrite) Error() string {
	return fmt.Sprintf("signal: write to constant signal %s (width %d)", e.Signal.id, e.Signal.width)
}

// CallbackID identifies a registered callback for set-membership purposes.
// Two callbacks with the same ID are the same registration; re-registering
// is a no-op, matching the "idempotent set membership" requirement on
// register_callback.
type CallbackID uintptr

// Callback is a combinational block (or a synthesized slice closure)
// that can be scheduled for re-evaluation when a signal it reads changes.
type Callback interface {
	// ID uniquely identifies this callback for event-queue deduplication.
	ID() CallbackID
	// Invoke runs the callback's body. The CycleEngine calls this, never
	// the Value itself.
	Invoke() error
}

// Notifier is bound once by the CycleEngine at construction and is how a
// Value reaches into the engine's event queue without the engine handing
// out a concrete type (package signal never imports package engine).
type Notifier interface {
	// Enqueue schedules every callback registered on the firing signal,
	// excluding the one (if any) currently executing.
	Enqueue(callbacks []Callback)
	// RecordShadowWrite appends signal to the engine's flop list for this
	// cycle.
	RecordShadowWrite(v *Value)
}

// Value is the runtime cell shared by every node in one net (spec.md's
// SignalValue). Its identity is fixed for the life of the simulator;
// only its current/shadow contents and callback set mutate.
type Value struct {
	id xid.ID

	width    int
	current  Bits
	shadow   Bits
	readOnly bool

	callbackOrder []CallbackID
	callbacks     map[CallbackID]Callback

	notifier Notifier
}

// New creates a Value of the given width with a zeroed current and shadow.
// The notifier is bound once, by the CycleEngine, during construction —
// never swapped afterward (this resolves spec.md §9's notifier-field
// ambiguity by never exposing the field for mutation).
func New(width int, notifier Notifier) *Value {
	return &Value{
		id:        xid.New(),
		width:     width,
		current:   NewBits(width),
		shadow:    NewBits(width),
		callbacks: make(map[CallbackID]Callback),
		notifier:  notifier,
	}
}

// ID returns a stable debug identifier for trace/log output.
func (v *Value) ID() xid.ID { return v.id }

// Width returns the fixed bit width of this signal.
func (v *Value) Width() int { return v.width }

// Read returns the current value.
func (v *Value) Read() Bits { return v.current }

// ReadShadow returns the pending (not-yet-flopped) shadow value.
func (v *Value) ReadShadow() Bits { return v.shadow }

// IsReadOnly reports whether this signal carries a structural constant.
func (v *Value) IsReadOnly() bool { return v.readOnly }

// MarkConstant freezes the signal's current value as read-only, per
// NetBuilder/SignalBinder handling of a net containing a constant node.
// Any subsequent WriteComb/WriteShadow/Flop is a fatal ErrConstantWrite.
func (v *Value) MarkConstant(value Bits) {
	v.current = value
	v.shadow = value.Clone()
	v.readOnly = true
}

// WriteComb sets the current value and fires the combinational notifier,
// which enqueues every registered callback except the one presently
// executing. This is the combinational write entry point; sequential
// blocks must use WriteShadow instead — the two are always distinct
// methods, never a single mutable notifier field.
func (v *Value) WriteComb(val Bits) error {
	if v.readOnly {
		return &ErrConstantWrite{Signal: v}
	}
	v.current = val
	v.fireComb()
	return nil
}

// WriteShadow sets the pending shadow value and fires the sequential
// notifier, recording this signal in the engine's register-to-flop list
// for the current cycle. Visible as .current only after Flop().
func (v *Value) WriteShadow(val Bits) error {
	if v.readOnly {
		return &ErrConstantWrite{Signal: v}
	}
	v.shadow = val
	if v.notifier != nil {
		v.notifier.RecordShadowWrite(v)
	}
	return nil
}

// Flop promotes the shadow value to current and fires the combinational
// notifier exactly as WriteComb would, per spec.md 4.A.
func (v *Value) Flop() error {
	if v.readOnly {
		return &ErrConstantWrite{Signal: v}
	}
	v.current = v.shadow
	v.fireComb()
	return nil
}

func (v *Value) fireComb() {
	if v.notifier == nil || len(v.callbackOrder) == 0 {
		return
	}
	cbs := make([]Callback, len(v.callbackOrder))
	for i, id := range v.callbackOrder {
		cbs[i] = v.callbacks[id]
	}
	v.notifier.Enqueue(cbs)
}

// RegisterCallback appends cb to this signal's callback set. Membership
// is by Callback.ID(); re-registering the same ID is a no-op, giving the
// insertion-ordered-set semantics spec.md §9 calls for.
func (v *Value) RegisterCallback(cb Callback) {
	if _, ok := v.callbacks[cb.ID()]; ok {
		return
	}
	v.callbacks[cb.ID()] = cb
	v.callbackOrder = append(v.callbackOrder, cb.ID())
}

// Callbacks returns the registered callbacks in insertion order, for
// diagnostics and tests.
func (v *Value) Callbacks() []Callback {
	out := make([]Callback, len(v.callbackOrder))
	for i, id := range v.callbackOrder {
		out[i] = v.callbacks[id]
	}
	return out
}
