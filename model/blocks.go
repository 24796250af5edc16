package model

import (
	"fmt"

	"github.com/hwsim/rtlsim/signal"
)

// BlockFactory builds a Block given its YAML-declared name and params,
// resolving node-name parameters through resolve. Factories close over
// *Node pointers (never *signal.Value directly) so their behavior tracks
// whatever net the SignalBinder later assigns those nodes to.
type BlockFactory func(name string, params map[string]string, resolve func(string) (*Node, error)) (*Block, error)

var blockKinds = map[string]BlockFactory{}

// RegisterBlockKind makes kind available to fixture YAML. Re-registering
// an existing kind overwrites it; this repository registers its built-in
// kinds (reg_next, full_adder, gcd_step) in init().
func RegisterBlockKind(kind string, f BlockFactory) {
	blockKinds[kind] = f
}

func buildBlock(kind, name string, params map[string]string, resolve func(string) (*Node, error)) (*Block, error) {
	f, ok := blockKinds[kind]
	if !ok {
		return nil, fmt.Errorf("model: unknown block kind %q", kind)
	}
	return f(name, params, resolve)
}

func init() {
	RegisterBlockKind("reg_next", newRegNext)
	RegisterBlockKind("full_adder", newFullAdder)
	RegisterBlockKind("gcd_step", newGCDStep)
}

// newRegNext builds a tick block implementing `out.next = in`, the
// canonical Register(n) pattern from spec.md scenario S2/S3: it copies
// in's current value into out's shadow every cycle, unconditionally.
func newRegNext(name string, params map[string]string, resolve func(string) (*Node, error)) (*Block, error) {
	in, err := resolve(params["in"])
	if err != nil {
		return nil, err
	}
	out, err := resolve(params["out"])
	if err != nil {
		return nil, err
	}
	fn := func() error {
		return out.Signal.WriteShadow(in.Signal.Read())
	}
	return &Block{Name: name, Reads: nil, Fn: fn}, nil
}

// newFullAdder builds a combinational one-bit full adder: sum = a^b^cin,
// cout = majority(a,b,cin). Used to compose RippleCarryAdder(n) out of n
// one-bit slices (spec.md scenario S5).
func newFullAdder(name string, params map[string]string, resolve func(string) (*Node, error)) (*Block, error) {
	a, err := resolve(params["a"])
	if err != nil {
		return nil, err
	}
	b, err := resolve(params["b"])
	if err != nil {
		return nil, err
	}
	cin, err := resolve(params["cin"])
	if err != nil {
		return nil, err
	}
	sum, err := resolve(params["sum"])
	if err != nil {
		return nil, err
	}
	cout, err := resolve(params["cout"])
	if err != nil {
		return nil, err
	}

	fn := func() error {
		av := a.Signal.Read().Uint64() & 1
		bv := b.Signal.Read().Uint64() & 1
		cv := cin.Signal.Read().Uint64() & 1
		s := av ^ bv ^ cv
		c := (av & bv) | (bv & cv) | (av & cv)
		if err := sum.Signal.WriteComb(signal.FromUint64(1, s)); err != nil {
			return err
		}
		return cout.Signal.WriteComb(signal.FromUint64(1, c))
	}

	return &Block{
		Name:   name,
		Reads:  []string{params["a"], params["b"], params["cin"]},
		Writes: []string{params["sum"], params["cout"]},
		Fn:     fn,
	}, nil
}

// newGCDStep builds the tick block driving spec.md scenario S6: a
// subtractive-Euclid GCD unit. On in_val, it latches in_A/in_B into
// internal registers and raises busy; while busy it subtracts the
// smaller internal register from the larger each cycle until they are
// equal, at which point it publishes the result and raises valid.
func newGCDStep(name string, params map[string]string, resolve func(string) (*Node, error)) (*Block, error) {
	nodes := make(map[string]*Node, len(params))
	for key, nodeName := range params {
		n, err := resolve(nodeName)
		if err != nil {
			return nil, err
		}
		nodes[key] = n
	}
	required := []string{"in_a", "in_b", "in_val", "a_reg", "b_reg", "busy_reg", "out_reg", "valid_reg"}
	for _, k := range required {
		if _, ok := nodes[k]; !ok {
			return nil, fmt.Errorf("model: gcd_step block %q missing param %q", name, k)
		}
	}

	fn := func() error {
		width := nodes["a_reg"].Signal.Width()
		a := nodes["a_reg"].Signal.Read().Uint64()
		b := nodes["b_reg"].Signal.Read().Uint64()
		busy := nodes["busy_reg"].Signal.Read().Uint64()
		inVal := nodes["in_val"].Signal.Read().Uint64()

		switch {
		case inVal != 0:
			if err := nodes["a_reg"].Signal.WriteShadow(nodes["in_a"].Signal.Read()); err != nil {
				return err
			}
			if err := nodes["b_reg"].Signal.WriteShadow(nodes["in_b"].Signal.Read()); err != nil {
				return err
			}
			if err := nodes["busy_reg"].Signal.WriteShadow(signal.FromUint64(1, 1)); err != nil {
				return err
			}
			return nodes["valid_reg"].Signal.WriteShadow(signal.FromUint64(1, 0))
		case busy != 0:
			switch {
			case a > b:
				return nodes["a_reg"].Signal.WriteShadow(signal.FromUint64(width, a-b))
			case b > a:
				return nodes["b_reg"].Signal.WriteShadow(signal.FromUint64(width, b-a))
			default:
				if err := nodes["busy_reg"].Signal.WriteShadow(signal.FromUint64(1, 0)); err != nil {
					return err
				}
				if err := nodes["out_reg"].Signal.WriteShadow(signal.FromUint64(width, a)); err != nil {
					return err
				}
				return nodes["valid_reg"].Signal.WriteShadow(signal.FromUint64(1, 1))
			}
		default:
			return nil
		}
	}

	return &Block{Name: name, Reads: nil, Fn: fn}, nil
}
