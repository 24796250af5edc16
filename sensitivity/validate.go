package sensitivity

import (
	"fmt"
	"reflect"

	"github.com/hwsim/rtlsim/model"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// asRunnable validates that b.Fn has the shape func() error spec.md §5
// requires of every behavioral block (no parameters; blocks read/write
// their captured nodes directly, never through arguments). A block
// declared with parameters is rejected as BlockSignature, carrying the
// block's file/line the way the dynamically-typed source model's
// equivalent check does.
func asRunnable(b *model.Block) (func() error, error) {
	if fn, ok := b.Fn.(func() error); ok {
		return fn, nil
	}

	v := reflect.ValueOf(b.Fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: block %s (%s:%d): not a function", model.ErrBlockSignature, b.Name, b.File, b.Line)
	}
	if t.NumIn() != 0 {
		return nil, fmt.Errorf("%w: block %s (%s:%d): takes %d arguments, want 0", model.ErrBlockSignature, b.Name, b.File, b.Line, t.NumIn())
	}
	if t.NumOut() != 1 || !t.Out(0).Implements(errorType) {
		return nil, fmt.Errorf("%w: block %s (%s:%d): must return exactly one error", model.ErrBlockSignature, b.Name, b.File, b.Line)
	}

	return func() error {
		out := v.Call(nil)
		if out[0].IsNil() {
			return nil
		}
		return out[0].Interface().(error)
	}, nil
}
