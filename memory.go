package volt

import "github.com/voltweb/volt/engine"

// memoryKey is an unexported, per-T type used as a map key so distinct
// Memory[T] instantiations never collide in the per-request store (spec
// §4: "a type-indexed heterogeneous map").
type memoryKey[T any] struct{}

// SetMemory stores value in req's per-request store, addressable
// downstream by a Memory[T] extractor of the same T. Supplements spec
// §4.4's Memory<T> with the missing upstream-write half: the spec
// describes reading a memoized value but not how a fang puts one there
// in the first place.
func SetMemory[T any](req *engine.Request, value T) {
	Memorize(req, memoryKey[T]{}, value)
}

// Memory is the FromRequest spec §4.4 names: "a reference to a
// previously stored value of type T in the request's store, failing
// when absent."
type Memory[T any] struct {
	Value T
}

// FromRequest implements the FromRequest contract for Memory[T].
func (m *Memory[T]) FromRequest(req *engine.Request) (bool, *engine.Response) {
	v, ok := Recall(req, memoryKey[T]{})
	if !ok {
		return false, nil
	}
	val, ok := v.(T)
	if !ok {
		return false, nil
	}
	m.Value = val
	return true, nil
}
