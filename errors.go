package volt

import (
	"errors"

	"github.com/voltweb/volt/engine"
)

// Sentinel build-time errors TrieRouter.Add and TrieRouter.Mount return
// when they reject a registration; App's registration methods panic with
// them. spec §4.2's invariants are raised as these errors or
// fmt.Errorf-wrapped variants of them, matchable via errors.Is.
var (
	ErrEmptyRoute         = errors.New("volt: empty route")
	ErrConflictingHandler = errors.New("volt: conflicting handler for method and route")
	ErrConflictingParam   = errors.New("volt: conflicting param name at same position")
	ErrMountOverHandler   = errors.New("volt: cannot mount over a node that already has a handler")
)

// ErrorHandler lets an application override the core's default error
// 404 page (e.g. a JSON 404 instead of the plain-text default); App.dispatch
// calls it for 404 responses only. Returning
// nil means "use the Fang-chain-produced response unchanged".
type ErrorHandler func(status int, req *engine.Request) *engine.Response
