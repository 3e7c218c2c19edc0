package middleware

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"

	"github.com/voltweb/volt"
	"github.com/voltweb/volt/engine"
)

// RecoveryConfig configures panic recovery. Grounded on
// bolt/middleware/recovery.go's RecoveryConfig, trimmed of StackSize
// (engine.Session already recovers at the session level per request;
// this Fang exists for apps that want the panic annotated in the
// response body before Session's outer recover ever has to fire).
type RecoveryConfig struct {
	PrintStack bool
	LogOutput  io.Writer
	Handler    func(req *engine.Request, recovered any) *engine.Response
}

// DefaultRecoveryConfig prints the stack to stderr and answers 500.
func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{PrintStack: true}
}

// Recovery returns a Fang with DefaultRecoveryConfig.
func Recovery() volt.Fang { return RecoveryWithConfig(DefaultRecoveryConfig()) }

// RecoveryWithConfig returns a Fang that recovers a panicking inner chain
// and turns it into a 500 response instead of letting it propagate to
// engine.Session's own last-resort recover (session.go's invoke), so a
// handler's panic is still answered by this app's error-handling
// conventions rather than the bare engine default.
func RecoveryWithConfig(config RecoveryConfig) volt.Fang {
	return func(inner volt.FangProc) volt.FangProc {
		return func(ctx *volt.Context, req *engine.Request) (resp *engine.Response) {
			defer func() {
				if r := recover(); r != nil {
					if config.PrintStack {
						stack := debug.Stack()
						if config.LogOutput != nil {
							fmt.Fprintf(config.LogOutput, "PANIC: %v\n%s\n", r, stack)
						} else {
							log.New(os.Stderr, "", log.LstdFlags).Printf("PANIC: %v\n%s", r, stack)
						}
					}
					if config.Handler != nil {
						resp = config.Handler(req, r)
					} else {
						resp = engine.NewTextResponse(500, "internal server error")
					}
				}
			}()
			return inner(ctx, req)
		}
	}
}
