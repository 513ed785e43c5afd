// Package scripting provides a sandboxed GopherLua execution environment for
// catalog-defined achievement predicates. It has no dependency on game domain
// packages; predicates receive a plain table of integer statistics.
package scripting

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget of one predicate run when no
// override is configured.
const DefaultInstructionLimit = 100_000

// ErrBudgetExhausted is returned by Limited when the script ran out of opcodes.
var ErrBudgetExhausted = errors.New("scripting: instruction budget exhausted")

// strippedGlobals are removed from every predicate state. print would write to
// the server's stdout.
var strippedGlobals = []string{"dofile", "loadfile", "load", "collectgarbage", "require", "print"}

// opBudget is a context whose Done is polled by the VM once per opcode.
// It cancels itself when the budget reaches zero.
type opBudget struct {
	context.Context
	cancel    context.CancelFunc
	left      atomic.Int64
	exhausted atomic.Bool
}

func newOpBudget(ops int) *opBudget {
	ctx, cancel := context.WithCancel(context.Background())
	b := &opBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(ops))
	return b
}

func (b *opBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 && !b.exhausted.Swap(true) {
		b.cancel()
	}
	return b.Context.Done()
}

// NewSandboxedState returns an LState with only the base, table, string and
// math libraries, minus the loaders and print.
//
// Postcondition: Returns a non-nil LState with no budget installed; wrap
// executions in Limited. The caller must call L.Close() when done.
func NewSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range strippedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// Limited runs fn with a fresh budget of ops opcodes installed on L and
// removes it again before returning, so one LState serves any number of runs.
//
// Precondition: ops >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: A run cut short by the budget returns an error wrapping
// ErrBudgetExhausted; otherwise fn's error is returned unchanged.
func Limited(L *lua.LState, ops int, fn func() error) error {
	if ops <= 0 {
		ops = DefaultInstructionLimit
	}
	b := newOpBudget(ops)
	defer b.cancel()
	L.SetContext(b)
	defer L.RemoveContext()

	err := fn()
	if err != nil && b.exhausted.Load() {
		return fmt.Errorf("%w after %d opcodes: %v", ErrBudgetExhausted, ops, err)
	}
	return err
}
