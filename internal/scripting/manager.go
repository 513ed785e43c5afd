package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Manager owns one sandboxed LState holding every loaded predicate script and
// exposes hook dispatch.
//
// Manager is safe for concurrent use; calls into the VM are serialized.
type Manager struct {
	mu        sync.Mutex
	state     *lua.LState
	instLimit int
	logger    *zap.Logger
}

// NewManager creates a Manager with an empty VM.
//
// Precondition: logger must be non-nil; instLimit >= 0 (0 = DefaultInstructionLimit).
// Postcondition: Returns a non-nil Manager.
func NewManager(logger *zap.Logger, instLimit int) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	m := &Manager{instLimit: instLimit, logger: logger}
	m.state = m.newState()
	return m
}

func (m *Manager) newState() *lua.LState {
	L := NewSandboxedState()
	m.RegisterModules(L)
	return L
}

// LoadDir replaces the VM with a fresh one that has executed every *.lua file
// in scriptDir in lexicographic order. On failure the previous VM is kept.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: returns error on read or Lua load failure.
func (m *Manager) LoadDir(scriptDir string) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := m.newState()
	for _, path := range luaFiles {
		if err := Limited(L, m.instLimit, func() error { return L.DoFile(path) }); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}
	m.swap(L)
	m.logger.Info("scripting: loaded scripts", zap.String("dir", scriptDir), zap.Int("files", len(luaFiles)))
	return nil
}

// LoadString executes src in the current VM under name, adding its globals.
func (m *Manager) LoadString(name, src string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return fmt.Errorf("scripting: loading %q: manager closed", name)
	}
	L := m.state
	if err := Limited(L, m.instLimit, func() error { return L.DoString(src) }); err != nil {
		return fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	return nil
}

func (m *Manager) swap(L *lua.LState) {
	m.mu.Lock()
	old := m.state
	m.state = L
	m.mu.Unlock()
	if old != nil {
		old.Close()
	}
}

// Defined reports whether hook is a global function in the VM.
func (m *Manager) Defined(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return false
	}
	return m.state.GetGlobal(hook).Type() == lua.LTFunction
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if the
// hook is not defined or the manager is closed. Lua runtime errors, including
// an exhausted instruction budget, are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callLocked(hook, args...), nil
}

// Predicate calls hook with a table built from fields and reports whether it
// returned a truthy value. Missing hooks and runtime errors evaluate to false.
func (m *Manager) Predicate(hook string, fields map[string]int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return false
	}
	tbl := m.state.NewTable()
	for k, v := range fields {
		tbl.RawSetString(k, lua.LNumber(v))
	}
	return lua.LVAsBool(m.callLocked(hook, tbl))
}

func (m *Manager) callLocked(hook string, args ...lua.LValue) lua.LValue {
	L := m.state
	if L == nil {
		m.logger.Info("scripting: manager closed", zap.String("hook", hook))
		return lua.LNil
	}

	fn := L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil
	}

	err := Limited(L, m.instLimit, func() error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...)
	})
	switch {
	case errors.Is(err, ErrBudgetExhausted):
		m.logger.Warn("scripting: hook exceeded instruction budget",
			zap.String("hook", hook),
			zap.Int("limit", m.instLimit),
		)
		return lua.LNil
	case err != nil:
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret
}

// Close releases the VM. Subsequent calls are no-ops.
func (m *Manager) Close() {
	m.swap(nil)
}
