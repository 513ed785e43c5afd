package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the valou.* helper table into L.
//
//	valou.log(msg)           logs msg at Info with the script logger
//	valou.floor_div(a, b)    integer division, 0 when b is 0
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: valou global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	valou := L.NewTable()
	L.SetFuncs(valou, map[string]lua.LGFunction{
		"log": func(L *lua.LState) int {
			m.logger.Info("lua", zap.String("msg", L.CheckString(1)))
			return 0
		},
		"floor_div": func(L *lua.LState) int {
			a := L.CheckInt(1)
			b := L.CheckInt(2)
			if b == 0 {
				L.Push(lua.LNumber(0))
				return 1
			}
			L.Push(lua.LNumber(a / b))
			return 1
		},
	})
	L.SetGlobal("valou", valou)
}
