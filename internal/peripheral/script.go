package peripheral

import (
	lua "github.com/yuin/gopher-lua"
)

// Script is a peripheral whose behavior is defined by a Lua program,
// repointing the teacher's gopher-lua dependency (originally used for
// GUI-adjacent scripting) onto a pure I/O-bus peripheral
// (SPEC_FULL.md §11). The script defines two globals:
//
//	function read(port) -> integer
//	function write(port, value)
//
// The claimed ports are the static range given to NewScript; the script
// is not consulted for port claims.
type Script struct {
	L    *lua.LState
	low  uint16
	high uint16
}

// NewScript loads src as a Lua chunk, claiming the static port range
// [low, high] (port-claim sets are static after registration,
// SPEC_FULL.md §9).
func NewScript(src string, low, high uint16) (*Script, error) {
	L := lua.NewState()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, err
	}
	return &Script{L: L, low: low, high: high}, nil
}

// Close releases the Lua interpreter. Implements machine.Shutdowner.
func (s *Script) Close() error {
	s.L.Close()
	return nil
}

func (s *Script) HandlesPort(port uint16) bool {
	return port >= s.low && port <= s.high
}

func (s *Script) call(name string, args ...lua.LValue) lua.LValue {
	fn := s.L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return lua.LNil
	}
	s.L.Push(fn)
	for _, a := range args {
		s.L.Push(a)
	}
	if err := s.L.PCall(len(args), 1, nil); err != nil {
		return lua.LNil
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)
	return ret
}

func (s *Script) Read(port uint16) uint32 {
	ret := s.call("read", lua.LNumber(port))
	if n, ok := ret.(lua.LNumber); ok {
		return uint32(int64(n))
	}
	return 0
}

func (s *Script) Write(port uint16, value uint32) {
	s.call("write", lua.LNumber(port), lua.LNumber(value))
}
