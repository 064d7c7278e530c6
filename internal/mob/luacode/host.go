// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

// Package luacode runs host-injected custom code written in Lua. Each chunk
// is compiled once at load time and wrapped as a custom-code call that can
// sit in a program next to parsed statements.
package luacode

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
	"github.com/Espyo/Pikifen-sub018/pkg/errutil"
)

// Error codes.
const (
	CodeSyntaxError  = "LUA_SYNTAX_ERROR"
	CodeUnknownChunk = "UNKNOWN_CHUNK"
)

// DefaultTimeout bounds one run of a chunk.
const DefaultTimeout = 100 * time.Millisecond

// Host holds compiled chunks by name.
type Host struct {
	sandbox *sandbox
	logger  *slog.Logger

	mu     sync.RWMutex
	chunks map[string]*lua.FunctionProto
}

// Option configures a Host.
type Option func(*Host)

// WithTimeout bounds each chunk run. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.sandbox.timeout = d
		}
	}
}

// WithLogger sets the logger for chunk failures.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHost creates an empty host.
func NewHost(opts ...Option) *Host {
	h := &Host{
		sandbox: newSandbox(DefaultTimeout),
		logger:  slog.Default(),
		chunks:  make(map[string]*lua.FunctionProto),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Load compiles code and stores it under name, replacing any chunk with
// the same name.
func (h *Host) Load(name, code string) error {
	chunk, err := parse.Parse(strings.NewReader(code), name)
	if err != nil {
		return oops.In("luacode").Code(CodeSyntaxError).With("chunk", name).Hint("syntax error").Wrap(err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return oops.In("luacode").Code(CodeSyntaxError).With("chunk", name).Hint("compile error").Wrap(err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.chunks[name] = proto
	return nil
}

// Unload removes a chunk. Calls built from it keep their compiled code.
func (h *Host) Unload(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.chunks[name]; !ok {
		return oops.In("luacode").Code(CodeUnknownChunk).With("chunk", name).New("chunk not loaded")
	}
	delete(h.chunks, name)
	return nil
}

// Chunks returns the loaded chunk names, sorted.
func (h *Host) Chunks() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.chunks))
	for name := range h.chunks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call wraps the named chunk as a custom-code call for event. A chunk that
// returns false, or that requests a state change, halts the program.
func (h *Host) Call(name string, event mobscript.EventID) (*mobscript.ActionCall, error) {
	h.mu.RLock()
	proto, ok := h.chunks[name]
	h.mu.RUnlock()
	if !ok {
		return nil, oops.In("luacode").Code(CodeUnknownChunk).
			With("chunk", name).
			With("event", string(event)).
			Errorf("custom code %q is not loaded", name)
	}

	return mobscript.NewCustomCall("lua:"+name, event, func(rc *mobscript.RunContext) mobscript.Signal {
		return h.run(rc, name, proto)
	}), nil
}

func (h *Host) run(rc *mobscript.RunContext, name string, proto *lua.FunctionProto) mobscript.Signal {
	L, done, err := h.sandbox.open()
	if err != nil {
		errutil.LogError(h.logger, "custom code state failed", oops.In("luacode").With("chunk", name).Wrap(err))
		return mobscript.Continue
	}
	defer done()
	defer L.Close()

	b := &binding{rc: rc}
	L.SetGlobal("mob", b.table(L))

	err = L.CallByParam(lua.P{
		Fn:      L.NewFunctionFromProto(proto),
		NRet:    1,
		Protect: true,
	})
	if err != nil {
		errutil.LogError(h.logger, "custom code failed", oops.In("luacode").
			With("chunk", name).
			With("event", string(eventOf(rc))).
			Wrap(err))
		if b.stateRequested {
			return mobscript.Halt
		}
		return mobscript.Continue
	}

	ret := L.Get(-1)
	L.Pop(1)
	if b.stateRequested || ret == lua.LFalse {
		return mobscript.Halt
	}
	return mobscript.Continue
}

func eventOf(rc *mobscript.RunContext) mobscript.EventID {
	if rc.Call == nil {
		return ""
	}
	return rc.Call.Event
}
