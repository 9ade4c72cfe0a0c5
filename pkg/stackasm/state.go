// This file is part of stack-assembly - https://github.com/hannobraun/stack-assembly
//
// Copyright 2026 Hanno Braun
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stackasm

import (
	"github.com/pkg/errors"

	"github.com/hannobraun/stack-assembly/pkg/program"
	"github.com/hannobraun/stack-assembly/pkg/word"
)

// DefaultMemorySize is the memory capacity a State gets when MemorySize is
// not passed to NewState.
const DefaultMemorySize = 65536

// DefaultStackCap is the operand stack depth cap a State gets when StackCap
// is not passed to NewState. A cap of 0 means unbounded.
const DefaultStackCap = 32768

// Option configures a State at construction time. Modeled on the teacher's
// vm.Option (vm/vm.go): a small functional-option type applied in order.
// NewState sets the default stack cap before applying options and allocates
// default memory afterwards, only if no MemorySize option was given.
type Option func(*State)

// MemorySize sets the number of addressable words.
func MemorySize(n int) Option {
	return func(s *State) { s.mem = make([]word.Word, n) }
}

// StackCap sets the maximum operand stack depth. 0 means unbounded.
func StackCap(n int) Option {
	return func(s *State) { s.stackCap = n }
}

// State is the runtime state of one program execution: program counter,
// operand stack, memory, and halt/pause state. It is created from a
// *program.Program and mutated only by Step/Run/Resume and, while paused on
// a Yield, by the host through the accessors below.
//
// A State is not safe for concurrent use -- exactly like the teacher's
// vm.Instance, it is single-owner for the duration of a step. Distinct
// States (even sharing the same *program.Program) may be driven
// concurrently from separate goroutines.
type State struct {
	prog *program.Program

	pc    int
	stack []word.Word
	mem   []word.Word

	stackCap int

	halted     bool
	paused     bool
	lastEffect Effect
}

// NewState creates a fresh execution state for prog.
func NewState(prog *program.Program, opts ...Option) *State {
	s := &State{prog: prog, stackCap: DefaultStackCap}
	for _, opt := range opts {
		opt(s)
	}
	if s.mem == nil {
		s.mem = make([]word.Word, DefaultMemorySize)
	}
	return s
}

// ErrNotPaused is returned by Resume when the last effect observed was not
// Yield. It is a library-misuse error (spec §7), never script-driven.
var ErrNotPaused = errors.New("stackasm: Resume called but state is not paused on Yield")

// ProgramCounter returns the current operator index.
func (s *State) ProgramCounter() int { return s.pc }

// StackDepth returns the number of words on the operand stack.
func (s *State) StackDepth() int { return len(s.stack) }

// StackView returns a copy of the operand stack with index 0 at the top.
// Changing the returned slice does not affect the State; the host uses
// StackPush/StackPop to mutate the stack.
func (s *State) StackView() []word.Word {
	n := len(s.stack)
	view := make([]word.Word, n)
	for i := 0; i < n; i++ {
		view[i] = s.stack[n-1-i]
	}
	return view
}

// StackPush pushes v on top of the operand stack, honoring the configured
// stack cap. It is meant to be called by the host while paused on Yield; the
// evaluator itself never calls it directly (see push in eval.go).
func (s *State) StackPush(v word.Word) Effect {
	return s.push(v)
}

// StackPop pops and returns the top of the operand stack.
func (s *State) StackPop() (word.Word, Effect) {
	vals, ok := s.popN(1)
	if !ok {
		return 0, StackUnderflow{Needed: 1, Had: len(s.stack)}
	}
	return vals[0], Continue{}
}

// MemorySize returns the number of addressable words.
func (s *State) MemorySize() int { return len(s.mem) }

// MemoryRead reads the word at addr.
func (s *State) MemoryRead(addr word.Word) (word.Word, Effect) {
	if int(addr) >= len(s.mem) {
		return 0, MemoryOutOfBounds{Addr: addr, Size: len(s.mem)}
	}
	return s.mem[addr], Continue{}
}

// MemoryWrite stores v at addr.
func (s *State) MemoryWrite(addr, v word.Word) Effect {
	if int(addr) >= len(s.mem) {
		return MemoryOutOfBounds{Addr: addr, Size: len(s.mem)}
	}
	s.mem[addr] = v
	return Continue{}
}

// Halted reports whether the state has reached a terminal effect (Finished
// or any error effect).
func (s *State) Halted() bool { return s.halted }

// Paused reports whether the state is suspended on a Yield, awaiting Resume.
func (s *State) Paused() bool { return s.paused }
