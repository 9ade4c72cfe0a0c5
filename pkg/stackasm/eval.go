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

// Package stackasm is the step-driven evaluator: it owns a State (program
// counter, operand stack, memory, halt/pause flags) and exposes Step/Run/
// Resume plus host accessors, communicating with the host exclusively
// through the Effect values in effect.go.
//
// The dispatch loop is a single flat switch over the operator's identifier,
// the same shape as the teacher's vm/core.go Run method: each case pops its
// inputs with a small helper, validates them, and only then mutates state
// and pushes outputs -- which is what keeps "no partial mutation on
// underflow, atomic per operator" (spec §4.3, §7) straightforward to
// maintain. Unlike the teacher, this evaluator never panics on a
// script-driven condition (out-of-range index, division by zero, ...); each
// such condition is checked explicitly and turned into an Effect. A
// recover() remains at the top of Step purely as a defensive net against a
// bug in this package itself, mirroring the teacher's recover+errors.Wrapf
// pattern in vm/core.go and vm/run.go, but it should never fire in normal
// operation.
package stackasm

import (
	"github.com/pkg/errors"

	"github.com/hannobraun/stack-assembly/pkg/program"
	"github.com/hannobraun/stack-assembly/pkg/word"
)

// InternalError wraps an unexpected panic recovered from the dispatch loop.
// It indicates a bug in this package, never a condition the script could
// trigger.
type InternalError struct {
	cause error
}

func (e *InternalError) Error() string { return e.cause.Error() }
func (e *InternalError) Unwrap() error { return e.cause }

func (InternalError) isEffect() {}

// Step advances execution by exactly one operator (labels are already
// elided at parse time) and returns the resulting Effect. It never blocks.
func (s *State) Step() (eff Effect) {
	if s.halted {
		return s.lastEffect
	}
	if s.paused {
		// Stepping is not legal again until the host calls Resume; until
		// then Step keeps returning the same Yield, mirroring Finished's
		// idempotency.
		return s.lastEffect
	}

	defer func() {
		if r := recover(); r != nil {
			var err error
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = errors.Errorf("%v", r)
			}
			ie := &InternalError{cause: errors.Wrap(err, "internal evaluator error")}
			s.halted = true
			s.lastEffect = ie
			eff = ie
		}
	}()

	if s.pc >= s.prog.Len() {
		s.halted = true
		s.lastEffect = Finished{}
		return s.lastEffect
	}

	op := s.prog.Operators[s.pc]
	s.pc++

	switch op.Kind {
	case program.OpInteger, program.OpReference:
		return s.finish(s.push(op.Value))
	case program.OpIdentifier:
		return s.finish(s.evalIdentifier(op.Identifier))
	default:
		return s.finish(s.push(0))
	}
}

// finish records terminal effects (and Yield's pause) on State before
// returning them to the caller; Continue passes through unchanged.
func (s *State) finish(eff Effect) Effect {
	switch eff.(type) {
	case Continue:
		return eff
	case Yield:
		s.paused = true
		s.lastEffect = eff
		return eff
	default:
		s.halted = true
		s.lastEffect = eff
		return eff
	}
}

// Run repeats Step until an effect other than Continue occurs, and returns
// that effect. This is a convenience equivalent to looping Step from the
// host side.
func (s *State) Run() Effect {
	for {
		eff := s.Step()
		if _, ok := eff.(Continue); ok {
			continue
		}
		return eff
	}
}

// Resume re-enables stepping after a Yield. It is only legal to call this
// after the last effect observed was Yield; otherwise it returns
// ErrNotPaused and leaves the state untouched.
func (s *State) Resume() error {
	if !s.paused {
		return ErrNotPaused
	}
	s.paused = false
	return nil
}

func (s *State) push(v word.Word) Effect {
	if s.stackCap > 0 && len(s.stack) >= s.stackCap {
		return StackOverflow{}
	}
	s.stack = append(s.stack, v)
	return Continue{}
}

// popN pops n words off the top of the stack and returns them with index 0
// being the first one popped (the previous top), or reports underflow
// without mutating the stack.
func (s *State) popN(n int) ([]word.Word, bool) {
	if len(s.stack) < n {
		return nil, false
	}
	vals := make([]word.Word, n)
	top := len(s.stack)
	for i := 0; i < n; i++ {
		vals[i] = s.stack[top-1-i]
	}
	s.stack = s.stack[:top-n]
	return vals, true
}

func (s *State) evalIdentifier(name string) Effect {
	switch name {
	case "+":
		return s.binary(name, func(a, b word.Word) word.Word { return word.Add(a, b) })
	case "-":
		return s.binary(name, func(a, b word.Word) word.Word { return word.Sub(a, b) })
	case "*":
		return s.binary(name, func(a, b word.Word) word.Word { return word.Mul(a, b) })
	case "/":
		return s.divide()
	case "and":
		return s.binary(name, word.And)
	case "or":
		return s.binary(name, word.Or)
	case "xor":
		return s.binary(name, word.Xor)
	case "count_ones":
		return s.unary(name, word.CountOnes)
	case "leading_zeros":
		return s.unary(name, word.LeadingZeros)
	case "trailing_zeros":
		return s.unary(name, word.TrailingZeros)
	case "rotate_left":
		return s.binaryNA(name, word.RotateLeft)
	case "rotate_right":
		return s.binaryNA(name, word.RotateRight)
	case "shift_left":
		return s.binaryNA(name, word.ShiftLeft)
	case "shift_right":
		return s.binaryNA(name, word.ShiftRight)
	case "=":
		return s.compare(name, word.Eq)
	case ">":
		return s.compare(name, word.Gt)
	case ">=":
		return s.compare(name, word.Ge)
	case "<":
		return s.compare(name, word.Lt)
	case "<=":
		return s.compare(name, word.Le)
	case "jump":
		return s.jump()
	case "jump_if":
		return s.jumpIf()
	case "read":
		return s.read()
	case "write":
		return s.write()
	case "copy":
		return s.copyAt()
	case "drop":
		return s.dropAt()
	case "yield":
		return Yield{}
	default:
		return UnknownIdentifier{Name: name}
	}
}

// binary handles the "b a -> a OP b" shape shared by +, -, *, and, or, xor.
func (s *State) binary(_ string, op func(a, b word.Word) word.Word) Effect {
	vals, ok := s.popN(2)
	if !ok {
		return StackUnderflow{Needed: 2, Had: len(s.stack)}
	}
	b, a := vals[0], vals[1]
	return s.push(op(a, b))
}

// binaryNA handles the "n a -> op(a, n)" shape shared by the shift/rotate
// operators, where n (the shift/rotate amount) is on top.
func (s *State) binaryNA(_ string, op func(a, n word.Word) word.Word) Effect {
	vals, ok := s.popN(2)
	if !ok {
		return StackUnderflow{Needed: 2, Had: len(s.stack)}
	}
	n, a := vals[0], vals[1]
	return s.push(op(a, n))
}

func (s *State) unary(_ string, op func(a word.Word) word.Word) Effect {
	vals, ok := s.popN(1)
	if !ok {
		return StackUnderflow{Needed: 1, Had: len(s.stack)}
	}
	return s.push(op(vals[0]))
}

func (s *State) compare(_ string, op func(a, b word.Word) bool) Effect {
	vals, ok := s.popN(2)
	if !ok {
		return StackUnderflow{Needed: 2, Had: len(s.stack)}
	}
	b, a := vals[0], vals[1]
	return s.push(word.Bool(op(a, b)))
}

func (s *State) divide() Effect {
	vals, ok := s.popN(2)
	if !ok {
		return StackUnderflow{Needed: 2, Had: len(s.stack)}
	}
	b, a := vals[0], vals[1]
	if word.IsDivideByZero(b) {
		return DivideByZero{}
	}
	if word.IsDivideOverflow(a, b) {
		return DivideOverflow{}
	}
	quot, rem := word.DivRem(a, b)
	if eff := s.push(quot); !isContinue(eff) {
		return eff
	}
	return s.push(rem)
}

func (s *State) jump() Effect {
	vals, ok := s.popN(1)
	if !ok {
		return StackUnderflow{Needed: 1, Had: len(s.stack)}
	}
	t := vals[0]
	if int(t) >= s.prog.Len() {
		return BadJumpTarget{Target: t, ProgramSize: s.prog.Len()}
	}
	s.pc = int(t)
	return Continue{}
}

func (s *State) jumpIf() Effect {
	vals, ok := s.popN(2)
	if !ok {
		return StackUnderflow{Needed: 2, Had: len(s.stack)}
	}
	t, c := vals[0], vals[1]
	if c == 0 {
		return Continue{}
	}
	if int(t) >= s.prog.Len() {
		return BadJumpTarget{Target: t, ProgramSize: s.prog.Len()}
	}
	s.pc = int(t)
	return Continue{}
}

func (s *State) read() Effect {
	vals, ok := s.popN(1)
	if !ok {
		return StackUnderflow{Needed: 1, Had: len(s.stack)}
	}
	addr := vals[0]
	if int(addr) >= len(s.mem) {
		return MemoryOutOfBounds{Addr: addr, Size: len(s.mem)}
	}
	return s.push(s.mem[addr])
}

func (s *State) write() Effect {
	vals, ok := s.popN(2)
	if !ok {
		return StackUnderflow{Needed: 2, Had: len(s.stack)}
	}
	addr, v := vals[0], vals[1]
	if int(addr) >= len(s.mem) {
		return MemoryOutOfBounds{Addr: addr, Size: len(s.mem)}
	}
	s.mem[addr] = v
	return Continue{}
}

func (s *State) copyAt() Effect {
	if len(s.stack) < 1 {
		return StackUnderflow{Needed: 1, Had: len(s.stack)}
	}
	i := s.stack[len(s.stack)-1]
	remaining := len(s.stack) - 1
	if int(i) >= remaining {
		return StackUnderflow{Needed: int(i) + 1, Had: remaining}
	}
	s.stack = s.stack[:remaining]
	idx := remaining - 1 - int(i)
	return s.push(s.stack[idx])
}

func (s *State) dropAt() Effect {
	if len(s.stack) < 1 {
		return StackUnderflow{Needed: 1, Had: len(s.stack)}
	}
	i := s.stack[len(s.stack)-1]
	remaining := len(s.stack) - 1
	if int(i) >= remaining {
		return StackUnderflow{Needed: int(i) + 1, Had: remaining}
	}
	s.stack = s.stack[:remaining]
	idx := remaining - 1 - int(i)
	s.stack = append(s.stack[:idx], s.stack[idx+1:]...)
	return Continue{}
}

func isContinue(e Effect) bool {
	_, ok := e.(Continue)
	return ok
}
