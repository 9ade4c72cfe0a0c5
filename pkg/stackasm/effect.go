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
	"fmt"

	"github.com/hannobraun/stack-assembly/pkg/word"
)

// Effect is the value returned by Step and Run, indicating why execution
// paused. Exactly one of the concrete types below, or *InternalError (see
// eval.go), is ever returned.
//
// This generalizes the teacher's habit of returning a single wrapped error
// from Run/Step (vm/run.go, vm/core.go) into a small closed set of types: the
// host needs to switch on *which* condition occurred, not just detect that
// one did.
type Effect interface {
	isEffect()
}

// Continue is returned by Step after an ordinary operator that neither
// finishes, yields, nor errors. Run never returns it; Run loops internally
// until it observes something else.
type Continue struct{}

func (Continue) isEffect() {}

// Finished reports that the program counter reached the end of the
// operator vector. Idempotent: once returned, further Step calls keep
// returning Finished.
type Finished struct{}

func (Finished) isEffect() {}

// Yield is the cooperative suspension raised by the yield operator. The
// program counter has already advanced past the yield operator. The host
// may inspect/mutate the stack and memory via State's accessors, then call
// Resume.
type Yield struct{}

func (Yield) isEffect() {}

// UnknownIdentifier is raised when the evaluator executes an identifier
// operator whose text is not in the fixed known-identifier set.
type UnknownIdentifier struct {
	Name string
}

func (UnknownIdentifier) isEffect() {}
func (e UnknownIdentifier) Error() string {
	return fmt.Sprintf("unknown identifier %q", e.Name)
}

// StackUnderflow is raised when an operator needs more operands than the
// stack currently holds.
type StackUnderflow struct {
	Needed, Had int
}

func (StackUnderflow) isEffect() {}
func (e StackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow: needed %d, had %d", e.Needed, e.Had)
}

// StackOverflow is raised when a push would exceed the configured stack cap.
type StackOverflow struct{}

func (StackOverflow) isEffect() {}
func (StackOverflow) Error() string { return "stack overflow" }

// MemoryOutOfBounds is raised by read/write when addr is outside memory.
type MemoryOutOfBounds struct {
	Addr word.Word
	Size int
}

func (MemoryOutOfBounds) isEffect() {}
func (e MemoryOutOfBounds) Error() string {
	return fmt.Sprintf("memory out of bounds: addr %d, size %d", uint32(e.Addr), e.Size)
}

// BadJumpTarget is raised by jump/jump_if when the target index is not a
// valid operator index.
type BadJumpTarget struct {
	Target      word.Word
	ProgramSize int
}

func (BadJumpTarget) isEffect() {}
func (e BadJumpTarget) Error() string {
	return fmt.Sprintf("bad jump target: %d, program size %d", uint32(e.Target), e.ProgramSize)
}

// DivideByZero is raised by / when the divisor is zero.
type DivideByZero struct{}

func (DivideByZero) isEffect() {}
func (DivideByZero) Error() string { return "divide by zero" }

// DivideOverflow is raised by / for the single unrepresentable signed
// division: INT32_MIN / -1.
type DivideOverflow struct{}

func (DivideOverflow) isEffect() {}
func (DivideOverflow) Error() string { return "divide overflow" }

// IsTerminal reports whether e is anything other than Continue or Yield --
// i.e. whether the state is halted and will keep returning e from Step.
func IsTerminal(e Effect) bool {
	switch e.(type) {
	case Continue, Yield:
		return false
	default:
		return true
	}
}

// Err returns e as an error if it is one of the error-shaped effects
// (anything but Continue, Finished and Yield), or nil otherwise.
func Err(e Effect) error {
	if err, ok := e.(error); ok {
		return err
	}
	return nil
}
