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

// Package word implements the engine's single value type: an untagged
// 32-bit word, interpreted as signed, unsigned or a bit pattern depending on
// the operator consuming it.
package word

import "math/bits"

// Word is the raw type stored on the stack, in memory, and in any operand
// position. It carries no type tag; operators decide how to read it.
type Word uint32

// Signed reinterprets w as a two's-complement signed value.
func (w Word) Signed() int32 { return int32(w) }

// FromSigned builds a Word from a signed value, keeping its two's-complement
// bit pattern.
func FromSigned(v int32) Word { return Word(uint32(v)) }

// Add returns a+b, wrapping modulo 2^32.
func Add(a, b Word) Word { return a + b }

// Sub returns a-b, wrapping modulo 2^32.
func Sub(a, b Word) Word { return a - b }

// Mul returns a*b, wrapping modulo 2^32.
func Mul(a, b Word) Word { return a * b }

// DivRem performs signed truncated division of a by b, returning quotient and
// remainder. The caller must check for division by zero and for the
// INT32_MIN / -1 overflow case before calling DivRem.
func DivRem(a, b Word) (quot, rem Word) {
	as, bs := a.Signed(), b.Signed()
	return FromSigned(as / bs), FromSigned(as % bs)
}

// IsDivideByZero reports whether b is zero, the DivideByZero trigger.
func IsDivideByZero(b Word) bool { return b == 0 }

// IsDivideOverflow reports the one signed-division case that cannot be
// represented: INT32_MIN / -1.
func IsDivideOverflow(a, b Word) bool {
	return a.Signed() == -2147483648 && b.Signed() == -1
}

// And returns the bitwise AND of a and b.
func And(a, b Word) Word { return a & b }

// Or returns the bitwise OR of a and b.
func Or(a, b Word) Word { return a | b }

// Xor returns the bitwise XOR of a and b.
func Xor(a, b Word) Word { return a ^ b }

// CountOnes returns the number of set bits in a, in [0, 32].
func CountOnes(a Word) Word { return Word(bits.OnesCount32(uint32(a))) }

// LeadingZeros returns the number of leading zero bits, 32 if a is 0.
func LeadingZeros(a Word) Word { return Word(bits.LeadingZeros32(uint32(a))) }

// TrailingZeros returns the number of trailing zero bits, 32 if a is 0.
func TrailingZeros(a Word) Word { return Word(bits.TrailingZeros32(uint32(a))) }

// RotateLeft rotates a left by n bits, n taken modulo 32.
func RotateLeft(a, n Word) Word { return Word(bits.RotateLeft32(uint32(a), int(n%32))) }

// RotateRight rotates a right by n bits, n taken modulo 32.
func RotateRight(a, n Word) Word { return Word(bits.RotateLeft32(uint32(a), -int(n%32))) }

// ShiftLeft performs a logical left shift of a by n mod 32 bits.
func ShiftLeft(a, n Word) Word { return a << (n % 32) }

// ShiftRight performs an arithmetic (sign-extending) right shift of a by n
// mod 32 bits.
func ShiftRight(a, n Word) Word { return FromSigned(a.Signed() >> (n % 32)) }

// Bool converts a boolean comparison result to the engine's 0/1 convention.
func Bool(b bool) Word {
	if b {
		return 1
	}
	return 0
}

// Eq reports signed equality.
func Eq(a, b Word) bool { return a.Signed() == b.Signed() }

// Gt reports whether a > b, signed.
func Gt(a, b Word) bool { return a.Signed() > b.Signed() }

// Ge reports whether a >= b, signed.
func Ge(a, b Word) bool { return a.Signed() >= b.Signed() }

// Lt reports whether a < b, signed.
func Lt(a, b Word) bool { return a.Signed() < b.Signed() }

// Le reports whether a <= b, signed.
func Le(a, b Word) bool { return a.Signed() <= b.Signed() }
