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

package word_test

import (
	"testing"

	"github.com/hannobraun/stack-assembly/pkg/word"
)

func TestArithmeticWrap(t *testing.T) {
	max := word.FromSigned(2147483647)
	min := word.FromSigned(-2147483648)
	if got := word.Add(max, word.FromSigned(1)); got != min {
		t.Errorf("INT32_MAX + 1 = %d, want INT32_MIN (%d)", got.Signed(), min.Signed())
	}
	if got := word.Sub(min, word.FromSigned(1)); got != max {
		t.Errorf("INT32_MIN - 1 = %d, want INT32_MAX (%d)", got.Signed(), max.Signed())
	}
}

func TestRotateRoundTrip(t *testing.T) {
	cases := []word.Word{0, 1, 0x80000000, 0xDEADBEEF, 0xFFFFFFFF}
	for _, a := range cases {
		for n := word.Word(0); n < 33; n++ {
			got := word.RotateLeft(word.RotateRight(a, n), n)
			if got != a {
				t.Errorf("rotate_left(rotate_right(%#x, %d), %d) = %#x, want %#x", uint32(a), n, n, uint32(got), uint32(a))
			}
		}
	}
}

func TestShiftLeftDiscardsHighBits(t *testing.T) {
	got := word.ShiftLeft(0xFFFFFFFF, 4)
	want := word.Word(0xFFFFFFF0)
	if got != want {
		t.Errorf("shift_left(0xFFFFFFFF, 4) = %#x, want %#x", uint32(got), uint32(want))
	}
}

func TestShiftRightSignExtends(t *testing.T) {
	got := word.ShiftRight(word.FromSigned(-8), 1)
	if got.Signed() != -4 {
		t.Errorf("shift_right(-8, 1) = %d, want -4", got.Signed())
	}
}

func TestShiftAmountModulo32(t *testing.T) {
	a := word.Word(1)
	if got := word.ShiftLeft(a, 32); got != a {
		t.Errorf("shift_left(1, 32) = %#x, want %#x (shift amount taken mod 32)", uint32(got), uint32(a))
	}
}

func TestCountOnes(t *testing.T) {
	if got := word.CountOnes(0xFFFFFFFF); got != 32 {
		t.Errorf("count_ones(all-ones) = %d, want 32", got)
	}
	if got := word.CountOnes(0); got != 0 {
		t.Errorf("count_ones(0) = %d, want 0", got)
	}
}

func TestLeadingTrailingZerosOfZero(t *testing.T) {
	if got := word.LeadingZeros(0); got != 32 {
		t.Errorf("leading_zeros(0) = %d, want 32", got)
	}
	if got := word.TrailingZeros(0); got != 32 {
		t.Errorf("trailing_zeros(0) = %d, want 32", got)
	}
}

func TestDivRemSigned(t *testing.T) {
	quot, rem := word.DivRem(word.FromSigned(-7), word.FromSigned(2))
	if quot.Signed() != -3 || rem.Signed() != -1 {
		t.Errorf("DivRem(-7, 2) = (%d, %d), want (-3, -1)", quot.Signed(), rem.Signed())
	}
}

func TestDivideOverflowDetection(t *testing.T) {
	min := word.FromSigned(-2147483648)
	if !word.IsDivideOverflow(min, word.FromSigned(-1)) {
		t.Error("expected INT32_MIN / -1 to be flagged as divide overflow")
	}
	if word.IsDivideOverflow(min, word.FromSigned(1)) {
		t.Error("INT32_MIN / 1 is representable, should not be flagged")
	}
}

func TestComparisonsAreSigned(t *testing.T) {
	neg := word.FromSigned(-1)
	pos := word.FromSigned(1)
	if !word.Lt(neg, pos) {
		t.Error("expected -1 < 1 under signed comparison")
	}
	if word.Gt(neg, pos) {
		t.Error("did not expect -1 > 1 under signed comparison")
	}
}
