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

package program_test

import (
	"testing"

	"github.com/hannobraun/stack-assembly/pkg/program"
)

func TestParseResolvesForwardReference(t *testing.T) {
	p, err := program.Parse([]byte("@loop jump loop: 0"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("got %d operators, want 3", p.Len())
	}
	if p.Operators[0].Kind != program.OpReference {
		t.Fatalf("operator 0 kind = %v, want OpReference", p.Operators[0].Kind)
	}
	if got := int(p.Operators[0].Value); got != 2 {
		t.Errorf("reference resolved to index %d, want 2", got)
	}
	if p.Labels["loop"] != 2 {
		t.Errorf("label table entry for loop = %d, want 2", p.Labels["loop"])
	}
}

func TestMultipleConsecutiveLabelsShareIndex(t *testing.T) {
	p, err := program.Parse([]byte("a: b: 42"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if p.Labels["a"] != 0 || p.Labels["b"] != 0 {
		t.Errorf("labels = %v, want both at 0", p.Labels)
	}
}

func TestDanglingLabel(t *testing.T) {
	_, err := program.Parse([]byte("0 end:"))
	assertKind(t, err, program.DanglingLabel)
}

func TestDuplicateLabel(t *testing.T) {
	_, err := program.Parse([]byte("a: a: 0 jump"))
	assertKind(t, err, program.DuplicateLabel)
}

func TestUnresolvedReference(t *testing.T) {
	_, err := program.Parse([]byte("@missing jump"))
	assertKind(t, err, program.UnresolvedReference)
}

func TestMalformedInteger(t *testing.T) {
	_, err := program.Parse([]byte("4294967295"))
	assertKind(t, err, program.MalformedInteger)
}

func TestLabelsAreNotOperators(t *testing.T) {
	p, err := program.Parse([]byte("a: b: c: 1 2 +"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("got %d operators, want 3 (labels must not be emitted)", p.Len())
	}
}

func assertKind(t *testing.T, err error, want program.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %v parse error, got nil", want)
	}
	perr, ok := err.(program.ParseError)
	if !ok {
		t.Fatalf("got error type %T, want program.ParseError", err)
	}
	if len(perr) == 0 {
		t.Fatal("empty ParseError")
	}
	found := false
	for _, e := range perr {
		if e.Kind == want {
			found = true
		}
	}
	if !found {
		t.Errorf("ParseError %v does not contain expected kind %v", perr, want)
	}
}
