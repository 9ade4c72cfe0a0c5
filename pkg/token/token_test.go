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

package token_test

import (
	"testing"

	"github.com/hannobraun/stack-assembly/pkg/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	lx := token.New([]byte(src))
	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		if tok.Kind == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestClassification(t *testing.T) {
	toks := scanAll(t, "loop: 0 @loop jump_if -5 +")
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.Label, "loop"},
		{token.Integer, "0"},
		{token.Reference, "loop"},
		{token.Identifier, "jump_if"},
		{token.Integer, "-5"},
		{token.Identifier, "+"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d = %v %q, want %v %q", i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
}

func TestIntegerRangeRejectsUnsignedWraparound(t *testing.T) {
	lx := token.New([]byte("4294967295"))
	_, err := lx.Next()
	if err == nil {
		t.Fatal("expected 4294967295 to be rejected as out of signed range")
	}
	if _, ok := err.(*token.ErrMalformedInteger); !ok {
		t.Errorf("got error %T, want *token.ErrMalformedInteger", err)
	}
}

func TestIntegerRangeBoundary(t *testing.T) {
	for _, s := range []string{"2147483647", "-2147483648"} {
		lx := token.New([]byte(s))
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("%s: unexpected error %v", s, err)
		}
		if tok.Kind != token.Integer {
			t.Errorf("%s: got kind %v, want Integer", s, tok.Kind)
		}
	}
}

func TestLeadingPlusIsNotInteger(t *testing.T) {
	lx := token.New([]byte("+5"))
	tok, err := lx.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Kind != token.Identifier {
		t.Errorf("got kind %v, want Identifier (leading '+' must not parse as integer)", tok.Kind)
	}
}

func TestCommentsAreElided(t *testing.T) {
	toks := scanAll(t, "1 ( this is a comment ) 2 +")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %+v", len(toks), toks)
	}
	if toks[0].Text != "1" || toks[1].Text != "2" || toks[2].Text != "+" {
		t.Errorf("unexpected tokens: %+v", toks)
	}
}

func TestUnterminatedComment(t *testing.T) {
	lx := token.New([]byte("1 ( never closed"))
	if _, err := lx.Next(); err != nil {
		t.Fatalf("unexpected error on first token: %v", err)
	}
	if _, err := lx.Next(); err == nil {
		t.Fatal("expected unterminated comment error")
	}
}

func TestUnicodeWhitespaceSplitsTokens(t *testing.T) {
	toks := scanAll(t, "1 2 +") // NBSP and EM SPACE
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %+v", len(toks), toks)
	}
}

func TestShortLabelsAndReferencesAreIdentifiers(t *testing.T) {
	// length < 2 fails the label/reference shape checks (spec §4.1 rules 1-2).
	toks := scanAll(t, ": @")
	for _, tok := range toks {
		if tok.Kind != token.Identifier {
			t.Errorf("token %q classified as %v, want Identifier", tok.Raw, tok.Kind)
		}
	}
}
