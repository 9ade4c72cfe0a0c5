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

// Package program implements the two-pass parser/resolver: it turns a token
// stream into an immutable operator vector plus a label table, rejecting
// malformed tokens and duplicate or dangling labels.
//
// The error collection shape (a slice of positioned errors implementing
// error, capped at a fixed count) is modeled directly on the teacher's
// asm/parser.go ErrAsm type; the label bookkeeping is a simplified version of
// the same file's two-pass forward-reference resolution, without the
// teacher's numbered local-label renumbering (":1", "1b", "1f"), which has no
// equivalent in this spec's flat label model.
package program

import (
	"strconv"
	"strings"

	"github.com/hannobraun/stack-assembly/pkg/token"
	"github.com/hannobraun/stack-assembly/pkg/word"
)

const maxErrors = 10

// ErrorKind classifies a parse-time error.
type ErrorKind int

// Parse error kinds.
const (
	MalformedInteger ErrorKind = iota
	UnterminatedComment
	UnknownIdentifierShape // reserved: identifiers are never rejected at parse time (spec §3)
	DuplicateLabel
	DanglingLabel
	UnresolvedReference
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedInteger:
		return "MalformedInteger"
	case UnterminatedComment:
		return "UnterminatedComment"
	case DuplicateLabel:
		return "DuplicateLabel"
	case DanglingLabel:
		return "DanglingLabel"
	case UnresolvedReference:
		return "UnresolvedReference"
	default:
		return "ParseError"
	}
}

// parseErr is one entry of a ParseError.
type parseErr struct {
	Kind ErrorKind
	Pos  token.Position
	Msg  string
}

// ParseError collects up to maxErrors diagnostics produced while parsing a
// script. It implements error.
type ParseError []parseErr

func (e ParseError) Error() string {
	parts := make([]string, len(e))
	for i, p := range e {
		parts[i] = p.Pos.String() + ": " + p.Kind.String() + ": " + p.Msg
	}
	return strings.Join(parts, "\n")
}

// OperatorKind classifies an Operator.
type OperatorKind int

// Operator kinds. Label is never emitted into a Program's operator vector;
// it exists only while parsing.
const (
	OpInteger OperatorKind = iota
	OpReference
	OpIdentifier
)

// Operator is one executable unit of a parsed Program.
type Operator struct {
	Kind OperatorKind
	// Value holds the literal word for OpInteger, the resolved operator
	// index (as a word) for OpReference, and is unused for OpIdentifier.
	Value word.Word
	// Identifier holds the raw identifier text for OpIdentifier operators.
	// Validity against the known-identifier set is checked at evaluation
	// time, never here (spec §3: "invalid identifiers are represented so
	// the evaluator can raise UnknownIdentifier at evaluation time").
	Identifier string
	Pos        token.Position
}

// Program is an immutable ordered sequence of operators plus a label table.
// It is safe for concurrent use by many States once Parse has returned.
type Program struct {
	Operators []Operator
	Labels    map[string]int
}

// Len returns the number of operators in the program.
func (p *Program) Len() int { return len(p.Operators) }

type labelUse struct {
	name string
	opIx int
	pos  token.Position
}

// Parse lexes and resolves script text into a Program. It is a pure
// function: it performs no I/O and has no observable side effects beyond its
// return values.
func Parse(src []byte) (*Program, error) {
	lx := token.New(src)

	var ops []Operator
	labels := make(map[string]int)
	var labelDefPos = make(map[string]token.Position)
	var pendingLabels []string
	var uses []labelUse
	var errs ParseError

	fail := func(kind ErrorKind, pos token.Position, msg string) bool {
		errs = append(errs, parseErr{Kind: kind, Pos: pos, Msg: msg})
		return len(errs) >= maxErrors
	}

	for {
		tok, err := lx.Next()
		if err != nil {
			switch e := err.(type) {
			case *token.ErrMalformedInteger:
				if fail(MalformedInteger, e.Pos, e.Error()) {
					return nil, errs
				}
			case *token.ErrUnterminatedComment:
				if fail(UnterminatedComment, e.Pos, e.Error()) {
					return nil, errs
				}
				goto done
			default:
				if fail(MalformedInteger, tok.Pos, err.Error()) {
					return nil, errs
				}
			}
			continue
		}
		if tok.Kind == token.EOF {
			break
		}

		switch tok.Kind {
		case token.Label:
			if _, ok := labels[tok.Text]; ok {
				if fail(DuplicateLabel, tok.Pos, "duplicate label "+strconv.Quote(tok.Text)) {
					return nil, errs
				}
				continue
			}
			if _, pending := labelDefPos[tok.Text]; pending {
				if fail(DuplicateLabel, tok.Pos, "duplicate label "+strconv.Quote(tok.Text)) {
					return nil, errs
				}
				continue
			}
			labelDefPos[tok.Text] = tok.Pos
			pendingLabels = append(pendingLabels, tok.Text)
		case token.Integer:
			ix := len(ops)
			ops = append(ops, Operator{Kind: OpInteger, Value: word.FromSigned(int32(tok.Value)), Pos: tok.Pos})
			for _, name := range pendingLabels {
				labels[name] = ix
			}
			pendingLabels = nil
		case token.Reference:
			ix := len(ops)
			ops = append(ops, Operator{Kind: OpReference, Pos: tok.Pos})
			uses = append(uses, labelUse{name: tok.Text, opIx: ix, pos: tok.Pos})
			for _, name := range pendingLabels {
				labels[name] = ix
			}
			pendingLabels = nil
		case token.Identifier:
			ix := len(ops)
			ops = append(ops, Operator{Kind: OpIdentifier, Identifier: tok.Text, Pos: tok.Pos})
			for _, name := range pendingLabels {
				labels[name] = ix
			}
			pendingLabels = nil
		}
	}
done:

	for _, name := range pendingLabels {
		if fail(DanglingLabel, labelDefPos[name], "label "+strconv.Quote(name)+" has no following operator") {
			return nil, errs
		}
	}

	for _, u := range uses {
		ix, ok := labels[u.name]
		if !ok {
			if fail(UnresolvedReference, u.pos, "unresolved reference "+strconv.Quote(u.name)) {
				return nil, errs
			}
			continue
		}
		ops[u.opIx].Value = word.Word(uint32(ix))
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &Program{Operators: ops, Labels: labels}, nil
}
