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

// stackrun is a reference host for the stackasm engine. It is a showcase for
// github.com/hannobraun/stack-assembly/pkg/stackasm, not part of the
// engine's public contract: the engine performs no I/O of its own, and this
// command supplies one possible convention for servicing "yield".
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/hannobraun/stack-assembly/internal/ngi"
	"github.com/hannobraun/stack-assembly/pkg/program"
	"github.com/hannobraun/stack-assembly/pkg/stackasm"
	"github.com/hannobraun/stack-assembly/pkg/word"
)

// Request codes for the CLI's yield convention (documented in
// SPEC_FULL.md §6.4). This is a convention of this command, not the engine.
const (
	requestReadByte  = 1
	requestWriteByte = 2
)

var debug bool

func main() {
	memSize := flag.Int("mem", stackasm.DefaultMemorySize, "memory size in words")
	stackCap := flag.Int("stack", stackasm.DefaultStackCap, "stack cap in words, 0 = unbounded")
	maxSteps := flag.Int("steps", 0, "abort after this many steps without reaching Finished, 0 = unbounded")
	interactive := flag.Bool("i", false, "interactive host mode: service yield via stdin/stdout")
	flag.BoolVar(&debug, "debug", false, "print a full error stack trace on failure")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: stackrun [-mem N] [-stack N] [-steps N] [-i] <script.stack>")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *memSize, *stackCap, *maxSteps, *interactive); err != nil {
		atExit(err)
	}
}

func atExit(err error) {
	if debug {
		fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
	}
	os.Exit(1)
}

func run(path string, memSize, stackCap, maxSteps int, interactive bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	prog, err := program.Parse(src)
	if err != nil {
		return err
	}

	state := stackasm.NewState(prog,
		stackasm.MemorySize(memSize),
		stackasm.StackCap(stackCap),
	)

	out := ngi.NewErrWriter(os.Stdout)

	var teardown func()
	if interactive {
		teardown, err = setRawIO()
		if err != nil {
			return errors.Wrap(err, "enabling raw terminal IO")
		}
		defer teardown()
	}

	steps := 0
	for {
		eff := state.Step()
		switch eff.(type) {
		case stackasm.Continue:
			steps++
			if maxSteps > 0 && steps >= maxSteps {
				return errors.Errorf("execution did not finish within %d steps", maxSteps)
			}
			continue
		case stackasm.Finished:
			return out.Err
		case stackasm.Yield:
			if !interactive {
				return errors.New("script yielded but host was not started with -i")
			}
			if err := service(state, out); err != nil {
				return err
			}
			if err := state.Resume(); err != nil {
				return errors.Wrap(err, "resuming after yield")
			}
			steps++
			if maxSteps > 0 && steps >= maxSteps {
				return errors.Errorf("execution did not finish within %d steps", maxSteps)
			}
			continue
		default:
			return stackasm.Err(eff)
		}
	}
}

// service implements the CLI-only yield convention: the value on top of the
// stack is popped as a request code, 1 to read a byte from stdin, 2 to write
// a byte to stdout, anything else resumes immediately.
func service(state *stackasm.State, out *ngi.ErrWriter) error {
	code, eff := state.StackPop()
	if _, ok := eff.(stackasm.Continue); !ok {
		return stackasm.Err(eff)
	}

	switch code {
	case requestReadByte:
		var buf [1]byte
		if _, err := os.Stdin.Read(buf[:]); err != nil {
			return errors.Wrap(err, "reading from stdin")
		}
		if eff := state.StackPush(word.Word(buf[0])); !isContinue(eff) {
			return stackasm.Err(eff)
		}
	case requestWriteByte:
		v, eff := state.StackPop()
		if !isContinue(eff) {
			return stackasm.Err(eff)
		}
		if _, err := out.Write([]byte{byte(v)}); err != nil {
			return errors.Wrap(err, "writing to stdout")
		}
	}
	return nil
}

func isContinue(e stackasm.Effect) bool {
	_, ok := e.(stackasm.Continue)
	return ok
}
