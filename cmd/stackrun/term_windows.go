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

//go:build windows

package main

// setRawIO is not implemented on Windows; interactive mode falls back to
// line-buffered stdin.
func setRawIO() (func(), error) {
	return func() {}, nil
}
