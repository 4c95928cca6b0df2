// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package eval contains the relative-centipawn evaluation type shared by
// the search and evaluator packages.
package eval

import "fmt"

// Eval represents a relative centipawn evaluation where > 0 is better for
// the side to move, < 0 is better for the other side.
type Eval int32

// Mate/CheckMate is the terminal-loss sentinel magnitude. It is kept well
// below int32's range so that negation and small ply adjustments never
// overflow.
const (
	Mate      Eval = 32000
	CheckMate      = Mate

	Draw Eval = 0
)

// WinInMaxPly/LoseInMaxPly bound the window of evaluations that represent
// a forced mate rather than a regular positional score.
const (
	WinInMaxPly  Eval = Mate - 512
	LoseInMaxPly Eval = -WinInMaxPly
)

// MatedIn returns the score for being checkmated in the given number of
// plys from the root: shorter mates score further from zero, so a
// mate-in-1 always beats a mate-in-5 in comparisons.
func MatedIn(ply int) Eval {
	return -Mate + Eval(ply)
}

// MateIn returns the score for delivering checkmate in the given number
// of plys from the root.
func MateIn(ply int) Eval {
	return Mate - Eval(ply)
}

// IsMateScore reports whether e falls inside the forced-mate window.
func IsMateScore(e Eval) bool {
	return e > WinInMaxPly || e < LoseInMaxPly
}

// String renders a UCI-style score: "cp <n>" for a regular evaluation, or
// "mate <n>" for a forced mate, n plys counted in full moves.
func (e Eval) String() string {
	switch {
	case e > WinInMaxPly:
		ply := Mate - e
		return fmt.Sprintf("mate %d", (int(ply)+1)/2)
	case e < LoseInMaxPly:
		ply := Mate + e
		return fmt.Sprintf("mate %d", -(int(ply)+1)/2)
	default:
		return fmt.Sprintf("cp %d", e)
	}
}
