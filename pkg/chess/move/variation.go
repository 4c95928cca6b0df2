// Copyright © 2022 Rak Laptudirm <rak@laptudirm.com>
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

package move

import "strings"

// MaxDepth bounds the length of a principal variation.
const MaxDepth = 64

// Aborted is the sentinel Length value meaning "search aborted by time
// expiry; discard this line". Callers must check for it explicitly
// before trusting Line or Length.
const Aborted = -1

// Variation is a principal variation: an ordered sequence of moves, one
// per ply, found to be best by a completed search iteration.
type Variation struct {
	Line   [MaxDepth]Move
	Length int
}

// Move returns the ith move of the variation, or Null if it doesn't
// exist.
func (v *Variation) Move(i int) Move {
	if i < 0 || i >= v.Length {
		return Null
	}
	return v.Line[i]
}

// Clear empties the variation.
func (v *Variation) Clear() {
	v.Length = 0
}

// Abort marks the variation as the product of a time-expired search; its
// contents must not be trusted by the caller.
func (v *Variation) Abort() {
	v.Length = Aborted
}

// Update prepends pMove to child and stores the result in v. If child was
// aborted, v is left aborted too: a parent may not splice a valid move
// onto a line the time-check cut short.
func (v *Variation) Update(pMove Move, child Variation) {
	if child.Length == Aborted {
		v.Abort()
		return
	}

	v.Line[0] = pMove
	copy(v.Line[1:], child.Line[:child.Length])
	v.Length = child.Length + 1
}

// String converts the variation into a human readable, space separated
// sequence of moves in long algebraic notation.
func (v Variation) String() string {
	if v.Length <= 0 {
		return ""
	}

	moves := make([]string, v.Length)
	for i := 0; i < v.Length; i++ {
		moves[i] = v.Line[i].String()
	}
	return strings.Join(moves, " ")
}
