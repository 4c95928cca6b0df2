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

package search

import "mateline.dev/x/chess/pkg/chess/move"

// killer-move ordering bonuses, most-recent killer scoring highest.
const (
	killerBonus0 = 1500
	killerBonus1 = 1000
	killerBonus2 = 500

	pvBonus = 30000
)

// basicHeuristic scores a move for ordering purposes: captures score by
// victim value divided by attacker value, so a pawn taking a queen
// outranks a queen taking a pawn, but the quotient still sits below the
// killer bonuses; quiet killer moves get a flat bonus by recency, and
// everything else scores zero. pv, if non-null, is the move recorded in
// the principal variation at this ply and always sorts first.
func (c *Context) basicHeuristic(ply int, m, pv move.Move) int {
	if pv != move.Null && m == pv {
		return pvBonus
	}

	if m.IsCapture() {
		captured := m.Captured().Type().Value()
		moving := m.Moving().Type().Value()
		return captured / moving
	}

	if slot, ok := c.isKiller(ply, m); ok {
		switch slot {
		case 0:
			return killerBonus0
		case 1:
			return killerBonus1
		default:
			return killerBonus2
		}
	}

	return 0
}

// orderByValue sorts moves[start:] in place by descending score, via
// selection sort: the move list is short enough (well under a hundred
// entries) that the quadratic cost never matters, and selection sort
// lets the best remaining move be picked out without disturbing the
// rest of the unsorted tail.
func orderByValue(moves []move.Move, scores []int, start int) {
	for i := start; i < len(moves); i++ {
		best := i
		for j := i + 1; j < len(moves); j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			moves[i], moves[best] = moves[best], moves[i]
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}
