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

import (
	"mateline.dev/x/chess/pkg/chess/board"
	"mateline.dev/x/chess/pkg/chess/move"
	"mateline.dev/x/chess/pkg/search/eval"
	"mateline.dev/x/chess/pkg/search/eval/classical"
)

// quiescence extends the search along capturing lines only, until the
// position is "quiet" (no captures left to consider), to avoid
// misjudging a position in the middle of a capture sequence. It is a
// fail-soft negamax: the returned score may fall outside [alpha, beta]
// when no move improves on the window, letting the caller learn just
// how bad or good the position actually is.
func (c *Context) quiescence(alpha, beta eval.Eval, ply int) eval.Eval {
	if c.shouldStop() {
		return alpha
	}
	c.QuiescenceNodes++

	standPat := classical.Evaluate(c.Board)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := c.Board.GenAllCaptures(make([]move.Move, 0, 32))
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = c.basicHeuristic(ply, m, move.Null)
	}

	best := standPat
	for picked := 0; picked < len(moves); picked++ {
		// best-first selection: find the highest-scoring unpicked move,
		// ties broken by ascending index, and swap it into place.
		bi := picked
		for j := picked + 1; j < len(moves); j++ {
			if scores[j] > scores[bi] {
				bi = j
			}
		}
		moves[picked], moves[bi] = moves[bi], moves[picked]
		scores[picked], scores[bi] = scores[bi], scores[picked]

		m := moves[picked]

		undo := c.Board.Apply(m)
		us := c.Board.SideToMove().Other()
		if !c.Board.IsNotInCheck(us) {
			c.Board.Revert(m, undo)
			continue
		}

		score := -c.quiescence(-beta, -alpha, ply+1)
		c.Board.Revert(m, undo)

		if c.shouldStop() {
			return best
		}

		if score > best {
			best = score
			if score > alpha {
				alpha = score
				if score >= beta {
					return best
				}
			}
		}
	}

	return best
}

// ResolveQuiet walks pos forward along its best capture line, the same
// ordering and cutoff logic as quiescence, until no capture improves on
// standing pat, mutating pos in place. It is used by the tuner to
// resolve a training position to a quiet one before scoring it, so the
// static evaluator isn't asked to judge a position mid-exchange.
func ResolveQuiet(pos *board.Position) {
	for {
		standPat := classical.Evaluate(pos)

		moves := pos.GenAllCaptures(make([]move.Move, 0, 32))
		best := move.Null
		bestScore := standPat

		for _, m := range moves {
			undo := pos.Apply(m)
			us := pos.SideToMove().Other()
			if !pos.IsNotInCheck(us) {
				pos.Revert(m, undo)
				continue
			}

			var child Context
			child.Board = pos
			score := -child.quiescence(-eval.Mate, eval.Mate, 1)
			pos.Revert(m, undo)

			if score > bestScore {
				bestScore = score
				best = m
			}
		}

		if best == move.Null {
			return
		}
		pos.Apply(best)
	}
}
