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
	"mateline.dev/x/chess/pkg/chess/move"
	"mateline.dev/x/chess/pkg/search/eval"
)

// AlphaBeta runs a fail-soft negamax search of the given depth from the
// current board, using principal-variation search: the first move at
// every node is searched with the full [alpha, beta] window, and every
// later move is first scouted with a null window and only re-searched
// in full if the scout suggests it might raise alpha. There is no
// transposition table; every call walks the tree fresh, relying on move
// ordering (root values from the previous iteration, killers, and
// MVV/LVA) to make that affordable.
func (c *Context) AlphaBeta(alpha, beta eval.Eval, depth, ply int, pv *move.Variation) eval.Eval {
	pv.Clear()

	if c.shouldStop() {
		pv.Abort()
		return alpha
	}

	if ply > 0 && c.Board.IsDraw() {
		return eval.Draw
	}

	if depth <= 0 {
		return c.quiescence(alpha, beta, ply)
	}

	c.AlphaBetaNodes++

	moves := c.Board.GenAllMoves(make([]move.Move, 0, 64))
	scores := make([]int, len(moves))

	pvMove := move.Null
	if ply < c.PV.Length {
		pvMove = c.PV.Move(ply)
	}

	for i, m := range moves {
		if ply == 0 {
			if v, ok := c.rootValue(m); ok {
				scores[i] = int(v)
				continue
			}
		}
		scores[i] = c.basicHeuristic(ply, m, pvMove)
	}

	legal := 0
	inCheck := c.Board.IsInCheck(c.Board.SideToMove())
	best := eval.MatedIn(ply)
	var childPV move.Variation

	var newRootMoves []move.Move
	var newRootValues []eval.Eval
	if ply == 0 {
		newRootMoves = make([]move.Move, 0, len(moves))
		newRootValues = make([]eval.Eval, 0, len(moves))
	}

	for picked := 0; picked < len(moves); picked++ {
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
		legal++

		var score eval.Eval
		if legal == 1 {
			score = -c.AlphaBeta(-beta, -alpha, depth-1, ply+1, &childPV)
		} else {
			score = -c.AlphaBeta(-alpha-1, -alpha, depth-1, ply+1, &childPV)
			if score > alpha && score < beta {
				score = -c.AlphaBeta(-beta, -alpha, depth-1, ply+1, &childPV)
			}
		}

		c.Board.Revert(m, undo)

		if c.shouldStop() {
			pv.Abort()
			return alpha
		}

		if ply == 0 {
			newRootMoves = append(newRootMoves, m)
			newRootValues = append(newRootValues, score)
		}

		if score > best {
			best = score
			pv.Update(m, childPV)

			if score > alpha {
				alpha = score

				if score >= beta {
					if m.IsQuiet() {
						c.storeKiller(ply, m)
					}
					if ply == 0 {
						c.rootMoves, c.rootValues = newRootMoves, newRootValues
					}
					return best
				}
			}
		}
	}

	if legal == 0 {
		if inCheck {
			return eval.MatedIn(ply)
		}
		return eval.Draw
	}

	if ply == 0 {
		c.rootMoves, c.rootValues = newRootMoves, newRootValues
	}

	return best
}
