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

// Package search implements iterative-deepening alpha-beta search with
// quiescence, move ordering by killers and a simple MVV/LVA-style
// heuristic, and root-move ordering seeded from the previous iteration.
// It holds no persistent transposition state: every search starts from a
// clean slate at the current position.
package search

import (
	"mateline.dev/x/chess/pkg/chess/board"
	"mateline.dev/x/chess/pkg/chess/move"
	"mateline.dev/x/chess/pkg/search/eval"
	searchtime "mateline.dev/x/chess/pkg/search/time"
)

// MaxPly bounds recursion depth; also sizes the killer-move table.
const MaxPly = move.MaxDepth

// Limits bounds a single search call: whichever condition is hit first
// stops the search.
type Limits struct {
	Depth   int           // stop after completing this many plys, 0 = unbounded
	Nodes   uint64        // stop after visiting this many nodes, 0 = unbounded
	Manager searchtime.Manager
}

// Context carries all of the mutable state a single search call threads
// through the recursive alpha-beta/quiescence tree: node counters, the
// killer-move table, the principal variation being built, and the
// deadline/abort flag. A Context is not safe for concurrent use; each
// search gets its own.
type Context struct {
	Board *board.Position

	Limits Limits

	AlphaBetaNodes  uint64 // nodes examined in the main search
	QuiescenceNodes uint64 // nodes examined in quiescence search

	// PV is the principal variation found so far at the root.
	PV move.Variation

	// killers[ply] holds up to 3 quiet moves that caused a beta cutoff
	// at that ply in a sibling branch, tried early as move-ordering
	// hints.
	killers [MaxPly][3]move.Move

	// rootMoves/rootValues record, in parallel, every root move tried by
	// the last completed iteration and the score it was assigned; the
	// next iteration orders root moves by looking a move up in this
	// pair before falling back to the ordinary move heuristic.
	rootMoves  []move.Move
	rootValues []eval.Eval

	stopped bool
}

// NewContext creates a search context for pos with the given limits.
func NewContext(pos *board.Position, limits Limits) *Context {
	return &Context{
		Board:  pos,
		Limits: limits,
	}
}

// Nodes returns the total number of nodes visited so far, across both
// the main search and quiescence search.
func (c *Context) Nodes() uint64 {
	return c.AlphaBetaNodes + c.QuiescenceNodes
}

// shouldStop reports whether the search must abort now: a node or time
// limit was hit. It is checked at the entry of every alpha-beta and
// quiescence node, not just periodically, since neither move generation
// nor evaluation on a mailbox board is expensive enough to need
// batching the check.
func (c *Context) shouldStop() bool {
	if c.stopped {
		return true
	}
	if c.Limits.Nodes != 0 && c.Nodes() >= c.Limits.Nodes {
		c.stopped = true
		return true
	}
	if c.Limits.Manager != nil && c.Limits.Manager.Expired() {
		c.stopped = true
		return true
	}
	return false
}

// storeKiller records m as a killer move at ply, shifting older killers
// down. Only quiet moves are ever passed in by the caller.
func (c *Context) storeKiller(ply int, m move.Move) {
	slots := &c.killers[ply]
	if slots[0] == m {
		return
	}
	slots[2] = slots[1]
	slots[1] = slots[0]
	slots[0] = m
}

// isKiller reports whether m is recorded as a killer at ply, and its
// slot index (0 = most recent) if so.
func (c *Context) isKiller(ply int, m move.Move) (int, bool) {
	for i, k := range c.killers[ply] {
		if k != move.Null && k == m {
			return i, true
		}
	}
	return 0, false
}

// rootValue looks up the score the previous completed iteration
// assigned to root move m, returning false if m wasn't tried (e.g. it
// is new to this position, or no iteration has completed yet).
func (c *Context) rootValue(m move.Move) (eval.Eval, bool) {
	for i, rm := range c.rootMoves {
		if rm == m {
			return c.rootValues[i], true
		}
	}
	return 0, false
}
