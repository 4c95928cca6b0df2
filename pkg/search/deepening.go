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
	"fmt"
	"time"

	"mateline.dev/x/chess/internal/util"
	"mateline.dev/x/chess/pkg/chess/move"
	"mateline.dev/x/chess/pkg/search/eval"
)

// maxSearchDepth bounds iterative deepening when Limits.Depth is left
// at zero (unbounded): the killer/PV tables are only sized for MaxPly.
const maxSearchDepth = MaxPly - 1

// GetBestMove runs iterative deepening from depth 1 until Limits is
// exhausted (by depth, node count, or the time manager), and returns
// the best move found along with its evaluation. Each iteration's PV is
// only committed once that iteration completes in full: a depth cut
// short by the deadline never overwrites the last good line.
func (c *Context) GetBestMove() (move.Move, eval.Eval) {
	if c.Limits.Manager != nil {
		c.Limits.Manager.GetDeadline()
	}

	maxDepth := c.Limits.Depth
	if maxDepth <= 0 || maxDepth > maxSearchDepth {
		maxDepth = maxSearchDepth
	}

	start := time.Now()

	var score eval.Eval
	var pv move.Variation

	for depth := 1; depth <= maxDepth; depth++ {
		var childPV move.Variation
		iterScore := c.AlphaBeta(-eval.Mate, eval.Mate, depth, 0, &childPV)

		if childPV.Length == move.Aborted {
			break
		}

		score = iterScore
		pv = childPV
		c.PV = pv

		elapsed := time.Since(start)
		nodes := c.Nodes()
		fmt.Printf(
			"info depth %d score %s nodes %d nps %.f time %d pv %s\n",
			depth, score, nodes,
			float64(nodes)/util.Max(0.001, elapsed.Seconds()),
			elapsed.Milliseconds(), pv,
		)

		if eval.IsMateScore(score) {
			break
		}

		if c.shouldStop() {
			break
		}
	}

	c.PV = pv
	return pv.Move(0), score
}
