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

package classical

import (
	"mateline.dev/x/chess/pkg/chess/piece"
	"mateline.dev/x/chess/pkg/search/eval"
)

// game phase increment of each piece type, per spec's phase derivation:
// queens weight 4, rooks 2, minors 1, pawns/kings 0.
const (
	pawnPhaseInc   eval.Eval = 0
	knightPhaseInc eval.Eval = 1
	bishopPhaseInc eval.Eval = 1
	rookPhaseInc   eval.Eval = 2
	queenPhaseInc  eval.Eval = 4
)

var phaseInc = [piece.TypeN]eval.Eval{
	piece.Pawn:   pawnPhaseInc,
	piece.Knight: knightPhaseInc,
	piece.Bishop: bishopPhaseInc,
	piece.Rook:   rookPhaseInc,
	piece.Queen:  queenPhaseInc,
}

// MaxPhase is the phase value of the starting position, and the cap
// applied to any position with more remaining material than that (which
// cannot occur from a legal start but is clamped for safety).
const MaxPhase = 16*pawnPhaseInc +
	4*knightPhaseInc + 4*bishopPhaseInc +
	4*rookPhaseInc + 2*queenPhaseInc
