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
	"mateline.dev/x/chess/internal/util"
	"mateline.dev/x/chess/pkg/chess/board"
	"mateline.dev/x/chess/pkg/chess/piece"
	"mateline.dev/x/chess/pkg/chess/square"
	"mateline.dev/x/chess/pkg/search/eval"
)

// Terms holds the current value of every tunable evaluation term. It is
// the live weight set the evaluator reads from, and the set the tuner
// overwrites with FormatParameters output between tuning runs.
var Terms EvaluationTerms[Score]

func init() {
	Terms.PieceSquare = buildPieceSquare()

	Terms.Mobility[piece.Knight] = mobilityTable(9, S(4, 4))
	Terms.Mobility[piece.Bishop] = mobilityTable(14, S(5, 4))
	Terms.Mobility[piece.Rook] = mobilityTable(15, S(3, 5))
	Terms.Mobility[piece.Queen] = mobilityTable(28, S(2, 3))

	Terms.Isolated = S(-11, -8)
	Terms.Doubled = S(-7, -15)
	Terms.Backward = S(-9, -6)
	Terms.Connected = S(6, 4)
	Terms.CandidatePasser = S(8, 14)
	Terms.PassedPawn = [8]Score{
		0, S(5, 10), S(8, 16), S(14, 26),
		S(24, 42), S(40, 70), S(60, 100), 0,
	}

	Terms.BishopPair = S(22, 32)
	Terms.KnightOutpost = S(18, 10)
	Terms.BishopOutpost = S(14, 6)

	Terms.RookFullOpenFile = S(25, 12)
	Terms.RookSemiOpenFile = S(12, 8)
	Terms.RookOnSeventh = S(10, 18)

	Terms.KingDefenders = [12]Score{
		S(-28, 0), S(-18, 0), S(-8, 0), S(0, 0),
		S(6, 0), S(12, 0), S(16, 0), S(18, 0),
		S(18, 0), S(18, 0), S(18, 0), S(18, 0),
	}

	Terms.SafetyAttackValue = S(36, 12)
	Terms.SafetyWeakSquares = S(22, 6)
	Terms.SafetyNoEnemyQueens = S(-180, -60)
	Terms.SafetySafeQueenCheck = S(60, 20)
	Terms.SafetySafeRookCheck = S(48, 16)
	Terms.SafetySafeBishopCheck = S(22, 8)
	Terms.SafetySafeKnightCheck = S(28, 10)
	Terms.SafetyAdjustment = S(24, 0)

	Terms.ThreatWeakPawn = S(-8, -18)
	Terms.ThreatMinorAttackedByPawn = S(-48, -38)
	Terms.ThreatMinorAttackedByMajor = S(-24, -20)
	Terms.ThreatRookAttackedByLesser = S(-46, -28)
	Terms.ThreatQueenAttackedByOne = S(-42, -34)
	Terms.ThreatOverloadedPieces = S(-6, -10)
	Terms.ThreatByPawnPush = S(-16, -14)
}

// mobilityTable builds a length-n mobility term table linearly scaled
// from zero available squares up to per-square increment step.
func mobilityTable(n int, step Score) []Score {
	table := make([]Score, n)
	for i := range table {
		table[i] = S(step.MG()*eval.Eval(i), step.EG()*eval.Eval(i))
	}
	return table
}

// Evaluate returns the position's evaluation relative to the side to
// move, in centipawns.
func Evaluate(pos *board.Position) eval.Eval {
	return evaluate(pos, nil)
}

// EvaluateTrace returns the position's evaluation along with a trace of
// every term's per-color contribution count, used by the tuner to
// derive sparse gradient coefficients.
func EvaluateTrace(pos *board.Position) (eval.Eval, *EvaluationTrace) {
	trace := newTrace()
	score := evaluate(pos, trace)
	return score, trace
}

// evaluate walks the mailbox board once, accumulating a packed Score
// for White and tapering it by game phase into a side-relative Eval. If
// trace is non-nil its per-color term counts are populated as a side
// effect, for later use by the tuner's coefficient extraction.
func evaluate(pos *board.Position, trace *EvaluationTrace) eval.Eval {
	phase := eval.Eval(0)

	var pawnCount [piece.ColorN][8]int
	var pawnMinRank, pawnMaxRank [piece.ColorN][8]int8
	for c := piece.White; c <= piece.Black; c++ {
		for f := 0; f < 8; f++ {
			pawnMinRank[c][f] = 8
			pawnMaxRank[c][f] = -1
		}
	}

	for _, s := range pos.PawnSquares(piece.White) {
		f := int(s.File())
		pawnCount[piece.White][f]++
		r := int8(s.Rank())
		if r < pawnMinRank[piece.White][f] {
			pawnMinRank[piece.White][f] = r
		}
		if r > pawnMaxRank[piece.White][f] {
			pawnMaxRank[piece.White][f] = r
		}
	}
	for _, s := range pos.PawnSquares(piece.Black) {
		f := int(s.File())
		pawnCount[piece.Black][f]++
		r := int8(s.Rank())
		if r < pawnMinRank[piece.Black][f] {
			pawnMinRank[piece.Black][f] = r
		}
		if r > pawnMaxRank[piece.Black][f] {
			pawnMaxRank[piece.Black][f] = r
		}
	}

	var score Score

	for s := square.Square(0); s < square.N; s++ {
		pc := pos.PieceAt(s)
		if pc == piece.NoPiece {
			continue
		}

		us, them := pc.Color(), pc.Color().Other()
		sign := Score(1)
		if us == piece.Black {
			sign = -1
		}

		term := Terms.PieceSquare[pc][s]
		score += sign * term

		switch pc.Type() {
		case piece.Pawn:
			score += sign * pawnTerm(pos, s, us, them, pawnCount, pawnMinRank, pawnMaxRank, trace)

		case piece.Knight, piece.Bishop, piece.Rook, piece.Queen:
			phase += phaseInc[pc.Type()]
			score += sign * mobilityTerm(pos, s, pc.Type(), trace, us)
			if pc.Type() == piece.Knight || pc.Type() == piece.Bishop {
				score += sign * outpostTerm(pos, s, pc.Type(), us, them, pawnCount, trace)
			}
			if pc.Type() == piece.Rook {
				score += sign * rookTerm(pos, s, us, pawnCount, trace)
			}

		case piece.King:
			score += sign * kingDefendersTerm(pos, s, us, trace)
		}
	}

	if bishopPairTerm(pos, piece.White, trace) {
		score += Terms.BishopPair
	}
	if bishopPairTerm(pos, piece.Black, trace) {
		score -= Terms.BishopPair
	}

	whiteSafety := kingSafety(pos, piece.White, trace)
	blackSafety := kingSafety(pos, piece.Black, trace)
	score += NonLinearSafety(blackSafety) - NonLinearSafety(whiteSafety)

	score += threatTerms(pos, piece.White, trace) - threatTerms(pos, piece.Black, trace)

	if trace != nil {
		trace.Evaluation = score
		trace.Safety[piece.White] = whiteSafety
		trace.Safety[piece.Black] = blackSafety
	}

	if phase > MaxPhase {
		phase = MaxPhase
	}

	tapered := util.Lerp(score.MG(), score.EG(), phase, MaxPhase)
	if pos.SideToMove() == piece.Black {
		tapered = -tapered
	}
	return tapered
}

// NonLinearSafety folds a side's accumulated king-danger score through a
// non-linear response curve: the middlegame term grows quadratically
// (a handful of extra attackers is disproportionately dangerous) while
// the endgame term, where mating attacks are rare, stays linear and is
// heavily damped.
func NonLinearSafety(safety Score) Score {
	mg := int64(safety.MG())
	if mg < 0 {
		mg = 0
	}
	eg := int64(safety.EG())
	if eg < 0 {
		eg = 0
	}
	return S(eval.Eval(mg*mg/720), eval.Eval(eg/8))
}
