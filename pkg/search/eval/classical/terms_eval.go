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
	"mateline.dev/x/chess/pkg/chess/board"
	"mateline.dev/x/chess/pkg/chess/piece"
	"mateline.dev/x/chess/pkg/chess/square"
	"mateline.dev/x/chess/pkg/search/eval"
)

// newTrace allocates an EvaluationTrace with its variable-length
// mobility slices sized to match Terms, so evaluate can index into them
// without a nil-slice panic.
func newTrace() *EvaluationTrace {
	trace := &EvaluationTrace{}
	for pt := piece.Knight; pt <= piece.Queen; pt++ {
		trace.Mobility[pt] = make([][piece.ColorN]int, len(Terms.Mobility[pt]))
	}
	return trace
}

func hasPawnAt(pos *board.Position, f, r int, c piece.Color) bool {
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return false
	}
	pc := pos.PieceAt(square.New(square.File(f), square.Rank(r)))
	return pc.Type() == piece.Pawn && pc.Color() == c
}

// scaleScore multiplies a packed term by a per-color occurrence count;
// used both to weight the live score and, symmetrically, to record the
// count itself as a tuning coefficient.
func scaleScore(term Score, n int) Score {
	return S(term.MG()*eval.Eval(n), term.EG()*eval.Eval(n))
}

// pawnTerm scores the pawn structure features of a single pawn:
// isolation, doubling, connection (phalanx or diagonal support),
// backwardness, and passed/candidate-passer status.
func pawnTerm(
	pos *board.Position, s square.Square, us, them piece.Color,
	pawnCount [piece.ColorN][8]int, pawnMinRank, pawnMaxRank [piece.ColorN][8]int8,
	trace *EvaluationTrace,
) Score {
	f, r := int(s.File()), int(s.Rank())
	left, right := f-1, f+1

	var score Score

	friendlyAdjacent := 0
	if left >= 0 {
		friendlyAdjacent += pawnCount[us][left]
	}
	if right <= 7 {
		friendlyAdjacent += pawnCount[us][right]
	}

	isolated := friendlyAdjacent == 0
	if isolated {
		score += Terms.Isolated
		if trace != nil {
			trace.Isolated[us]++
		}
	}

	if pawnCount[us][f] > 1 {
		score += Terms.Doubled
		if trace != nil {
			trace.Doubled[us]++
		}
	}

	forward := 1
	if us == piece.Black {
		forward = -1
	}

	supported := hasPawnAt(pos, left, r-forward, us) || hasPawnAt(pos, right, r-forward, us)
	phalanx := hasPawnAt(pos, left, r, us) || hasPawnAt(pos, right, r, us)
	if supported || phalanx {
		score += Terms.Connected
		if trace != nil {
			trace.Connected[us]++
		}
	}

	if !isolated && !supported && enemyPawnControls(pos, f, r+forward, them) {
		behindSupport := false
		for _, af := range [2]int{left, right} {
			if af < 0 || af > 7 || pawnCount[us][af] == 0 {
				continue
			}
			if us == piece.White && int(pawnMinRank[us][af]) <= r {
				behindSupport = true
			}
			if us == piece.Black && int(pawnMaxRank[us][af]) >= r {
				behindSupport = true
			}
		}
		if !behindSupport {
			score += Terms.Backward
			if trace != nil {
				trace.Backward[us]++
			}
		}
	}

	blocked := false
	for _, af := range [3]int{f - 1, f, f + 1} {
		if af < 0 || af > 7 || pawnCount[them][af] == 0 {
			continue
		}
		if us == piece.White && int(pawnMaxRank[them][af]) > r {
			blocked = true
		}
		if us == piece.Black && int(pawnMinRank[them][af]) < r {
			blocked = true
		}
	}

	switch {
	case !blocked:
		rankFromPromotion := 7 - r
		if us == piece.Black {
			rankFromPromotion = r
		}
		score += Terms.PassedPawn[rankFromPromotion]
		if trace != nil {
			trace.PassedPawn[rankFromPromotion][us]++
		}
	case pawnCount[them][f] == 0:
		score += Terms.CandidatePasser
		if trace != nil {
			trace.CandidatePasser[us]++
		}
	}

	return score
}

// enemyPawnControls reports whether a pawn of color them attacks (f, r).
func enemyPawnControls(pos *board.Position, f, r int, them piece.Color) bool {
	forward := 1
	if them == piece.Black {
		forward = -1
	}
	backRank := r - forward
	return hasPawnAt(pos, f-1, backRank, them) || hasPawnAt(pos, f+1, backRank, them)
}

// mobilityTerm scores a piece by the count of pseudo-legal destination
// squares it has, clamped to the term table's length.
func mobilityTerm(pos *board.Position, s square.Square, pt piece.Type, trace *EvaluationTrace, us piece.Color) Score {
	table := Terms.Mobility[pt]
	n := len(pos.Mobility(s))
	if n >= len(table) {
		n = len(table) - 1
	}
	if trace != nil {
		trace.Mobility[pt][n][us]++
	}
	return table[n]
}

// outpostTerm scores a knight or bishop standing on a square defended
// by one of its own pawns and that can never be attacked by an enemy
// pawn, i.e. an outpost.
func outpostTerm(
	pos *board.Position, s square.Square, pt piece.Type, us, them piece.Color,
	pawnCount [piece.ColorN][8]int, trace *EvaluationTrace,
) Score {
	f, r := int(s.File()), int(s.Rank())

	forward := 1
	if us == piece.Black {
		forward = -1
	}
	backRank := r - forward
	if !hasPawnAt(pos, f-1, backRank, us) && !hasPawnAt(pos, f+1, backRank, us) {
		return 0
	}

	for _, af := range [2]int{f - 1, f + 1} {
		if af >= 0 && af <= 7 && pawnCount[them][af] > 0 {
			return 0
		}
	}

	if pt == piece.Knight {
		if trace != nil {
			trace.KnightOutpost[us]++
		}
		return Terms.KnightOutpost
	}
	if trace != nil {
		trace.BishopOutpost[us]++
	}
	return Terms.BishopOutpost
}

// rookTerm scores a rook's file (open/semi-open) and seventh-rank
// bonuses.
func rookTerm(
	pos *board.Position, s square.Square, us piece.Color,
	pawnCount [piece.ColorN][8]int, trace *EvaluationTrace,
) Score {
	f, r := int(s.File()), int(s.Rank())
	them := us.Other()

	var score Score
	switch {
	case pawnCount[us][f] == 0 && pawnCount[them][f] == 0:
		score += Terms.RookFullOpenFile
		if trace != nil {
			trace.RookFullOpenFile[us]++
		}
	case pawnCount[us][f] == 0:
		score += Terms.RookSemiOpenFile
		if trace != nil {
			trace.RookSemiOpenFile[us]++
		}
	}

	seventh := 6
	if us == piece.Black {
		seventh = 1
	}
	if r == seventh {
		score += Terms.RookOnSeventh
		if trace != nil {
			trace.RookOnSeventh[us]++
		}
	}

	_ = pos
	return score
}

var safetyZoneDeltas = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

// kingDefendersTerm scores the king by the number of friendly, non-king
// pieces standing in its immediate zone.
func kingDefendersTerm(pos *board.Position, s square.Square, us piece.Color, trace *EvaluationTrace) Score {
	f, r := int(s.File()), int(s.Rank())
	count := 0
	for _, d := range safetyZoneDeltas {
		nf, nr := f+d[0], r+d[1]
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		pc := pos.PieceAt(square.New(square.File(nf), square.Rank(nr)))
		if pc != piece.NoPiece && pc.Color() == us && pc.Type() != piece.King {
			count++
		}
	}
	if count >= len(Terms.KingDefenders) {
		count = len(Terms.KingDefenders) - 1
	}
	if trace != nil {
		trace.KingDefenders[count][us]++
	}
	return Terms.KingDefenders[count]
}

func bishopPairTerm(pos *board.Position, us piece.Color, trace *EvaluationTrace) bool {
	count := 0
	for _, s := range pos.PieceSquares(us) {
		if pos.PieceAt(s).Type() == piece.Bishop {
			count++
		}
	}
	pair := count >= 2
	if pair && trace != nil {
		trace.BishopPair[us]++
	}
	return pair
}

func kingZone(kingSq square.Square) []square.Square {
	squares := []square.Square{kingSq}
	f, r := int(kingSq.File()), int(kingSq.Rank())
	for _, d := range safetyZoneDeltas {
		nf, nr := f+d[0], r+d[1]
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			continue
		}
		squares = append(squares, square.New(square.File(nf), square.Rank(nr)))
	}
	return squares
}

func attackWeight(pt piece.Type) int {
	switch pt {
	case piece.Knight, piece.Bishop:
		return 2
	case piece.Rook:
		return 3
	case piece.Queen:
		return 5
	default:
		return 0
	}
}

// kingSafety returns the accumulated king-danger score against
// kingColor's king, attributed to kingColor's opponent: a larger score
// means kingColor is in more danger.
func kingSafety(pos *board.Position, kingColor piece.Color, trace *EvaluationTrace) Score {
	attacker := kingColor.Other()
	kingSq := pos.KingSquare(kingColor)
	zone := kingZone(kingSq)

	attackUnits, weakSquares := 0, 0

	for _, zs := range zone {
		attacked := false
		for _, as := range pos.PieceSquares(attacker) {
			for _, ms := range pos.Mobility(as) {
				if ms == zs {
					attackUnits += attackWeight(pos.PieceAt(as).Type())
					attacked = true
					break
				}
			}
		}
		if attacked && !pos.IsSquareAttacked(zs, kingColor) {
			weakSquares++
		}
	}

	safeCheck := func(pt piece.Type) bool {
		for _, zs := range zone {
			if zs == kingSq || pos.IsSquareAttacked(zs, kingColor) {
				continue
			}
			for _, as := range pos.PieceSquares(attacker) {
				if pos.PieceAt(as).Type() != pt {
					continue
				}
				for _, ms := range pos.Mobility(as) {
					if ms == zs {
						return true
					}
				}
			}
		}
		return false
	}

	noEnemyQueen := true
	for _, as := range pos.PieceSquares(attacker) {
		if pos.PieceAt(as).Type() == piece.Queen {
			noEnemyQueen = false
			break
		}
	}

	score := scaleScore(Terms.SafetyAttackValue, attackUnits)
	score += scaleScore(Terms.SafetyWeakSquares, weakSquares)
	score += Terms.SafetyAdjustment

	if trace != nil {
		trace.SafetyAttackValue[attacker] += attackUnits
		trace.SafetyWeakSquares[attacker] += weakSquares
		trace.SafetyAdjustment[attacker]++
	}

	if noEnemyQueen {
		score += Terms.SafetyNoEnemyQueens
		if trace != nil {
			trace.SafetyNoEnemyQueens[attacker]++
		}
	}
	if safeCheck(piece.Queen) {
		score += Terms.SafetySafeQueenCheck
		if trace != nil {
			trace.SafetySafeQueenCheck[attacker]++
		}
	}
	if safeCheck(piece.Rook) {
		score += Terms.SafetySafeRookCheck
		if trace != nil {
			trace.SafetySafeRookCheck[attacker]++
		}
	}
	if safeCheck(piece.Bishop) {
		score += Terms.SafetySafeBishopCheck
		if trace != nil {
			trace.SafetySafeBishopCheck[attacker]++
		}
	}
	if safeCheck(piece.Knight) {
		score += Terms.SafetySafeKnightCheck
		if trace != nil {
			trace.SafetySafeKnightCheck[attacker]++
		}
	}

	return score
}

func attackedByType(pos *board.Position, s square.Square, by piece.Color, types ...piece.Type) bool {
	for _, as := range pos.PieceSquares(by) {
		pc := pos.PieceAt(as)
		match := false
		for _, t := range types {
			if pc.Type() == t {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		for _, ms := range pos.Mobility(as) {
			if ms == s {
				return true
			}
		}
	}
	return false
}

func attackedByPawn(pos *board.Position, s square.Square, by piece.Color) bool {
	f, r := int(s.File()), int(s.Rank())
	backRank := r - 1
	if by == piece.Black {
		backRank = r + 1
	}
	return hasPawnAt(pos, f-1, backRank, by) || hasPawnAt(pos, f+1, backRank, by)
}

// threatTerms scores the threats us's pieces make against them's pieces:
// undefended pawns, minors hit by a pawn or a major, rooks hit by a
// minor, and queens attacked at all.
func threatTerms(pos *board.Position, us piece.Color, trace *EvaluationTrace) Score {
	them := us.Other()
	var score Score

	for _, s := range pos.PawnSquares(them) {
		if pos.IsSquareAttacked(s, us) && !pos.IsSquareAttacked(s, them) {
			score += Terms.ThreatWeakPawn
			if trace != nil {
				trace.ThreatWeakPawn[us]++
			}
		}
	}

	for _, s := range pos.PieceSquares(them) {
		switch pos.PieceAt(s).Type() {
		case piece.Knight, piece.Bishop:
			switch {
			case attackedByPawn(pos, s, us):
				score += Terms.ThreatMinorAttackedByPawn
				if trace != nil {
					trace.ThreatMinorAttackedByPawn[us]++
				}
			case attackedByType(pos, s, us, piece.Rook, piece.Queen):
				score += Terms.ThreatMinorAttackedByMajor
				if trace != nil {
					trace.ThreatMinorAttackedByMajor[us]++
				}
			}
		case piece.Rook:
			if attackedByPawn(pos, s, us) || attackedByType(pos, s, us, piece.Knight, piece.Bishop) {
				score += Terms.ThreatRookAttackedByLesser
				if trace != nil {
					trace.ThreatRookAttackedByLesser[us]++
				}
			}
		case piece.Queen:
			if pos.IsSquareAttacked(s, us) {
				score += Terms.ThreatQueenAttackedByOne
				if trace != nil {
					trace.ThreatQueenAttackedByOne[us]++
				}
			}
		}
	}

	return score
}
