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
	"fmt"

	"mateline.dev/x/chess/pkg/chess/piece"
	"mateline.dev/x/chess/pkg/chess/square"
)

// EvaluationTerms holds one instance of every tunable evaluation term,
// generic over T so the same shape stores packed Scores (the live
// evaluator) or per-color trace counts (the tuner's coefficient extraction).
type EvaluationTerms[T any] struct {
	// piece-square table, material folded in
	PieceSquare [piece.N][square.N]T

	// mobility by piece type and available-square count
	Mobility [piece.TypeN][]T

	// pawn structure
	Isolated        T
	Doubled         T
	Backward        T
	Connected       T
	CandidatePasser T
	PassedPawn      [8]T // indexed by rank-from-promotion, 0 unused

	// minor piece terms
	BishopPair    T
	KnightOutpost T
	BishopOutpost T

	// rook terms
	RookFullOpenFile T
	RookSemiOpenFile T
	RookOnSeventh    T

	// king safety
	KingDefenders [12]T

	SafetyAttackValue     T
	SafetyWeakSquares     T
	SafetyNoEnemyQueens   T
	SafetySafeQueenCheck  T
	SafetySafeRookCheck   T
	SafetySafeBishopCheck T
	SafetySafeKnightCheck T
	SafetyAdjustment      T

	// threats
	ThreatWeakPawn             T
	ThreatMinorAttackedByPawn  T
	ThreatMinorAttackedByMajor T
	ThreatRookAttackedByLesser T
	ThreatQueenAttackedByOne   T
	ThreatOverloadedPieces     T
	ThreatByPawnPush           T
}

// FetchTerm returns a pointer to the evaluation term at the given index,
// per the index table below; used by the tuner to walk every term
// uniformly regardless of its shape.
func (terms *EvaluationTerms[T]) FetchTerm(index int) *T {
	switch index {
	case IndexIsolated:
		return &terms.Isolated
	case IndexDoubled:
		return &terms.Doubled
	case IndexBackward:
		return &terms.Backward
	case IndexConnected:
		return &terms.Connected
	case IndexCandidatePasser:
		return &terms.CandidatePasser

	case IndexBishopPair:
		return &terms.BishopPair
	case IndexKnightOutpost:
		return &terms.KnightOutpost
	case IndexBishopOutpost:
		return &terms.BishopOutpost

	case IndexRookFullOpenFile:
		return &terms.RookFullOpenFile
	case IndexRookSemiOpenFile:
		return &terms.RookSemiOpenFile
	case IndexRookOnSeventh:
		return &terms.RookOnSeventh

	case IndexSafetyAttackValue:
		return &terms.SafetyAttackValue
	case IndexSafetyWeakSquares:
		return &terms.SafetyWeakSquares
	case IndexSafetyNoEnemyQueens:
		return &terms.SafetyNoEnemyQueens
	case IndexSafetySafeQueenCheck:
		return &terms.SafetySafeQueenCheck
	case IndexSafetySafeRookCheck:
		return &terms.SafetySafeRookCheck
	case IndexSafetySafeBishopCheck:
		return &terms.SafetySafeBishopCheck
	case IndexSafetySafeKnightCheck:
		return &terms.SafetySafeKnightCheck
	case IndexSafetyAdjustment:
		return &terms.SafetyAdjustment

	case IndexThreatWeakPawn:
		return &terms.ThreatWeakPawn
	case IndexThreatMinorAttackedByPawn:
		return &terms.ThreatMinorAttackedByPawn
	case IndexThreatMinorAttackedByMajor:
		return &terms.ThreatMinorAttackedByMajor
	case IndexThreatRookAttackedByLesser:
		return &terms.ThreatRookAttackedByLesser
	case IndexThreatQueenAttackedByOne:
		return &terms.ThreatQueenAttackedByOne
	case IndexThreatOverloadedPieces:
		return &terms.ThreatOverloadedPieces
	case IndexThreatByPawnPush:
		return &terms.ThreatByPawnPush
	}

	switch {
	case index >= IndexMobility && index < IndexMobility+MobilityN:
		i := index - IndexMobility
		switch {
		case i < 9:
			return &terms.Mobility[piece.Knight][i]
		case i < 9+14:
			return &terms.Mobility[piece.Bishop][i-9]
		case i < 9+14+15:
			return &terms.Mobility[piece.Rook][i-9-14]
		default:
			return &terms.Mobility[piece.Queen][i-9-14-15]
		}

	case index >= IndexPSQT && index < IndexPSQT+PSQTN:
		i := index - IndexPSQT
		sq := i % 64
		i = (i - sq) / 64
		pc := i % 2
		i = (i - pc) / 2
		pt := i + 1 // skip NoType

		p := piece.New(piece.Type(pt), piece.Color(pc))
		return &terms.PieceSquare[p][sq]

	case index >= IndexPassedPawn && index < IndexPassedPawn+PassedPawnN:
		return &terms.PassedPawn[index-IndexPassedPawn]

	case index >= IndexKingDefenders && index < IndexKingDefenders+KingDefendersN:
		return &terms.KingDefenders[index-IndexKingDefenders]
	}

	panic(fmt.Errorf("fetch term: invalid index %d", index))
}

// index table: a flat, universal numbering of every tunable term, used by
// the tuner to walk the whole evaluator uniformly.
const (
	IndexMobility = 0
	MobilityN     = 9 + 14 + 15 + 28

	IndexPSQT = IndexMobility + MobilityN
	PSQTN     = piece.ColorN * (int(piece.TypeN) - 1) * square.N

	IndexIsolated        = IndexPSQT + PSQTN
	IndexDoubled         = IndexIsolated + 1
	IndexBackward        = IndexDoubled + 1
	IndexConnected       = IndexBackward + 1
	IndexCandidatePasser = IndexConnected + 1

	IndexPassedPawn = IndexCandidatePasser + 1
	PassedPawnN     = 8

	IndexBishopPair    = IndexPassedPawn + PassedPawnN
	IndexKnightOutpost = IndexBishopPair + 1
	IndexBishopOutpost = IndexKnightOutpost + 1

	IndexRookFullOpenFile = IndexBishopOutpost + 1
	IndexRookSemiOpenFile = IndexRookFullOpenFile + 1
	IndexRookOnSeventh    = IndexRookSemiOpenFile + 1

	IndexKingDefenders = IndexRookOnSeventh + 1
	KingDefendersN     = 12

	IndexSafetyStart = IndexKingDefenders + KingDefendersN

	IndexSafetyAttackValue   = IndexSafetyStart
	IndexSafetyWeakSquares   = IndexSafetyAttackValue + 1
	IndexSafetyNoEnemyQueens = IndexSafetyWeakSquares + 1

	IndexSafetySafeQueenCheck  = IndexSafetyNoEnemyQueens + 1
	IndexSafetySafeRookCheck   = IndexSafetySafeQueenCheck + 1
	IndexSafetySafeBishopCheck = IndexSafetySafeRookCheck + 1
	IndexSafetySafeKnightCheck = IndexSafetySafeBishopCheck + 1

	IndexSafetyAdjustment = IndexSafetySafeKnightCheck + 1

	IndexSafetyEnd = IndexSafetyAdjustment

	IndexThreatWeakPawn = IndexSafetyAdjustment + 1

	IndexThreatMinorAttackedByPawn  = IndexThreatWeakPawn + 1
	IndexThreatMinorAttackedByMajor = IndexThreatMinorAttackedByPawn + 1
	IndexThreatRookAttackedByLesser = IndexThreatMinorAttackedByMajor + 1
	IndexThreatQueenAttackedByOne   = IndexThreatRookAttackedByLesser + 1
	IndexThreatOverloadedPieces     = IndexThreatQueenAttackedByOne + 1
	IndexThreatByPawnPush           = IndexThreatOverloadedPieces + 1

	TermsN = IndexThreatByPawnPush + 1
)

// EvaluationTrace records, for a single evaluate_trace call, the
// non-interpolated evaluation, the linear king-safety scores (needed by
// the tuner's non-linear safety gradient), and per-term per-color
// contribution counts used to derive sparse tuning coefficients.
type EvaluationTrace struct {
	Evaluation Score
	Safety     [piece.ColorN]Score

	EvaluationTerms[[piece.ColorN]int]
}
