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

package tuner

import (
	"fmt"
	"math"
	"strings"

	"mateline.dev/x/chess/pkg/search/eval"
	"mateline.dev/x/chess/pkg/search/eval/classical"
)

// Vector is a dense NTERMS x 2 array of tuning deltas, one (mg, eg)
// pair per term, indexed the same way as classical.EvaluationTerms'
// flat term numbering.
type Vector [][2]float64

// phase indices into a Vector entry.
const (
	MG = 0
	EG = 1
)

// NewVector allocates a zeroed Vector sized for the full term table.
func NewVector() Vector {
	return make(Vector, classical.TermsN)
}

// Apply adds the vector's deltas onto a copy of classical.Terms and
// returns the result, rounding each phase to the nearest integer
// centipawn since the live evaluator's Score is integral.
func (v Vector) Apply() classical.EvaluationTerms[classical.Score] {
	terms := classical.Terms
	for pt := range terms.Mobility {
		// the struct copy shares the mobility slices' backing arrays
		terms.Mobility[pt] = append([]classical.Score(nil), terms.Mobility[pt]...)
	}
	for i := 0; i < classical.TermsN; i++ {
		term := terms.FetchTerm(i)
		*term += classical.S(
			eval.Eval(math.Round(v[i][MG])),
			eval.Eval(math.Round(v[i][EG])),
		)
	}
	return terms
}

// FormatParameters renders the tuned term table as paste-compilable Go
// source, one assignment per named term, suitable for
// pasting directly back into classical.go's init().
func (v Vector) FormatParameters() string {
	terms := v.Apply()

	var b strings.Builder
	writeS := func(name string, s classical.Score) {
		fmt.Fprintf(&b, "Terms.%s = S(%d, %d)\n", name, s.MG(), s.EG())
	}
	writeArray := func(name string, arr []classical.Score) {
		fmt.Fprintf(&b, "Terms.%s = [%d]Score{", name, len(arr))
		for i, s := range arr {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "S(%d, %d)", s.MG(), s.EG())
		}
		b.WriteString("}\n")
	}

	writeS("Isolated", terms.Isolated)
	writeS("Doubled", terms.Doubled)
	writeS("Backward", terms.Backward)
	writeS("Connected", terms.Connected)
	writeS("CandidatePasser", terms.CandidatePasser)
	writeArray("PassedPawn", terms.PassedPawn[:])

	writeS("BishopPair", terms.BishopPair)
	writeS("KnightOutpost", terms.KnightOutpost)
	writeS("BishopOutpost", terms.BishopOutpost)

	writeS("RookFullOpenFile", terms.RookFullOpenFile)
	writeS("RookSemiOpenFile", terms.RookSemiOpenFile)
	writeS("RookOnSeventh", terms.RookOnSeventh)

	writeArray("KingDefenders", terms.KingDefenders[:])

	writeS("SafetyAttackValue", terms.SafetyAttackValue)
	writeS("SafetyWeakSquares", terms.SafetyWeakSquares)
	writeS("SafetyNoEnemyQueens", terms.SafetyNoEnemyQueens)
	writeS("SafetySafeQueenCheck", terms.SafetySafeQueenCheck)
	writeS("SafetySafeRookCheck", terms.SafetySafeRookCheck)
	writeS("SafetySafeBishopCheck", terms.SafetySafeBishopCheck)
	writeS("SafetySafeKnightCheck", terms.SafetySafeKnightCheck)
	writeS("SafetyAdjustment", terms.SafetyAdjustment)

	writeS("ThreatWeakPawn", terms.ThreatWeakPawn)
	writeS("ThreatMinorAttackedByPawn", terms.ThreatMinorAttackedByPawn)
	writeS("ThreatMinorAttackedByMajor", terms.ThreatMinorAttackedByMajor)
	writeS("ThreatRookAttackedByLesser", terms.ThreatRookAttackedByLesser)
	writeS("ThreatQueenAttackedByOne", terms.ThreatQueenAttackedByOne)
	writeS("ThreatOverloadedPieces", terms.ThreatOverloadedPieces)
	writeS("ThreatByPawnPush", terms.ThreatByPawnPush)

	fmt.Fprintf(&b, "// mobility and piece-square tables omitted: %d entries, regenerate from FormatParameters output if tuned.\n",
		classical.MobilityN+classical.PSQTN)

	return b.String()
}
