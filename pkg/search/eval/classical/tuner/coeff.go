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

// Package tuner implements a Texel-style batch gradient descent tuner
// for the classical evaluator's term table, fitting parameters against
// labeled game outcomes rather than hand-picked values.
package tuner

import (
	"mateline.dev/x/chess/internal/util"
	"mateline.dev/x/chess/pkg/chess/piece"
	"mateline.dev/x/chess/pkg/search/eval/classical"
)

// Coefficient records one nonzero evaluation term's per-color
// contribution count for a single training position, the unit the
// tuner's gradient computation consumes.
type Coefficient struct {
	Index        int16
	Type         TermType
	White, Black int8
}

// TermType distinguishes king-safety terms, which the evaluator folds
// through NonLinearSafety before interpolation, from every other term,
// which contributes linearly.
type TermType int8

const (
	Normal TermType = iota
	Safety

	TermTypeN
)

// getCoefficients extracts the nonzero terms from trace into a slice
// carved out of a, skipping every term whose white and black
// contribution cancel out (the overwhelming majority of a sparse
// 880-term table, for any one position).
func getCoefficients(a *arena, trace *classical.EvaluationTrace) []Coefficient {
	n := 0
	for i := 0; i < classical.TermsN; i++ {
		if isNonzero(i, trace) {
			n++
		}
	}

	coeffs := a.reserve(n)
	j := 0
	for i := 0; i < classical.TermsN; i++ {
		if !isNonzero(i, trace) {
			continue
		}

		termTrace := *trace.FetchTerm(i)
		coeffs[j] = Coefficient{
			Index: int16(i),
			Type: util.Ternary(
				i >= classical.IndexSafetyStart && i <= classical.IndexSafetyEnd,
				Safety, Normal,
			),
			White: int8(termTrace[piece.White]),
			Black: int8(termTrace[piece.Black]),
		}
		j++
	}

	return coeffs
}

func isNonzero(i int, trace *classical.EvaluationTrace) bool {
	t := *trace.FetchTerm(i)
	if i >= classical.IndexSafetyStart && i <= classical.IndexSafetyEnd {
		return t[piece.White] != 0 || t[piece.Black] != 0
	}
	return t[piece.White] != t[piece.Black]
}
