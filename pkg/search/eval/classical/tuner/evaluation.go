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

import "mateline.dev/x/chess/pkg/chess/piece"

// safetyGradientData carries the linear (pre-nonlinearity) king-safety
// sums computed while evaluating an entry, so updateSingleGradient can
// differentiate NonLinearSafety's piecewise formula without recomputing
// the whole position.
type safetyGradientData struct {
	wSafetyMG, wSafetyEG float64
	bSafetyMG, bSafetyEG float64
}

// linearEvaluation recomputes entry's static evaluation as if delta had
// already been added to classical.Terms, without touching the actual
// live term table: it starts from the entry's stored baseline (eval,
// safety) and the entry's sparse coefficients, and folds in only the
// incremental contribution of delta. This is what makes a tuning epoch
// cheap: re-evaluating the whole board from scratch for every candidate
// delta would cost a full position scan per entry per batch.
func (entry *Entry) linearEvaluation(delta Vector, data *safetyGradientData) float64 {
	var normalDeltaW, normalDeltaB [2]float64
	var safetyDeltaW, safetyDeltaB [2]float64

	for _, c := range entry.coeffs {
		d := delta[c.Index]
		switch c.Type {
		case Normal:
			normalDeltaW[MG] += float64(c.White) * d[MG]
			normalDeltaW[EG] += float64(c.White) * d[EG]
			normalDeltaB[MG] += float64(c.Black) * d[MG]
			normalDeltaB[EG] += float64(c.Black) * d[EG]
		case Safety:
			safetyDeltaW[MG] += float64(c.White) * d[MG]
			safetyDeltaW[EG] += float64(c.White) * d[EG]
			safetyDeltaB[MG] += float64(c.Black) * d[MG]
			safetyDeltaB[EG] += float64(c.Black) * d[EG]
		}
	}

	normalMG := float64(entry.eval.MG()) + normalDeltaW[MG] - normalDeltaB[MG]
	normalEG := float64(entry.eval.EG()) + normalDeltaW[EG] - normalDeltaB[EG]

	wSafetyMG := float64(entry.safety[piece.White].MG()) + safetyDeltaW[MG]
	wSafetyEG := float64(entry.safety[piece.White].EG()) + safetyDeltaW[EG]
	bSafetyMG := float64(entry.safety[piece.Black].MG()) + safetyDeltaB[MG]
	bSafetyEG := float64(entry.safety[piece.Black].EG()) + safetyDeltaB[EG]

	// mirrors classical.NonLinearSafety: quadratic mg response, damped
	// linear eg response, clamped to non-negative danger.
	nonLinear := func(mg, eg float64) (float64, float64) {
		if mg < 0 {
			mg = 0
		}
		if eg < 0 {
			eg = 0
		}
		return mg * mg / 720, eg / 8
	}

	wSafetyMGNL, wSafetyEGNL := nonLinear(wSafetyMG, wSafetyEG)
	bSafetyMGNL, bSafetyEGNL := nonLinear(bSafetyMG, bSafetyEG)

	safetyMG := bSafetyMGNL - wSafetyMGNL
	safetyEG := bSafetyEGNL - wSafetyEGNL

	data.wSafetyMG, data.wSafetyEG = wSafetyMG, wSafetyEG
	data.bSafetyMG, data.bSafetyEG = bSafetyMG, bSafetyEG

	mg := normalMG + safetyMG
	eg := normalEG + safetyEG

	return mg*entry.phaseFactors[MG] + eg*entry.phaseFactors[EG]
}

// linearEvaluationUnclamped is the same computation but treats king
// safety as contributing linearly (skipping NonLinearSafety's clamp and
// square), used only by completeLinearError as a diagnostic of how much
// of the fit the non-linearity accounts for.
func (entry *Entry) linearEvaluationUnclamped(delta Vector) float64 {
	var normalDeltaW, normalDeltaB [2]float64
	var safetyDeltaW, safetyDeltaB [2]float64

	for _, c := range entry.coeffs {
		d := delta[c.Index]
		switch c.Type {
		case Normal:
			normalDeltaW[MG] += float64(c.White) * d[MG]
			normalDeltaW[EG] += float64(c.White) * d[EG]
			normalDeltaB[MG] += float64(c.Black) * d[MG]
			normalDeltaB[EG] += float64(c.Black) * d[EG]
		case Safety:
			safetyDeltaW[MG] += float64(c.White) * d[MG]
			safetyDeltaW[EG] += float64(c.White) * d[EG]
			safetyDeltaB[MG] += float64(c.Black) * d[MG]
			safetyDeltaB[EG] += float64(c.Black) * d[EG]
		}
	}

	normalMG := float64(entry.eval.MG()) + normalDeltaW[MG] - normalDeltaB[MG]
	normalEG := float64(entry.eval.EG()) + normalDeltaW[EG] - normalDeltaB[EG]

	wSafetyMG := float64(entry.safety[piece.White].MG()) + safetyDeltaW[MG]
	wSafetyEG := float64(entry.safety[piece.White].EG()) + safetyDeltaW[EG]
	bSafetyMG := float64(entry.safety[piece.Black].MG()) + safetyDeltaB[MG]
	bSafetyEG := float64(entry.safety[piece.Black].EG()) + safetyDeltaB[EG]

	mg := normalMG + (bSafetyMG - wSafetyMG)
	eg := normalEG + (bSafetyEG - wSafetyEG)

	return mg*entry.phaseFactors[MG] + eg*entry.phaseFactors[EG]
}
