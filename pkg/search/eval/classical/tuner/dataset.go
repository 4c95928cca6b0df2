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
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"

	"mateline.dev/x/chess/pkg/chess/board"
	"mateline.dev/x/chess/pkg/chess/piece"
	"mateline.dev/x/chess/pkg/search"
	"mateline.dev/x/chess/pkg/search/eval/classical"
)

// Entry holds everything the tuner needs to score and re-score one
// training position cheaply: the sparse nonzero coefficients, the
// phase-interpolation factors, the linear (non-safety) and raw
// king-safety evaluations, and the game's outcome label.
type Entry struct {
	coeffs       []Coefficient
	phaseFactors [2]float64

	safety [piece.ColorN]classical.Score

	result float64

	eval  classical.Score
	phase float64
}

// Dataset is the full in-memory training set loaded from a FENS file.
type Dataset []Entry

// LoadDataset reads a FENS file, one "<FEN fields> <result_token>" entry
// per line, resolves each position to a quiet one (so the static
// evaluator never has to judge mid-exchange noise), and extracts its
// sparse coefficient trace.
func LoadDataset(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var a arena
	dataset := make(Dataset, 0, 1<<16)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 256), 256)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		entry, err := parseEntry(&a, text)
		if err != nil {
			return nil, fmt.Errorf("load dataset: line %d: %w", line, err)
		}
		dataset = append(dataset, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return dataset, nil
}

func parseEntry(a *arena, line string) (Entry, error) {
	i := strings.LastIndexByte(line, ' ')
	if i < 0 {
		return Entry{}, fmt.Errorf("missing result token")
	}
	fenString, token := line[:i], line[i+1:]

	var result float64
	switch token {
	case "1-0":
		result = 1.0
	case "0-1":
		result = 0.0
	case "1/2-1/2", "1/2":
		result = 0.5
	default:
		return Entry{}, fmt.Errorf("unrecognized result token %q", token)
	}

	pos, err := board.ParseFEN(fenString)
	if err != nil {
		return Entry{}, err
	}

	search.ResolveQuiet(pos)

	_, trace := classical.EvaluateTrace(pos)

	gamePhase := gamePhaseOf(pos)
	phase256 := gamePhase * 256 / classical.MaxPhase

	// trace.Evaluation already holds the nonlinear king-safety term;
	// take it out so that eval is the linear part only.
	safety := classical.NonLinearSafety(trace.Safety[piece.Black]) - classical.NonLinearSafety(trace.Safety[piece.White])

	entry := Entry{
		coeffs: getCoefficients(a, trace),
		result: result,
		eval:   trace.Evaluation - safety,
		phase:  float64(phase256) / 256.0,
	}
	entry.phaseFactors[MG] = entry.phase
	entry.phaseFactors[EG] = 1 - entry.phase
	entry.safety[piece.White] = trace.Safety[piece.White]
	entry.safety[piece.Black] = trace.Safety[piece.Black]

	return entry, nil
}

// gamePhaseOf recomputes the same remaining-material phase value the
// live evaluator derives internally (queens 4, rooks 2, minors 1,
// capped at classical.MaxPhase), since classical.EvaluateTrace does not
// expose it directly.
func gamePhaseOf(pos *board.Position) int {
	phase := 0
	for _, c := range [...]piece.Color{piece.White, piece.Black} {
		for _, s := range pos.PieceSquares(c) {
			switch pos.PieceAt(s).Type() {
			case piece.Knight, piece.Bishop:
				phase++
			case piece.Rook:
				phase += 2
			case piece.Queen:
				phase += 4
			}
		}
	}
	if phase > classical.MaxPhase {
		phase = classical.MaxPhase
	}
	return phase
}

// static returns the entry's raw (untuned) tapered evaluation in
// centipawns, white-relative: the mg/eg trace pair interpolated by the
// entry's phase factors, with no tuning delta applied. The nonlinear
// king-safety term is added back onto the linear eval.
func (e *Entry) static() float64 {
	s := e.eval + classical.NonLinearSafety(e.safety[piece.Black]) - classical.NonLinearSafety(e.safety[piece.White])
	return float64(s.MG())*e.phaseFactors[MG] + float64(s.EG())*e.phaseFactors[EG]
}

// Sigmoid maps a centipawn evaluation to a predicted win probability,
// scaled by K. Base 10, not e, per the tuner's error model.
func Sigmoid(k, score float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, -k*score/400.0))
}

// ComputeK finds the K that minimizes ComputeE over the dataset's raw
// (untuned) evaluations, by iterative window refinement: start with a
// coarse delta over [-10, 10], keep the best K found, then shrink the
// window around it and repeat at ten times the resolution, iterations
// times in all.
func (d Dataset) ComputeK(iterations int) float64 {
	start, end, delta := -10.0, 10.0, 1.0
	best := d.ComputeE(start)
	bestK := start

	for iter := 0; iter < iterations; iter++ {
		for k := start; k <= end; k += delta {
			e := d.ComputeE(k)
			if e < best {
				best = e
				bestK = k
			}
		}
		start, end = bestK-delta, bestK+delta
		delta /= 10
	}

	return bestK
}

// ComputeE computes the mean squared sigmoid error of the dataset's raw
// (untuned) static evaluation against game outcomes, at a given K.
func (d Dataset) ComputeE(k float64) float64 {
	var total float64
	for i := range d {
		total += math.Pow(d[i].result-Sigmoid(k, d[i].static()), 2)
	}
	return total / float64(len(d))
}
