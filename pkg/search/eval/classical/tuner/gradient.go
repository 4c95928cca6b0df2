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
	"runtime"
	"sync"

	"mateline.dev/x/chess/pkg/search/eval/classical"
)

// computeGradient accumulates the MSE gradient of batch (a slice of
// Dataset) with respect to every term in delta, into out. The entries
// in a batch are independent of each other, so the batch is split
// across GOMAXPROCS worker goroutines, each accumulating into its own
// local vector; the partials are summed together once every worker has
// finished, the one point where the workers' results are combined
// under a single (implicit, since it happens after the WaitGroup)
// critical section.
func computeGradient(batch []Entry, k float64, delta Vector, out Vector) {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(batch) {
		workers = len(batch)
	}
	if workers < 1 {
		workers = 1
	}

	partials := make([]Vector, workers)
	var wg sync.WaitGroup

	chunk := (len(batch) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(batch) {
			end = len(batch)
		}
		if start >= end {
			continue
		}

		local := NewVector()
		partials[w] = local

		wg.Add(1)
		go func(entries []Entry, local Vector) {
			defer wg.Done()
			for i := range entries {
				updateSingleGradient(&entries[i], k, delta, local)
			}
		}(batch[start:end], local)
	}

	wg.Wait()

	for _, partial := range partials {
		if partial == nil {
			continue
		}
		for i := 0; i < classical.TermsN; i++ {
			out[i][MG] += partial[i][MG]
			out[i][EG] += partial[i][EG]
		}
	}
}

// updateSingleGradient adds entry's contribution to the MSE gradient
// into local, given the current tuning deltas.
func updateSingleGradient(entry *Entry, k float64, delta Vector, local Vector) {
	var data safetyGradientData
	e := entry.linearEvaluation(delta, &data)
	s := Sigmoid(k, e)
	err := (entry.result - s) * s * (1 - s)

	mgBase := err * entry.phaseFactors[MG]
	egBase := err * entry.phaseFactors[EG]

	wSafetyMGActive := data.wSafetyMG > 0
	bSafetyMGActive := data.bSafetyMG > 0
	wSafetyEGActive := data.wSafetyEG > 0
	bSafetyEGActive := data.bSafetyEG > 0

	for _, c := range entry.coeffs {
		deltaCoeff := float64(c.White - c.Black)

		switch c.Type {
		case Normal:
			local[c.Index][MG] += mgBase * deltaCoeff
			local[c.Index][EG] += egBase * deltaCoeff

		case Safety:
			var mgGrad float64
			if bSafetyMGActive {
				mgGrad += (data.bSafetyMG / 360) * float64(c.Black)
			}
			if wSafetyMGActive {
				mgGrad -= (data.wSafetyMG / 360) * float64(c.White)
			}

			var egGrad float64
			if bSafetyEGActive {
				egGrad += (1.0 / 8) * float64(c.Black)
			}
			if wSafetyEGActive {
				egGrad -= (1.0 / 8) * float64(c.White)
			}

			local[c.Index][MG] += mgBase * mgGrad
			local[c.Index][EG] += egBase * egGrad
		}
	}
}
