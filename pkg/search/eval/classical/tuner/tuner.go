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
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/schollz/progressbar/v3"
	"mateline.dev/x/chess/pkg/search/eval/classical"
)

// Config holds the tuner's compile-time-style constants: unlike the
// evaluator's term table, these govern the optimizer itself and aren't
// meant to be tuned.
type Config struct {
	KPrecision int // ComputeK refinement iterations

	BatchSize int
	Reporting int // iterations between MSE checks / parameter dumps

	LearningRate     float64
	LearningDropRate float64

	// Seed makes the per-epoch shuffle reproducible: the same Config
	// and Dataset always produce the same sequence of batches.
	Seed int64
}

// DefaultConfig mirrors the scale a from-scratch tuning run on a few
// hundred thousand positions typically uses.
var DefaultConfig = Config{
	KPrecision:       10,
	BatchSize:        16384,
	Reporting:        8,
	LearningRate:     1.0,
	LearningDropRate: 2.0,
	Seed:             1070372,
}

// Tuner drives batch gradient descent over a Dataset to fit a Vector of
// (mg, eg) deltas against classical.Terms' seed values.
type Tuner struct {
	Config  Config
	Dataset Dataset

	K     float64
	Delta Vector

	rng *rand.Rand
}

// NewTuner prepares a tuner for dataset with a zero delta. The sigmoid
// scale K is left unset; Tune computes it when it starts.
func NewTuner(dataset Dataset, cfg Config) *Tuner {
	return &Tuner{
		Config:  cfg,
		Dataset: dataset,
		Delta:   NewVector(),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Tune runs the training loop until epochs completes, shuffling the
// dataset each epoch, updating Delta by plain batch SGD with a
// regression-triggered learning-rate drop, and periodically reporting
// progress. It returns once epochs iterations have been made; the
// caller is expected to call it again (or loop externally) for
// "repeat forever until external signal" behavior, since a fixed
// epoch count is friendlier to a library API than a literal infinite
// loop.
func (t *Tuner) Tune(epochs int) {
	fmt.Println("tuner: computing optimal K")
	t.K = t.Dataset.ComputeK(t.Config.KPrecision)
	fmt.Printf("tuner: K = %v\n", t.K)

	rate := t.Config.LearningRate
	best := t.completeEvaluationError(t.Delta)
	fmt.Printf("tuner: initial MSE = %v\n", best)

	names := []string{"0"}
	points := []opts.LineData{{Value: best}}

	order := make([]int, len(t.Dataset))
	for i := range order {
		order[i] = i
	}

	batches := (len(t.Dataset) + t.Config.BatchSize - 1) / t.Config.BatchSize

	for epoch := 1; epoch <= epochs; epoch++ {
		t.shuffle(order)

		bar := progressbar.NewOptions(batches,
			progressbar.OptionSetDescription(fmt.Sprintf("epoch %d/%d", epoch, epochs)),
			progressbar.OptionSetElapsedTime(true),
			progressbar.OptionShowCount(),
		)

		gradient := NewVector()
		for b := 0; b < batches; b++ {
			start := b * t.Config.BatchSize
			end := start + t.Config.BatchSize
			if end > len(order) {
				end = len(order)
			}

			batch := t.gather(order[start:end])

			for i := range gradient {
				gradient[i][MG], gradient[i][EG] = 0, 0
			}
			computeGradient(batch, t.K, t.Delta, gradient)

			n := float64(end - start)
			for i := 0; i < classical.TermsN; i++ {
				t.Delta[i][MG] += (2 / n) * rate * gradient[i][MG]
				t.Delta[i][EG] += (2 / n) * rate * gradient[i][EG]
			}

			_ = bar.Add(1)
		}
		_ = bar.Close()

		if epoch%t.Config.Reporting == 0 || epoch == epochs {
			mse := t.completeEvaluationError(t.Delta)
			fmt.Printf("tuner: epoch %d MSE = %v\n", epoch, mse)

			if mse > best {
				rate /= t.Config.LearningDropRate
				fmt.Printf("tuner: MSE regressed, learning rate now %v\n", rate)
			} else {
				best = mse
			}

			names = append(names, strconv.Itoa(epoch))
			points = append(points, opts.LineData{Value: mse})

			t.flush(names, points)
		}
	}

	t.flush(names, points)
}

// shuffle performs a seeded Fisher-Yates shuffle of order in place, so
// a tuning run is exactly reproducible given Config.Seed.
func (t *Tuner) shuffle(order []int) {
	for i := len(order) - 1; i > 0; i-- {
		j := t.rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
}

// gather materializes a batch by index; entries themselves aren't
// copied (Entry's coefficient slice points into the arena), only the
// small Entry struct is.
func (t *Tuner) gather(indices []int) []Entry {
	out := make([]Entry, len(indices))
	for i, idx := range indices {
		out[i] = t.Dataset[idx]
	}
	return out
}

// completeEvaluationError is the full-dataset MSE under the current
// delta, with king safety's non-linear response included. Embarrassingly
// parallel: partitioned by entry index across GOMAXPROCS workers.
func (t *Tuner) completeEvaluationError(delta Vector) float64 {
	return t.reduceSquaredError(delta, true)
}

// completeLinearError is the same reduction but skips king safety's
// non-linear response (treating it as if it contributed linearly),
// used only as a diagnostic of how much of the fit the non-linearity is
// responsible for.
func (t *Tuner) completeLinearError(delta Vector) float64 {
	return t.reduceSquaredError(delta, false)
}

func (t *Tuner) reduceSquaredError(delta Vector, nonLinearSafety bool) float64 {
	n := len(t.Dataset)
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	partials := make([]float64, workers)
	var wg sync.WaitGroup

	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			var sum float64
			var data safetyGradientData
			for i := start; i < end; i++ {
				entry := &t.Dataset[i]
				var e float64
				if nonLinearSafety {
					e = entry.linearEvaluation(delta, &data)
				} else {
					e = entry.linearEvaluationUnclamped(delta)
				}
				sum += math.Pow(entry.result-Sigmoid(t.K, e), 2)
			}
			partials[w] = sum
		}(w, start, end)
	}

	wg.Wait()

	var total float64
	for _, p := range partials {
		total += p
	}
	return total / float64(n)
}

// flush writes the current error curve and tuned parameters to disk /
// stdout, per the "never lose results" cancellation contract: every
// reporting tick's output stands on its own.
func (t *Tuner) flush(names []string, points []opts.LineData) {
	plot := charts.NewLine()
	plot.SetXAxis(names).AddSeries("MSE", points)

	if f, err := os.Create("tuner-error.html"); err == nil {
		_ = plot.Render(f)
		_ = f.Close()
	}

	fmt.Println(t.Delta.FormatParameters())
}
