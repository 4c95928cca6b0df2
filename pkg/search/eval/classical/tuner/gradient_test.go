package tuner

import (
	"os"
	"testing"

	"mateline.dev/x/chess/pkg/search/eval/classical"
)

// a small, varied sample; see tuner_test.go's sampleFENS for the same
// literal content shared across both the exported and white-box tests.
const gradientSampleFENS = `rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 1/2-1/2
r1bqk1nr/pppp1ppp/2n5/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQ1RK1 b kq - 5 4 1-0
rnbq1rk1/ppp1bppp/4pn2/3p2B1/2PP4/2N2N2/PP2PPPP/R2QKB1R w KQ - 6 6 1-0
8/5k2/8/8/8/8/3K4/3R4 w - - 0 1 1-0
8/8/8/4k3/8/8/4K3/8 b - - 0 1 1/2-1/2
rn3rk1/pbp1qpp1/1p5p/3p4/3P4/3BPN2/PP3PPP/R2Q1RK1 b - - 3 12 0-1
`

// TestGradientStepReducesError checks that one batch-gradient-descent
// step, applied at a small learning rate, strictly reduces the
// evaluation MSE: the core correctness property of the whole tuning
// loop, independent of Tune's reporting/flush side effects.
func TestGradientStepReducesError(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "sample-*.fens")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if _, err := f.WriteString(gradientSampleFENS); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close temp file: %v", err)
	}

	dataset, err := LoadDataset(f.Name())
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}

	k := dataset.ComputeK(6)

	delta := NewVector()
	before := (&Tuner{Dataset: dataset, K: k}).completeEvaluationError(delta)

	gradient := NewVector()
	computeGradient(dataset, k, delta, gradient)

	const rate = 0.001
	n := float64(len(dataset))
	for i := 0; i < classical.TermsN; i++ {
		delta[i][MG] += (2 / n) * rate * gradient[i][MG]
		delta[i][EG] += (2 / n) * rate * gradient[i][EG]
	}

	after := (&Tuner{Dataset: dataset, K: k}).completeEvaluationError(delta)

	if after >= before {
		t.Errorf("gradient step did not reduce error: before=%v after=%v", before, after)
	}
}
