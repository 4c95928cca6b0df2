package tuner_test

import (
	"os"
	"testing"

	"mateline.dev/x/chess/pkg/search/eval/classical/tuner"
)

// sampleFENS is a small, varied set of quiet positions with outcomes,
// enough to exercise loading, K-fitting, and a handful of SGD epochs
// without needing a real multi-million-position dataset.
const sampleFENS = `rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 1/2-1/2
r1bqk1nr/pppp1ppp/2n5/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQ1RK1 b kq - 5 4 1-0
rnbq1rk1/ppp1bppp/4pn2/3p2B1/2PP4/2N2N2/PP2PPPP/R2QKB1R w KQ - 6 6 1-0
8/5k2/8/8/8/8/3K4/3R4 w - - 0 1 1-0
8/8/8/4k3/8/8/4K3/8 b - - 0 1 1/2-1/2
rn3rk1/pbp1qpp1/1p5p/3p4/3P4/3BPN2/PP3PPP/R2Q1RK1 b - - 3 12 0-1
`

func loadSample(t *testing.T) tuner.Dataset {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "sample-*.fens")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if _, err := f.WriteString(sampleFENS); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close temp file: %v", err)
	}

	dataset, err := tuner.LoadDataset(f.Name())
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	return dataset
}

func TestLoadDatasetParsesEveryLine(t *testing.T) {
	dataset := loadSample(t)
	if len(dataset) != 6 {
		t.Fatalf("len(dataset) = %d, want 6", len(dataset))
	}
}

func TestComputeKMinimizesError(t *testing.T) {
	dataset := loadSample(t)

	k := dataset.ComputeK(6)
	atK := dataset.ComputeE(k)

	for _, other := range []float64{k - 1, k + 1, 0} {
		if e := dataset.ComputeE(other); e < atK-1e-9 {
			t.Errorf("ComputeE(%v) = %v is lower than ComputeE(bestK=%v) = %v", other, e, k, atK)
		}
	}
}

