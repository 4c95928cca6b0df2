package classical_test

import (
	"testing"

	"mateline.dev/x/chess/pkg/search/eval"
	"mateline.dev/x/chess/pkg/search/eval/classical"
)

func FuzzScoreRecovery(f *testing.F) {
	f.Add(int32(1000), int32(-1000))
	f.Add(int32(2648), int32(7346))
	f.Add(int32(-3683), int32(-8374))

	f.Fuzz(func(t *testing.T, a, b int32) {
		mg, eg := eval.Eval(a), eval.Eval(b)
		s := classical.S(mg, eg)

		if s.MG() != mg || s.EG() != eg {
			t.Errorf("S(%d, %d) -> MG()=%d EG()=%d", mg, eg, s.MG(), s.EG())
		}
	})
}

func FuzzScoreAddition(f *testing.F) {
	f.Add(int32(1000), int32(-1000), int32(-1000), int32(1000))
	f.Add(int32(2648), int32(7346), int32(3683), int32(8374))

	f.Fuzz(func(t *testing.T, a, b, c, d int32) {
		mg1, eg1, mg2, eg2 := eval.Eval(a), eval.Eval(b), eval.Eval(c), eval.Eval(d)

		s1 := classical.S(mg1, eg1)
		s2 := classical.S(mg2, eg2)

		if sum := s1 + s2; sum != classical.S(mg1+mg2, eg1+eg2) {
			t.Errorf("S(%d,%d) + S(%d,%d) -> S(%d,%d), want S(%d,%d)",
				mg1, eg1, mg2, eg2, sum.MG(), sum.EG(), mg1+mg2, eg1+eg2)
		}
	})
}
