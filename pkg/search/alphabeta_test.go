package search_test

import (
	"testing"

	"mateline.dev/x/chess/pkg/chess/board"
	"mateline.dev/x/chess/pkg/search"
	"mateline.dev/x/chess/pkg/search/eval"
	searchtime "mateline.dev/x/chess/pkg/search/time"
)

func bestMove(t *testing.T, fen string, depth int) (string, eval.Eval) {
	t.Helper()

	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("parse fen %q: %v", fen, err)
	}

	ctx := search.NewContext(pos, search.Limits{Depth: depth, Manager: searchtime.InfiniteManager{}})
	m, score := ctx.GetBestMove()
	return m.String(), score
}

// TestMateInOne checks that the search finds a one-move mate and scores
// it as a forced win, not as an ordinary material advantage: Ra1-a8#
// covers the whole 8th rank, and g7/f7/h7 are blocked by the king's own
// pawns.
func TestMateInOne(t *testing.T) {
	move, score := bestMove(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", 3)

	if move != "a1a8" {
		t.Errorf("expected mating move a1a8, got %s", move)
	}
	if !eval.IsMateScore(score) || score <= 0 {
		t.Errorf("expected a winning mate score, got %s", score)
	}
}

// TestStalemateIsDraw checks that a position with no legal moves and no
// check is scored as a draw, not a loss: the black king on h8 has every
// neighbouring square covered by the white queen, but is not itself
// attacked.
func TestStalemateIsDraw(t *testing.T) {
	_, score := bestMove(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", 1)

	if score != eval.Draw {
		t.Errorf("expected stalemate score %s, got %s", eval.Draw, score)
	}
}

// TestCheckmateReturn checks that a position where the side to move is
// checkmated scores as a loss, not a draw: the black king on g8 is in
// check from the rook on a8 along the 8th rank, and f8/h8 are covered
// while f7/g7/h7 are blocked by its own pawns.
func TestCheckmateReturn(t *testing.T) {
	_, score := bestMove(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", 1)

	if !eval.IsMateScore(score) || score >= 0 {
		t.Errorf("expected a losing mate score, got %s", score)
	}
}

// TestForcedCaptureRecapture checks that the search sees through a
// simple hanging-piece exchange rather than stopping at the capturing
// move itself.
func TestForcedCaptureRecapture(t *testing.T) {
	// The white knight on e5 can take the d7 pawn, but d7 is guarded by
	// the c8 bishop, b8 knight, d8 queen and e8 king, so Nxd7 loses the
	// knight for a pawn after the recapture.
	move, _ := bestMove(t, "rnbqkb1r/ppppp1pp/5n2/4Np2/8/8/PPPPPPPP/RNBQKB1R w KQkq - 2 3", 5)

	if move == "" {
		t.Fatalf("search returned no move")
	}
	if move == "e5d7" {
		t.Errorf("search played the losing capture %s", move)
	}
}
