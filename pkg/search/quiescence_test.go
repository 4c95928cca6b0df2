package search_test

import (
	"testing"

	"mateline.dev/x/chess/pkg/chess/board"
	"mateline.dev/x/chess/pkg/search"
)

// TestResolveQuietPlaysWinningCapture checks that ResolveQuiet walks a
// position forward along a favorable capture sequence rather than
// leaving a hanging piece on the board.
func TestResolveQuietPlaysWinningCapture(t *testing.T) {
	// White knight on e4 hangs to the f6 knight and is undefended.
	pos, err := board.ParseFEN("rnbqkb1r/pppp1ppp/5n2/8/4N3/8/PPPPPPPP/RNBQKB1R b KQkq - 4 4")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}

	before := pos.FEN()
	search.ResolveQuiet(pos)

	if pos.FEN() == before {
		t.Fatalf("ResolveQuiet left the position unchanged; expected it to capture the hanging knight")
	}
}

// TestResolveQuietDeclinesLosingCapture checks that quiescence does not
// stop at a capture that looks good on the first ply but loses material
// to the recapture: white's only capture, Qxd5, wins a knight but hangs
// the queen to either guarding pawn, so the position must stand pat.
func TestResolveQuietDeclinesLosingCapture(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/2p1p3/3n4/8/8/8/3Q2K1 w - - 0 1")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}

	before := pos.FEN()
	search.ResolveQuiet(pos)

	if got := pos.FEN(); got != before {
		t.Errorf("ResolveQuiet played a losing capture: got %s, want unchanged %s", got, before)
	}
}

// TestResolveQuietIsIdempotentOnQuietPositions checks that ResolveQuiet
// leaves an already-quiet position untouched.
func TestResolveQuietIsIdempotentOnQuietPositions(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}

	before := pos.FEN()
	search.ResolveQuiet(pos)

	if got := pos.FEN(); got != before {
		t.Errorf("ResolveQuiet modified a quiet position: got %s, want %s", got, before)
	}
}
