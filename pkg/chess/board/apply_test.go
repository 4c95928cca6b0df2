package board_test

import (
	"testing"

	"mateline.dev/x/chess/pkg/chess/board"
	"mateline.dev/x/chess/pkg/chess/move"
)

// TestApplyRevertRestoresPosition checks that applying and then
// reverting every pseudo-legal move from a position leaves the board
// byte-for-byte identical, including its Zobrist key: Revert must undo
// every field Apply touches, not just the piece placement.
func TestApplyRevertRestoresPosition(t *testing.T) {
	positions := []string{
		board.StartFEN,
		"r1bqk1nr/pppp1ppp/2n5/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQ1RK1 b kq - 5 4",
		"rnbqkbnr/ppp2ppp/8/2Ppp3/8/8/PP1PPPPP/RNBQKBNR w KQkq d6 0 3",
		"rn3rk1/pbp1qpp1/1p5p/3p4/3P4/3BPN2/PP3PPP/R2Q1RK1 b - - 3 12",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	}

	for _, test := range positions {
		t.Run(test, func(t *testing.T) {
			pos, err := board.ParseFEN(test)
			if err != nil {
				t.Fatalf("parse fen: %v", err)
			}

			before := pos.FEN()
			beforeKey := pos.Key()

			for _, m := range pos.GenAllMoves(nil) {
				undo := pos.Apply(m)
				pos.Revert(m, undo)

				if got := pos.FEN(); got != before {
					t.Fatalf("move %s: fen mismatch after revert\ngot  %s\nwant %s", m, got, before)
				}
				if got := pos.Key(); got != beforeKey {
					t.Fatalf("move %s: zobrist key mismatch after revert: got %d, want %d", m, got, beforeKey)
				}
			}
		})
	}
}

// findMove locates the generated move matching the given long algebraic
// notation (e.g. "e2e4"), failing the test if none is found.
func findMove(t *testing.T, pos *board.Position, uci string) move.Move {
	t.Helper()
	for _, m := range pos.GenAllMoves(nil) {
		if m.String() == uci {
			return m
		}
	}
	t.Fatalf("no legal move %s in position %s", uci, pos.FEN())
	return move.Null
}

// TestZobristRoundTripsOverOpeningSequence plays 1.e4 c5 2.Nf3 d6 from
// the initial position, reverts all four plies, and checks that the key
// returns to the initial-position key: the same invariant as
// TestApplyRevertRestoresPosition, but over a named multi-move sequence
// rather than single plies in isolation.
func TestZobristRoundTripsOverOpeningSequence(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("parse start fen: %v", err)
	}

	startKey := pos.Key()
	startFEN := pos.FEN()

	moves := []string{"e2e4", "c7c5", "g1f3", "d7d6"}

	type played struct {
		m    move.Move
		undo board.Undo
	}
	var history []played

	for _, uci := range moves {
		m := findMove(t, pos, uci)
		undo := pos.Apply(m)
		history = append(history, played{m, undo})
	}

	for i := len(history) - 1; i >= 0; i-- {
		pos.Revert(history[i].m, history[i].undo)
	}

	if got := pos.Key(); got != startKey {
		t.Fatalf("zobrist key after revert = %d, want %d", got, startKey)
	}
	if got := pos.FEN(); got != startFEN {
		t.Fatalf("fen after revert = %q, want %q", got, startFEN)
	}
}
