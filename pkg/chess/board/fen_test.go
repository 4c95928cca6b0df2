package board_test

import (
	"testing"

	"mateline.dev/x/chess/pkg/chess/board"
)

func TestFENRoundTrip(t *testing.T) {
	tests := []string{
		board.StartFEN,
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
		"r1bqk1nr/pppp1ppp/2n5/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQ1RK1 b kq - 5 4",
		"rnbq1rk1/ppp1bppp/4pn2/3p2B1/2PP4/2N2N2/PP2PPPP/R2QKB1R w KQ - 6 6",
		"rnbqkbnr/ppp2ppp/8/2Ppp3/8/8/PP1PPPPP/RNBQKBNR w KQkq d6 0 3",
		"rn3rk1/pbp1qpp1/1p5p/3p4/3P4/3BPN2/PP3PPP/R2Q1RK1 b - - 3 12",
		"8/8/8/4k3/8/8/4K3/8 w - - 0 1",
	}

	for _, test := range tests {
		t.Run(test, func(t *testing.T) {
			pos, err := board.ParseFEN(test)
			if err != nil {
				t.Fatalf("parse fen: %v", err)
			}
			if got := pos.FEN(); got != test {
				t.Errorf("fen round trip: got %q, want %q", got, test)
			}
		})
	}
}

func TestParseFENRejectsGarbage(t *testing.T) {
	tests := []string{
		"",
		"not a fen",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
	}

	for _, test := range tests {
		if _, err := board.ParseFEN(test); err == nil {
			t.Errorf("ParseFEN(%q): expected error, got nil", test)
		}
	}
}
