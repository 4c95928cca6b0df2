// Copyright © 2022 Rak Laptudirm <rak@laptudirm.com>
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

// Package zobrist implements the process-wide Zobrist hashing tables used
// to give chess positions a deterministic 64-bit identity, as consumed by
// transposition and repetition detection.
package zobrist

import (
	"mateline.dev/x/chess/pkg/chess/castling"
	"mateline.dev/x/chess/pkg/chess/piece"
	"mateline.dev/x/chess/pkg/chess/square"
)

// Key is a Zobrist hash value.
type Key uint64

// PieceSquare holds one random key per (piece, square) combination.
// PawnKing shares its pawn and king entries with PieceSquare so that
// consumers needing only pawn/king structure hashing (e.g. a pawn hash
// table) can use a smaller, separately-invalidated key.
var (
	PieceSquare [piece.N][square.N]Key
	PawnKing    [piece.N][square.N]Key

	EnPassant [square.FileN]Key
	Castling  [castling.N]Key

	SideToMove Key
)

func init() {
	var rng PRNG
	rng.Seed(1070372) // seed used from Stockfish / Ethereal

	// piece-square numbers; NoPiece's row is left at zero since it is
	// never xored in (empty squares don't contribute to the hash)
	for _, p := range []piece.Piece{
		piece.WhitePawn, piece.WhiteKnight, piece.WhiteBishop,
		piece.WhiteRook, piece.WhiteQueen, piece.WhiteKing,
		piece.BlackPawn, piece.BlackKnight, piece.BlackBishop,
		piece.BlackRook, piece.BlackQueen, piece.BlackKing,
	} {
		for s := square.Square(0); s < square.N; s++ {
			PieceSquare[p][s] = Key(rng.Uint64())
		}
	}

	// pawn-king keys share values with the main piece-square table for
	// pawn and king entries
	for s := square.Square(0); s < square.N; s++ {
		PawnKing[piece.WhitePawn][s] = PieceSquare[piece.WhitePawn][s]
		PawnKing[piece.BlackPawn][s] = PieceSquare[piece.BlackPawn][s]
		PawnKing[piece.WhiteKing][s] = PieceSquare[piece.WhiteKing][s]
		PawnKing[piece.BlackKing][s] = PieceSquare[piece.BlackKing][s]
	}

	// en passant file numbers
	for f := square.FileA; f <= square.FileH; f++ {
		EnPassant[f] = Key(rng.Uint64())
	}

	// castling right numbers: four primitive rights, combined with xor
	// into a precomputed table so lookup for any mask is O(1)
	var primitive [4]Key
	primitive[0] = Key(rng.Uint64()) // castling.WhiteK
	primitive[1] = Key(rng.Uint64()) // castling.WhiteQ
	primitive[2] = Key(rng.Uint64()) // castling.BlackK
	primitive[3] = Key(rng.Uint64()) // castling.BlackQ

	for cr := castling.Rights(0); cr < castling.N; cr++ {
		if cr&castling.WhiteK != 0 {
			Castling[cr] ^= primitive[0]
		}
		if cr&castling.WhiteQ != 0 {
			Castling[cr] ^= primitive[1]
		}
		if cr&castling.BlackK != 0 {
			Castling[cr] ^= primitive[2]
		}
		if cr&castling.BlackQ != 0 {
			Castling[cr] ^= primitive[3]
		}
	}

	// black to move number
	SideToMove = Key(rng.Uint64())
}
