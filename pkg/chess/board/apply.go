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

package board

import (
	"mateline.dev/x/chess/pkg/chess/castling"
	"mateline.dev/x/chess/pkg/chess/move"
	"mateline.dev/x/chess/pkg/chess/piece"
	"mateline.dev/x/chess/pkg/chess/square"
	"mateline.dev/x/chess/pkg/zobrist"
)

// Undo holds the position state that Apply destroys and cannot be
// recovered from the move alone, so that Revert can restore it exactly.
type Undo struct {
	castling castling.Rights
	epFile   square.File
	hasEP    bool
	halfmove int
	key      zobrist.Key
}

// Apply makes m on the position and returns an Undo that Revert consumes
// to put the position back exactly as it was. Apply does not check
// legality: the caller must discard positions where IsInCheck(us) holds
// after the call.
func (p *Position) Apply(m move.Move) Undo {
	undo := Undo{
		castling: p.castling,
		epFile:   p.epFile,
		hasEP:    p.hasEP,
		halfmove: p.halfmove,
		key:      p.key,
	}

	us := p.turn
	from, to := m.From(), m.To()
	moving := m.Moving()

	if p.hasEP && enPassantCaptureIsLegal(p) {
		p.key ^= zobrist.EnPassant[p.epFile]
	}
	p.key ^= zobrist.Castling[p.castling]

	p.hasEP = false

	p.halfmove++
	if moving.Type() == piece.Pawn || m.IsCapture() {
		p.halfmove = 0
	}

	switch m.Type() {
	case move.EnPassant:
		capturedRank := square.Rank5
		if us == piece.Black {
			capturedRank = square.Rank4
		}
		capSq := square.New(to.File(), capturedRank)
		captured := p.squares[capSq]
		p.squares[capSq] = piece.NoPiece
		p.key ^= zobrist.PieceSquare[captured][capSq]
		p.pawnCount[captured.Color()]--

		p.squares[from] = piece.NoPiece
		p.squares[to] = moving
		p.key ^= zobrist.PieceSquare[moving][from]
		p.key ^= zobrist.PieceSquare[moving][to]

	case move.Castle:
		p.squares[from] = piece.NoPiece
		p.squares[to] = moving
		p.key ^= zobrist.PieceSquare[moving][from]
		p.key ^= zobrist.PieceSquare[moving][to]

		rank := square.Rank1
		if us == piece.Black {
			rank = square.Rank8
		}
		rook := piece.New(piece.Rook, us)
		var rookFrom, rookTo square.Square
		if to.File() == square.FileG {
			rookFrom = square.New(square.FileH, rank)
			rookTo = square.New(square.FileF, rank)
		} else {
			rookFrom = square.New(square.FileA, rank)
			rookTo = square.New(square.FileD, rank)
		}
		p.squares[rookFrom] = piece.NoPiece
		p.squares[rookTo] = rook
		p.key ^= zobrist.PieceSquare[rook][rookFrom]
		p.key ^= zobrist.PieceSquare[rook][rookTo]

		p.kingSquare[us] = to

	case move.Promotion, move.PromotionCapture:
		captured := m.Captured()
		if captured != piece.NoPiece {
			p.key ^= zobrist.PieceSquare[captured][to]
			if captured.Type() == piece.Pawn {
				p.pawnCount[captured.Color()]--
			}
		}

		promoted := piece.New(m.Promotion(), us)
		p.squares[from] = piece.NoPiece
		p.squares[to] = promoted
		p.key ^= zobrist.PieceSquare[moving][from]
		p.key ^= zobrist.PieceSquare[promoted][to]
		p.pawnCount[us]--

	default: // Quiet, Capture, DoublePush
		captured := m.Captured()
		if captured != piece.NoPiece {
			p.key ^= zobrist.PieceSquare[captured][to]
			if captured.Type() == piece.Pawn {
				p.pawnCount[captured.Color()]--
			}
		}

		p.squares[from] = piece.NoPiece
		p.squares[to] = moving
		p.key ^= zobrist.PieceSquare[moving][from]
		p.key ^= zobrist.PieceSquare[moving][to]

		if moving.Type() == piece.King {
			p.kingSquare[us] = to
		}

		if m.Type() == move.DoublePush {
			p.epFile = from.File()
			p.hasEP = true
		}
	}

	p.castling &^= castling.RightUpdates[from]
	p.castling &^= castling.RightUpdates[to]
	p.key ^= zobrist.Castling[p.castling]

	if us == piece.Black {
		p.fullmove++
	}

	p.turn = us.Other()
	p.key ^= zobrist.SideToMove

	if p.hasEP && enPassantCaptureIsLegal(p) {
		p.key ^= zobrist.EnPassant[p.epFile]
	}

	return undo
}

// Revert undoes m, restoring the position to the state captured by undo.
// It must be called with the same move that produced undo, in LIFO order.
func (p *Position) Revert(m move.Move, undo Undo) {
	us := p.turn.Other()
	from, to := m.From(), m.To()
	moving := m.Moving()

	switch m.Type() {
	case move.EnPassant:
		capturedRank := square.Rank5
		if us == piece.Black {
			capturedRank = square.Rank4
		}
		capSq := square.New(to.File(), capturedRank)

		p.squares[to] = piece.NoPiece
		p.squares[from] = moving
		p.squares[capSq] = m.Captured()
		p.pawnCount[m.Captured().Color()]++

	case move.Castle:
		p.squares[to] = piece.NoPiece
		p.squares[from] = moving

		rank := square.Rank1
		if us == piece.Black {
			rank = square.Rank8
		}
		rook := piece.New(piece.Rook, us)
		var rookFrom, rookTo square.Square
		if to.File() == square.FileG {
			rookFrom = square.New(square.FileH, rank)
			rookTo = square.New(square.FileF, rank)
		} else {
			rookFrom = square.New(square.FileA, rank)
			rookTo = square.New(square.FileD, rank)
		}
		p.squares[rookTo] = piece.NoPiece
		p.squares[rookFrom] = rook

		p.kingSquare[us] = from

	case move.Promotion, move.PromotionCapture:
		captured := m.Captured()
		p.squares[to] = captured
		p.squares[from] = moving
		p.pawnCount[us]++
		if captured != piece.NoPiece && captured.Type() == piece.Pawn {
			p.pawnCount[captured.Color()]++
		}

	default: // Quiet, Capture, DoublePush
		captured := m.Captured()
		p.squares[to] = captured
		p.squares[from] = moving
		if captured != piece.NoPiece && captured.Type() == piece.Pawn {
			p.pawnCount[captured.Color()]++
		}

		if moving.Type() == piece.King {
			p.kingSquare[us] = from
		}
	}

	if us == piece.Black && p.fullmove > 0 {
		p.fullmove--
	}

	p.turn = us
	p.castling = undo.castling
	p.epFile = undo.epFile
	p.hasEP = undo.hasEP
	p.halfmove = undo.halfmove
	p.key = undo.key
}
