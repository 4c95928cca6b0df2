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

// Package move declares types and constants pertaining to chess moves.
package move

import (
	"mateline.dev/x/chess/pkg/chess/piece"
	"mateline.dev/x/chess/pkg/chess/square"
)

// Move represents a single chess move, packed into a scalar so that it is
// cheap to compare and copy.
//
// Format: MSB -> LSB
// [26..24 Type][23..20 Promotion][19..16 Captured][15..12 Moving] \
// [11..6 Target square][5..0 Source square]
type Move uint32

// Null represents the absence of a move. It is distinguishable from any
// legal move because no piece can move from a1 to a1.
const Null Move = 0

const (
	sourceOffset    = 0
	targetOffset    = 6
	movingOffset    = 12
	capturedOffset  = 16
	promotionOffset = 20
	typeOffset      = 24

	sixBitMask  = 0x3F
	fourBitMask = 0xF
	threeBitMask = 0x7
)

// Type describes the tactical category of a move.
type Type uint8

// constants representing move types
const (
	Quiet Type = iota
	Capture
	DoublePush
	EnPassant
	Castle
	Promotion
	PromotionCapture
)

// New packs the given fields into a Move.
func New(from, to square.Square, moving, captured piece.Piece, promotion piece.Type, typ Type) Move {
	m := Move(from) << sourceOffset
	m |= Move(to) << targetOffset
	m |= Move(moving) << movingOffset
	m |= Move(captured) << capturedOffset
	m |= Move(promotion) << promotionOffset
	m |= Move(typ) << typeOffset
	return m
}

// From returns the move's source square.
func (m Move) From() square.Square {
	return square.Square((m >> sourceOffset) & sixBitMask)
}

// To returns the move's target square.
func (m Move) To() square.Square {
	return square.Square((m >> targetOffset) & sixBitMask)
}

// Moving returns the piece being moved.
func (m Move) Moving() piece.Piece {
	return piece.Piece((m >> movingOffset) & fourBitMask)
}

// Captured returns the captured piece, or piece.NoPiece if none.
func (m Move) Captured() piece.Piece {
	return piece.Piece((m >> capturedOffset) & fourBitMask)
}

// Promotion returns the promotion piece type, or piece.NoType if none.
func (m Move) Promotion() piece.Type {
	return piece.Type((m >> promotionOffset) & fourBitMask)
}

// Type returns the move's tactical type tag.
func (m Move) Type() Type {
	return Type((m >> typeOffset) & threeBitMask)
}

// IsCapture reports whether the move captures a piece, including
// en-passant captures.
func (m Move) IsCapture() bool {
	switch m.Type() {
	case Capture, EnPassant, PromotionCapture:
		return true
	default:
		return false
	}
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	switch m.Type() {
	case Promotion, PromotionCapture:
		return true
	default:
		return false
	}
}

// IsQuiet reports whether the move is neither a capture nor a promotion;
// quiet moves are the only ones eligible to be recorded as killers.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// IsTactical reports whether the move should be searched by quiescence:
// captures and promotions.
func (m Move) IsTactical() bool {
	return m.IsCapture() || m.IsPromotion()
}

// String converts a move to its long algebraic notation, e.g. "e2e4",
// "e1g1" (castling), "d7d8q" (promotion), "0000" (null).
func (m Move) String() string {
	if m == Null {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += m.Promotion().String()
	}
	return s
}
