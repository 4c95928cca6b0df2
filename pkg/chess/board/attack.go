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
	"mateline.dev/x/chess/pkg/chess/piece"
	"mateline.dev/x/chess/pkg/chess/square"
)

var knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
var kingDeltas = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func inBoard(f, r int) bool {
	return f >= 0 && f < 8 && r >= 0 && r < 8
}

func at(f, r int) square.Square {
	return square.New(square.File(f), square.Rank(r))
}

// IsSquareAttacked reports whether the given square is attacked by a
// piece of the given color.
func (p *Position) IsSquareAttacked(s square.Square, by piece.Color) bool {
	f, r := int(s.File()), int(s.Rank())

	// pawn attacks: a square is attacked by a pawn of color `by` if that
	// pawn sits one diagonal step "behind" the square from its own
	// perspective
	pawnRank := r - 1
	if by == piece.Black {
		pawnRank = r + 1
	}
	for _, df := range [2]int{-1, 1} {
		pf := f + df
		if inBoard(pf, pawnRank) {
			if pc := p.squares[at(pf, pawnRank)]; pc.Type() == piece.Pawn && pc.Color() == by {
				return true
			}
		}
	}

	for _, d := range knightDeltas {
		nf, nr := f+d[0], r+d[1]
		if inBoard(nf, nr) {
			if pc := p.squares[at(nf, nr)]; pc.Type() == piece.Knight && pc.Color() == by {
				return true
			}
		}
	}

	for _, d := range kingDeltas {
		nf, nr := f+d[0], r+d[1]
		if inBoard(nf, nr) {
			if pc := p.squares[at(nf, nr)]; pc.Type() == piece.King && pc.Color() == by {
				return true
			}
		}
	}

	for _, d := range bishopDirs {
		if p.rayAttacked(f, r, d[0], d[1], by, piece.Bishop, piece.Queen) {
			return true
		}
	}

	for _, d := range rookDirs {
		if p.rayAttacked(f, r, d[0], d[1], by, piece.Rook, piece.Queen) {
			return true
		}
	}

	return false
}

func (p *Position) rayAttacked(f, r, df, dr int, by piece.Color, types ...piece.Type) bool {
	f, r = f+df, r+dr
	for inBoard(f, r) {
		pc := p.squares[at(f, r)]
		if pc != piece.NoPiece {
			if pc.Color() == by {
				for _, t := range types {
					if pc.Type() == t {
						return true
					}
				}
			}
			return false
		}
		f, r = f+df, r+dr
	}
	return false
}

// Mobility returns the squares the non-pawn, non-king piece standing on
// s can move to, pseudo-legally: sliding pieces stop at the first
// blocker and squares occupied by the piece's own side are excluded.
// Used by the evaluator for mobility and king-safety terms, not by the
// move generator itself.
func (p *Position) Mobility(s square.Square) []square.Square {
	pc := p.squares[s]
	f, r := int(s.File()), int(s.Rank())
	us := pc.Color()

	var squares []square.Square
	step := func(nf, nr int) bool {
		if !inBoard(nf, nr) {
			return false
		}
		sq := at(nf, nr)
		target := p.squares[sq]
		if target != piece.NoPiece && target.Color() == us {
			return false
		}
		squares = append(squares, sq)
		return target == piece.NoPiece
	}

	switch pc.Type() {
	case piece.Knight:
		for _, d := range knightDeltas {
			step(f+d[0], r+d[1])
		}
	case piece.King:
		for _, d := range kingDeltas {
			step(f+d[0], r+d[1])
		}
	case piece.Bishop, piece.Rook, piece.Queen:
		var dirs [][2]int
		if pc.Type() != piece.Rook {
			dirs = append(dirs, bishopDirs[:]...)
		}
		if pc.Type() != piece.Bishop {
			dirs = append(dirs, rookDirs[:]...)
		}
		for _, d := range dirs {
			nf, nr := f+d[0], r+d[1]
			for step(nf, nr) {
				nf, nr = nf+d[0], nr+d[1]
			}
		}
	}

	return squares
}

// IsNotInCheck reports whether the given color's king is safe from
// capture, i.e. is not currently attacked. This is the legality filter
// applied after making a pseudo-legal move.
func (p *Position) IsNotInCheck(c piece.Color) bool {
	return !p.IsSquareAttacked(p.kingSquare[c], c.Other())
}

// IsInCheck reports whether the given color's king is under attack.
func (p *Position) IsInCheck(c piece.Color) bool {
	return p.IsSquareAttacked(p.kingSquare[c], c.Other())
}

// enPassantCaptureIsLegal reports whether the position's recorded
// en-passant file actually admits a legal en-passant capture this turn,
// i.e. a pawn of the side to move sits next to the file on the
// en-passant rank. The Zobrist contract only xors the en-passant key
// when this holds, not merely when the FEN field is set.
func enPassantCaptureIsLegal(p *Position) bool {
	if !p.hasEP {
		return false
	}

	rank := square.Rank4
	if p.turn == piece.Black {
		rank = square.Rank5
	}

	f := int(p.epFile)
	for _, df := range [2]int{-1, 1} {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		sq := square.New(square.File(nf), rank)
		pc := p.squares[sq]
		if pc.Type() == piece.Pawn && pc.Color() == p.turn {
			return true
		}
	}

	return false
}
