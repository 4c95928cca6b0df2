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
)

var promotionPieces = [4]piece.Type{piece.Queen, piece.Rook, piece.Bishop, piece.Knight}

// GenAllMoves generates all pseudo-legal moves for the side to move: the
// caller (search) must apply each and reject those that leave the mover
// in check via IsNotInCheck.
func (p *Position) GenAllMoves(out []move.Move) []move.Move {
	out = out[:0]
	us := p.turn

	out = p.genPawnMoves(out, us, false)
	out = p.genKnightMoves(out, us, false)
	out = p.genSlidingMoves(out, us, piece.Bishop, bishopDirs[:], false)
	out = p.genSlidingMoves(out, us, piece.Rook, rookDirs[:], false)
	out = p.genSlidingMoves(out, us, piece.Queen, append(append([][2]int{}, bishopDirs[:]...), rookDirs[:]...), false)
	out = p.genKingMoves(out, us, false)
	out = p.genCastles(out, us)

	return out
}

// GenAllCaptures generates all pseudo-legal captures, including
// en-passant, plus all promotions (capturing or not), for use by
// quiescence search.
func (p *Position) GenAllCaptures(out []move.Move) []move.Move {
	out = out[:0]
	us := p.turn

	out = p.genPawnMoves(out, us, true)
	out = p.genKnightMoves(out, us, true)
	out = p.genSlidingMoves(out, us, piece.Bishop, bishopDirs[:], true)
	out = p.genSlidingMoves(out, us, piece.Rook, rookDirs[:], true)
	out = p.genSlidingMoves(out, us, piece.Queen, append(append([][2]int{}, bishopDirs[:]...), rookDirs[:]...), true)
	out = p.genKingMoves(out, us, true)

	return out
}

func (p *Position) genPawnMoves(out []move.Move, us piece.Color, capturesOnly bool) []move.Move {
	dir := 1
	startRank := square.Rank2
	promoRank := square.Rank8
	epRank := square.Rank5
	if us == piece.Black {
		dir = -1
		startRank = square.Rank7
		promoRank = square.Rank1
		epRank = square.Rank4
	}

	mover := piece.New(piece.Pawn, us)

	for s := square.Square(0); s < square.N; s++ {
		pc := p.squares[s]
		if pc != mover {
			continue
		}

		f, r := int(s.File()), int(s.Rank())

		// pushes (in captures-only mode, only pushes onto the promotion rank)
		if !capturesOnly || square.Rank(r+dir) == promoRank {
			nr := r + dir
			if inBoard(f, nr) {
				to := at(f, nr)
				if p.squares[to] == piece.NoPiece {
					if square.Rank(nr) == promoRank {
						out = appendPromotions(out, s, to, mover, piece.NoPiece)
					} else {
						out = append(out, move.New(s, to, mover, piece.NoPiece, piece.NoType, move.Quiet))

						if square.Rank(r) == startRank {
							nr2 := r + 2*dir
							to2 := at(f, nr2)
							if p.squares[to2] == piece.NoPiece {
								out = append(out, move.New(s, to2, mover, piece.NoPiece, piece.NoType, move.DoublePush))
							}
						}
					}
				}
			}
		}

		// captures (including promotion-captures)
		for _, df := range [2]int{-1, 1} {
			nf, nr := f+df, r+dir
			if !inBoard(nf, nr) {
				continue
			}
			to := at(nf, nr)
			target := p.squares[to]

			if target != piece.NoPiece && target.Color() != us {
				if square.Rank(nr) == promoRank {
					out = appendPromotions(out, s, to, mover, target)
				} else {
					out = append(out, move.New(s, to, mover, target, piece.NoType, move.Capture))
				}
				continue
			}

			if target == piece.NoPiece && square.Rank(r) == epRank {
				if ef, ok := p.EnPassantFile(); ok && square.File(nf) == ef {
					captured := piece.New(piece.Pawn, us.Other())
					out = append(out, move.New(s, to, mover, captured, piece.NoType, move.EnPassant))
				}
			}
		}
	}

	return out
}

func appendPromotions(out []move.Move, from, to square.Square, mover, captured piece.Piece) []move.Move {
	typ := move.Promotion
	if captured != piece.NoPiece {
		typ = move.PromotionCapture
	}
	for _, pt := range promotionPieces {
		out = append(out, move.New(from, to, mover, captured, pt, typ))
	}
	return out
}

func (p *Position) genKnightMoves(out []move.Move, us piece.Color, capturesOnly bool) []move.Move {
	mover := piece.New(piece.Knight, us)
	for s := square.Square(0); s < square.N; s++ {
		if p.squares[s] != mover {
			continue
		}
		f, r := int(s.File()), int(s.Rank())
		for _, d := range knightDeltas {
			nf, nr := f+d[0], r+d[1]
			if !inBoard(nf, nr) {
				continue
			}
			to := at(nf, nr)
			target := p.squares[to]
			if target != piece.NoPiece && target.Color() == us {
				continue
			}
			if target == piece.NoPiece {
				if capturesOnly {
					continue
				}
				out = append(out, move.New(s, to, mover, piece.NoPiece, piece.NoType, move.Quiet))
			} else {
				out = append(out, move.New(s, to, mover, target, piece.NoType, move.Capture))
			}
		}
	}
	return out
}

func (p *Position) genKingMoves(out []move.Move, us piece.Color, capturesOnly bool) []move.Move {
	mover := piece.New(piece.King, us)
	s := p.kingSquare[us]
	f, r := int(s.File()), int(s.Rank())
	for _, d := range kingDeltas {
		nf, nr := f+d[0], r+d[1]
		if !inBoard(nf, nr) {
			continue
		}
		to := at(nf, nr)
		target := p.squares[to]
		if target != piece.NoPiece && target.Color() == us {
			continue
		}
		if target == piece.NoPiece {
			if capturesOnly {
				continue
			}
			out = append(out, move.New(s, to, mover, piece.NoPiece, piece.NoType, move.Quiet))
		} else {
			out = append(out, move.New(s, to, mover, target, piece.NoType, move.Capture))
		}
	}
	return out
}

func (p *Position) genSlidingMoves(out []move.Move, us piece.Color, pt piece.Type, dirs [][2]int, capturesOnly bool) []move.Move {
	mover := piece.New(pt, us)
	for s := square.Square(0); s < square.N; s++ {
		if p.squares[s] != mover {
			continue
		}
		f, r := int(s.File()), int(s.Rank())
		for _, d := range dirs {
			nf, nr := f+d[0], r+d[1]
			for inBoard(nf, nr) {
				to := at(nf, nr)
				target := p.squares[to]
				if target == piece.NoPiece {
					if !capturesOnly {
						out = append(out, move.New(s, to, mover, piece.NoPiece, piece.NoType, move.Quiet))
					}
				} else {
					if target.Color() != us {
						out = append(out, move.New(s, to, mover, target, piece.NoType, move.Capture))
					}
					break
				}
				nf, nr = nf+d[0], nr+d[1]
			}
		}
	}
	return out
}

func (p *Position) genCastles(out []move.Move, us piece.Color) []move.Move {
	rank := square.Rank1
	kRight, qRight := castling.WhiteK, castling.WhiteQ
	if us == piece.Black {
		rank = square.Rank8
		kRight, qRight = castling.BlackK, castling.BlackQ
	}

	mover := piece.New(piece.King, us)
	kingSq := square.New(square.FileE, rank)
	if p.kingSquare[us] != kingSq || p.IsInCheck(us) {
		return out
	}

	if p.castling&kRight != 0 {
		fSq, gSq, hSq := square.New(square.FileF, rank), square.New(square.FileG, rank), square.New(square.FileH, rank)
		if p.squares[fSq] == piece.NoPiece && p.squares[gSq] == piece.NoPiece && p.squares[hSq] == piece.New(piece.Rook, us) &&
			!p.IsSquareAttacked(fSq, us.Other()) && !p.IsSquareAttacked(gSq, us.Other()) {
			out = append(out, move.New(kingSq, gSq, mover, piece.NoPiece, piece.NoType, move.Castle))
		}
	}

	if p.castling&qRight != 0 {
		dSq, cSq, bSq, aSq := square.New(square.FileD, rank), square.New(square.FileC, rank), square.New(square.FileB, rank), square.New(square.FileA, rank)
		if p.squares[dSq] == piece.NoPiece && p.squares[cSq] == piece.NoPiece && p.squares[bSq] == piece.NoPiece &&
			p.squares[aSq] == piece.New(piece.Rook, us) &&
			!p.IsSquareAttacked(dSq, us.Other()) && !p.IsSquareAttacked(cSq, us.Other()) {
			out = append(out, move.New(kingSq, cSq, mover, piece.NoPiece, piece.NoType, move.Castle))
		}
	}

	return out
}
