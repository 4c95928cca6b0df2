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
	"fmt"
	"strconv"
	"strings"

	"mateline.dev/x/chess/pkg/chess/castling"
	"mateline.dev/x/chess/pkg/chess/piece"
	"mateline.dev/x/chess/pkg/chess/square"
)

// ParseFEN parses a FEN string (the position's real construction path;
// the full FEN grammar beyond this function is a named external
// collaborator per the CORE's scope) into a new Position.
func ParseFEN(fenString string) (*Position, error) {
	fields := strings.Fields(fenString)
	if len(fields) < 4 {
		return nil, fmt.Errorf("parse fen: expected at least 4 fields, got %d", len(fields))
	}

	for len(fields) < 6 {
		fields = append(fields, "0")
	}

	pos := &Position{}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("parse fen: expected 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := square.Rank8 - square.Rank(i)
		file := square.FileA

		for _, c := range rankStr {
			switch {
			case c >= '1' && c <= '8':
				file += square.File(c - '0')
			default:
				if file > square.FileH {
					return nil, fmt.Errorf("parse fen: rank %d overflows", i)
				}

				pc := piece.NewFromString(string(c))
				sq := square.New(file, rank)
				pos.squares[sq] = pc

				if pc.Type() == piece.King {
					pos.kingSquare[pc.Color()] = sq
				}
				if pc.Type() == piece.Pawn {
					pos.pawnCount[pc.Color()]++
				}

				file++
			}
		}
	}

	switch fields[1] {
	case "w":
		pos.turn = piece.White
	case "b":
		pos.turn = piece.Black
	default:
		return nil, fmt.Errorf("parse fen: invalid side to move %q", fields[1])
	}

	pos.castling = castling.NewRights(fields[2])

	if fields[3] != "-" {
		sq := square.NewFromString(fields[3])
		if !sq.Valid() {
			return nil, fmt.Errorf("parse fen: invalid en passant square %q", fields[3])
		}
		pos.epFile = sq.File()
		pos.hasEP = true
	}

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("parse fen: invalid halfmove clock %q", fields[4])
	}
	pos.halfmove = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("parse fen: invalid fullmove number %q", fields[5])
	}
	pos.fullmove = fullmove

	pos.key = pos.recomputeKey()

	return pos, nil
}

// FEN serializes the position back into FEN notation.
func (p *Position) FEN() string {
	var b strings.Builder

	for r := square.Rank8; ; r-- {
		empty := 0
		for f := square.FileA; f <= square.FileH; f++ {
			pc := p.squares[square.New(f, r)]
			if pc == piece.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteString(pc.String())
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if r != square.Rank1 {
			b.WriteByte('/')
		}
		if r == square.Rank1 {
			break
		}
	}

	b.WriteByte(' ')
	b.WriteString(p.turn.String())

	b.WriteByte(' ')
	b.WriteString(p.castling.String())

	b.WriteByte(' ')
	if p.hasEP {
		rank := square.Rank3
		if p.turn == piece.White {
			rank = square.Rank6
		}
		b.WriteString(square.New(p.epFile, rank).String())
	} else {
		b.WriteByte('-')
	}

	fmt.Fprintf(&b, " %d %d", p.halfmove, p.fullmove)

	return b.String()
}
