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

// Package castling provides types for dealing with castling rights in a
// board representation.
package castling

import "mateline.dev/x/chess/pkg/chess/square"

// Rights represents the current castling rights of the position, packed
// into a 4-bit mask as required by the position data model.
// [Black Queen-side][Black King-side][White Queen-side][White King-side]
type Rights byte

// constants representing individual and composite castling rights
const (
	WhiteK Rights = 1 << 0 // white king-side
	WhiteQ Rights = 1 << 1 // white queen-side
	BlackK Rights = 1 << 2 // black king-side
	BlackQ Rights = 1 << 3 // black queen-side

	NoCasl Rights = 0 // no castling possible

	WhiteA Rights = WhiteK | WhiteQ
	BlackA Rights = BlackK | BlackQ

	All Rights = WhiteA | BlackA
)

// N is the number of possible unique castling rights masks.
const N = 1 << 4

// NewRights parses a castling-rights string like "KQkq" or "-".
func NewRights(r string) Rights {
	var rights Rights

	if r == "-" || r == "" {
		return NoCasl
	}

	for _, c := range r {
		switch c {
		case 'K':
			rights |= WhiteK
		case 'Q':
			rights |= WhiteQ
		case 'k':
			rights |= BlackK
		case 'q':
			rights |= BlackQ
		}
	}

	return rights
}

// RightUpdates maps each square to the rights that are lost if a piece
// moves from or to it: rook-home squares drop that side's rights, and
// king-home squares drop both of that color's rights.
var RightUpdates = func() [square.N]Rights {
	var updates [square.N]Rights
	updates[square.New(square.FileA, square.Rank1)] = WhiteQ
	updates[square.New(square.FileE, square.Rank1)] = WhiteA
	updates[square.New(square.FileH, square.Rank1)] = WhiteK
	updates[square.New(square.FileA, square.Rank8)] = BlackQ
	updates[square.New(square.FileE, square.Rank8)] = BlackA
	updates[square.New(square.FileH, square.Rank8)] = BlackK
	return updates
}()

// String converts the given castling.Rights to a readable FEN fragment.
func (c Rights) String() string {
	var str string

	if c&WhiteK != 0 {
		str += "K"
	}
	if c&WhiteQ != 0 {
		str += "Q"
	}
	if c&BlackK != 0 {
		str += "k"
	}
	if c&BlackQ != 0 {
		str += "q"
	}

	if str == "" {
		str = "-"
	}

	return str
}
