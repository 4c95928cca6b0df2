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

// Command generate walks a directory of PGN game collections and emits a
// FENS training file for the tuner: one quiet, non-capture, non-check
// position per ply, labeled with the game's actual result.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/notnil/chess"
	searchtime "mateline.dev/x/chess/pkg/search/time"

	"mateline.dev/x/chess/pkg/chess/board"
	"mateline.dev/x/chess/pkg/chess/move"
	"mateline.dev/x/chess/pkg/chess/piece"
	"mateline.dev/x/chess/pkg/chess/square"
	"mateline.dev/x/chess/pkg/search"
)

// searchDepth is the depth used to settle on a best move for each
// position visited along a game's actual move list, deep enough to
// avoid obvious one-ply blunders without making data generation glacial.
const searchDepth = 7

func main() {
	fenCount := 0
	start := time.Now()

	err := filepath.WalkDir("./data", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !strings.HasSuffix(path, ".pgn") {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		scanner := chess.NewScanner(f)
		var games []*chess.Game
		for scanner.Scan() {
			games = append(games, scanner.Next())
		}
		fmt.Fprintf(os.Stderr, "datagen: %s: %d games\n", path, len(games))

		for _, game := range games {
			token, ok := resultToken(game.GetTagPair("Result").Value)
			if !ok {
				continue
			}

			fenCount += processGame(game, token)
			fmt.Fprintf(os.Stderr, "datagen: %d fens generated (%d fens/s)\n",
				fenCount, fenCount/(int(time.Since(start).Seconds())+1))
		}

		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resultToken(pgnResult string) (string, bool) {
	switch pgnResult {
	case "1-0":
		return "1-0", true
	case "0-1":
		return "0-1", true
	case "1/2-1/2":
		return "1/2-1/2", true
	default:
		return "", false
	}
}

// processGame replays game move by move on our own board representation
// (rather than trusting notnil/chess's board, which the tuner's
// evaluator knows nothing about), searching each resulting position and
// printing it to stdout when the search settles on a quiet move.
func processGame(game *chess.Game, token string) int {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		panic(err)
	}

	moves := game.Moves()
	printed := 0

	for i, gameMove := range moves {
		if i == len(moves)-1 {
			break
		}

		m, ok := matchMove(pos, gameMove)
		if !ok {
			// a move notnil/chess parsed doesn't correspond to any
			// legal move we generate; stop trusting the rest of this
			// game rather than desync silently.
			return printed
		}

		pos.Apply(m)

		if pos.IsInCheck(pos.SideToMove()) {
			continue
		}

		fenString := pos.FEN()

		limits := search.Limits{Depth: searchDepth, Manager: searchtime.InfiniteManager{}}
		ctx := search.NewContext(pos, limits)
		best, _ := ctx.GetBestMove()

		if best == move.Null || best.IsCapture() || best.IsPromotion() {
			continue
		}

		fmt.Printf("%s %s\n", fenString, token)
		printed++
	}

	return printed
}

// matchMove finds the legal move on pos corresponding to a notnil/chess
// move, by source/target square and promotion piece. notnil/chess
// indexes squares a8=0..h1=63 (rank-major from the top); ours indexes
// a1=0..h8=63, so the rank has to be flipped.
func matchMove(pos *board.Position, gameMove *chess.Move) (move.Move, bool) {
	from := flip(int(gameMove.S1()))
	to := flip(int(gameMove.S2()))

	var promo piece.Type
	switch gameMove.Promo() {
	case chess.Knight:
		promo = piece.Knight
	case chess.Bishop:
		promo = piece.Bishop
	case chess.Rook:
		promo = piece.Rook
	case chess.Queen:
		promo = piece.Queen
	}

	var moves []move.Move
	moves = pos.GenAllMoves(moves)
	for _, m := range moves {
		if m.From() != from || m.To() != to || m.Promotion() != promo {
			continue
		}
		undo := pos.Apply(m)
		legal := pos.IsNotInCheck(pos.SideToMove().Other())
		pos.Revert(m, undo)
		if legal {
			return m, true
		}
	}
	return move.Null, false
}

// flip converts a notnil/chess square index (a8=0, b8=1, ..., h1=63)
// into ours (a1=0, b1=1, ..., h8=63).
func flip(s int) square.Square {
	file := square.File(s % 8)
	rank := square.Rank(7 - s/8)
	return square.New(file, rank)
}
