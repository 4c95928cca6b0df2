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

// Command search is a minimal read-eval-print loop around the search
// engine: "position fen <fen>" loads a position, "go depth <n>" or
// "go movetime <ms>" searches it and prints a bestmove line, and "quit"
// exits. It speaks a small subset of UCI rather than the protocol in
// full, since driving a GUI is outside this tool's job.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"mateline.dev/x/chess/pkg/chess/board"
	"mateline.dev/x/chess/pkg/search"
	searchtime "mateline.dev/x/chess/pkg/search/time"
)

func main() {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		panic(err)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return
			}
			fmt.Fprintln(os.Stderr, "search:", err)
			return
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "position":
			pos, err = runPosition(args[1:])
			if err != nil {
				fmt.Println(err)
			}

		case "go":
			runGo(pos, args[1:])

		case "quit":
			return

		default:
			fmt.Printf("%s: command not found\n", args[0])
		}
	}
}

func runPosition(args []string) (*board.Position, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("position: missing argument")
	}

	switch args[0] {
	case "startpos":
		return board.ParseFEN(board.StartFEN)
	case "fen":
		return board.ParseFEN(strings.Join(args[1:], " "))
	default:
		return nil, fmt.Errorf("position: unrecognized argument %q", args[0])
	}
}

func runGo(pos *board.Position, args []string) {
	limits := search.Limits{Depth: 64}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			if i < len(args) {
				if d, err := strconv.Atoi(args[i]); err == nil {
					limits.Depth = d
				}
			}
		case "movetime":
			i++
			if i < len(args) {
				if ms, err := strconv.Atoi(args[i]); err == nil {
					limits.Manager = &searchtime.FixedManager{Budget: time.Duration(ms) * time.Millisecond}
				}
			}
		}
	}

	if limits.Manager == nil {
		limits.Manager = searchtime.InfiniteManager{}
	}

	ctx := search.NewContext(pos, limits)
	best, _ := ctx.GetBestMove()
	fmt.Printf("bestmove %s\n", best)
}
