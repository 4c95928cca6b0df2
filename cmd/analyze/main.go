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

// Command analyze runs a single search on a position and renders the
// result in a small terminal dashboard: the board, the chosen move and
// score, and node counts.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"golang.org/x/term"

	"mateline.dev/x/chess/pkg/chess/board"
	"mateline.dev/x/chess/pkg/search"
	searchtime "mateline.dev/x/chess/pkg/search/time"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN of the position to analyze")
	depth := flag.Int("depth", 12, "search depth")
	budget := flag.Duration("time", 0, "search time budget (0 disables the time limit)")
	flag.Parse()

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err)
		os.Exit(1)
	}

	limits := search.Limits{Depth: *depth}
	if *budget > 0 {
		limits.Manager = &searchtime.FixedManager{Budget: *budget}
	} else {
		limits.Manager = searchtime.InfiniteManager{}
	}

	ctx := search.NewContext(pos, limits)

	start := time.Now()
	best, score := ctx.GetBestMove()
	elapsed := time.Since(start)

	if err := ui.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "analyze: failed to init terminal:", err)
		os.Exit(1)
	}
	defer ui.Close()

	width, height := layoutSize()

	boardView := widgets.NewParagraph()
	boardView.Title = "position"
	boardView.Text = pos.String()
	boardView.SetRect(0, 0, width/2, height-1)

	info := widgets.NewParagraph()
	info.Title = "search"
	info.Text = fmt.Sprintf(
		"fen:    %s\nmove:   %s\nscore:  %s\ndepth:  %d\nnodes:  %d (%d quiescence)\ntime:   %s\npress q to quit",
		*fen, best, score, *depth, ctx.AlphaBetaNodes, ctx.QuiescenceNodes, elapsed.Round(time.Millisecond),
	)
	info.SetRect(width/2, 0, width, height-1)

	ui.Render(boardView, info)

	for e := range ui.PollEvents() {
		switch e.ID {
		case "q", "<C-c>":
			return
		}
	}
}

// layoutSize picks a dashboard size that fits the real terminal when one
// is attached, falling back to a sane default otherwise (e.g. when
// output is piped or redirected).
func layoutSize() (int, int) {
	const defaultWidth, defaultHeight = 100, 20
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return defaultWidth, defaultHeight
	}
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight
	}
	return w, h
}
