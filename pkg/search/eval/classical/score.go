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

// Package classical implements a two-phase, tunable piece-square-table
// evaluator over the mailbox board representation.
package classical

import "mateline.dev/x/chess/pkg/search/eval"

// S packs a middlegame and endgame evaluation pair into a single Score.
func S(mg, eg eval.Eval) Score {
	return Score(uint64(eg)<<32) + Score(mg)
}

// Score packs a (mg, eg) evaluation pair into a single value so that term
// tables stay compact and additions combine both phases at once.
type Score int64

// MG returns the packed middlegame evaluation.
func (score Score) MG() eval.Eval {
	return eval.Eval(int32(uint32(uint64(score))))
}

// EG returns the packed endgame evaluation.
func (score Score) EG() eval.Eval {
	return eval.Eval(int32(uint32(uint64(score+(1<<31)) >> 32)))
}
