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

// Package time implements deadline-polling time control for a search.
package time

import "time"

// Manager decides how long a search is allowed to run, and reports when
// that deadline has passed. The search checks Expired at every node
// entry (alpha-beta and quiescence alike).
type Manager interface {
	// GetDeadline sets the manager's internal deadline at the start of
	// a search.
	GetDeadline()

	// Expired reports whether the deadline has passed.
	Expired() bool
}

// FixedManager allocates a single fixed duration to the whole search,
// the "move-time" / "time_budget_seconds" contract of get_best_move.
type FixedManager struct {
	Budget time.Duration

	deadline time.Time
}

var _ Manager = (*FixedManager)(nil)

func (m *FixedManager) GetDeadline() {
	m.deadline = time.Now().Add(m.Budget)
}

func (m *FixedManager) Expired() bool {
	return time.Now().After(m.deadline)
}

// InfiniteManager never expires; used for depth-limited or
// node-limited searches that should run to completion regardless of
// wall-clock time.
type InfiniteManager struct{}

var _ Manager = InfiniteManager{}

func (InfiniteManager) GetDeadline() {}

func (InfiniteManager) Expired() bool { return false }
