// Copyright 2024 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package memo

import "fmt"

// WalkGroup performs a depth-first visit of the groups reachable from g,
// following member child references and deduplicating groups already
// visited (the group graph may be a DAG with diamonds, never a tree). fn
// is called once per distinct reachable group, in pre-order.
func (m *Memo) WalkGroup(g GroupId, fn func(GroupId) error) error {
	return m.walk(g, make(map[GroupId]bool), fn)
}

func (m *Memo) walk(g GroupId, visited map[GroupId]bool, fn func(GroupId) error) error {
	if visited[g] {
		return nil
	}
	visited[g] = true

	if err := fn(g); err != nil {
		return err
	}

	rec, err := m.s.lookup(g)
	if err != nil {
		return err
	}
	groups, err := childGroups(rec.member)
	if err != nil {
		return err
	}
	for _, c := range groups {
		if err := m.walk(c, visited, fn); err != nil {
			return err
		}
	}
	return nil
}

// CheckInvariants walks the whole store and verifies:
//
//   - every child of every group's member is a GroupReference naming a
//     live group;
//   - the number of references from p to c matches the multiplicity of p
//     in c's incoming multiset;
//   - every group in the store is reachable from the root;
//   - the forward child graph has no cycle.
//
// It mutates nothing and returns the first violation found, wrapped as
// ErrInvariantViolation. Intended for tests and optimizer-development
// builds, not the hot path of a running planner.
func (m *Memo) CheckInvariants() error {
	if err := m.checkAcyclic(); err != nil {
		return err
	}

	expectedIncoming := map[GroupId]map[GroupId]int{}
	reachable := map[GroupId]bool{}

	err := m.WalkGroup(m.root, func(g GroupId) error {
		reachable[g] = true
		rec, err := m.s.lookup(g)
		if err != nil {
			return err
		}
		groups, err := directChildGroups(rec.member)
		if err != nil {
			return err
		}
		for _, c := range groups {
			if _, ok := m.s.groups[c]; !ok {
				return ErrInvariantViolation.New(fmt.Sprintf("group %d references unknown group %d", g, c))
			}
			if expectedIncoming[c] == nil {
				expectedIncoming[c] = map[GroupId]int{}
			}
			expectedIncoming[c][g]++
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(reachable) != m.s.count() {
		return ErrInvariantViolation.New(fmt.Sprintf(
			"store has %d groups but only %d are reachable from root G%d", m.s.count(), len(reachable), m.root))
	}

	if expectedIncoming[m.root] == nil {
		expectedIncoming[m.root] = map[GroupId]int{}
	}
	rootRec, err := m.s.lookup(m.root)
	if err != nil {
		return err
	}
	if rootRec.incoming[RootSentinel] != 1 {
		return ErrInvariantViolation.New(fmt.Sprintf(
			"root group %d has %d RootSentinel back-edges, want 1", m.root, rootRec.incoming[RootSentinel]))
	}

	for g, rec := range m.s.groups {
		want := expectedIncoming[g]
		got := map[GroupId]int{}
		for p, n := range rec.incoming {
			if p == RootSentinel {
				continue
			}
			got[p] = n
		}
		if !intMapsEqual(want, got) {
			return ErrInvariantViolation.New(fmt.Sprintf(
				"group %d incoming multiset %v does not match observed references %v", g, got, want))
		}
	}

	return nil
}

func (m *Memo) checkAcyclic() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[GroupId]int{}
	var visit func(g GroupId) error
	visit = func(g GroupId) error {
		switch color[g] {
		case gray:
			return ErrInvariantViolation.New(fmt.Sprintf("cycle detected through group %d", g))
		case black:
			return nil
		}
		color[g] = gray
		rec, ok := m.s.groups[g]
		if !ok {
			return ErrInvariantViolation.New(fmt.Sprintf("reference to unknown group %d", g))
		}
		groups, err := childGroups(rec.member)
		if err != nil {
			return err
		}
		for _, c := range groups {
			if err := visit(c); err != nil {
				return err
			}
		}
		color[g] = black
		return nil
	}
	return visit(m.root)
}

func intMapsEqual(a, b map[GroupId]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
