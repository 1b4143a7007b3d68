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

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// directChildGroups returns the group id each of node's direct children
// references, one entry per child position — a child referenced twice
// yields the same group id twice. Every child of an installed member
// must be a GroupReference; anything else is a collaborator bug.
func directChildGroups(node PlanNode) ([]GroupId, error) {
	children := node.Children()
	out := make([]GroupId, 0, len(children))
	for _, c := range children {
		ref, ok := c.(*GroupReference)
		if !ok {
			return nil, ErrInvariantViolation.New("expected a GroupReference child, got a non-reference node")
		}
		out = append(out, ref.GroupId())
	}
	return out, nil
}

// childGroups returns the distinct group ids node's direct children
// reference, collapsing a child referenced more than once down to a
// single entry. Used where only reachability matters (walking, cycle
// detection), never where the occurrence count itself matters.
func childGroups(node PlanNode) ([]GroupId, error) {
	direct, err := directChildGroups(node)
	if err != nil {
		return nil, err
	}
	seen := make(map[GroupId]bool, len(direct))
	out := make([]GroupId, 0, len(direct))
	for _, g := range direct {
		if seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out, nil
}

// checkChildCount verifies that rewriting original with wantChildren
// children produced a node reporting exactly that many children back.
// ReplaceChildren is a collaborator contract ("child count must match");
// a variant that silently drops or duplicates a child here is a bug in
// that collaborator, surfaced as an invariant violation rather than a
// silent corruption of the group graph.
func checkChildCount(rewritten PlanNode, wantChildren int) error {
	if got := len(rewritten.Children()); got != wantChildren {
		return ErrInvariantViolation.New(fmt.Sprintf(
			"ReplaceChildren returned %d children, want %d", got, wantChildren))
	}
	return nil
}

// increment adds one back-edge from fromGroup to each group node
// references among its children, once per child position — a child
// referenced twice gets two back-edges, matching its occurrence count.
func (m *Memo) increment(node PlanNode, fromGroup GroupId) error {
	groups, err := directChildGroups(node)
	if err != nil {
		return err
	}
	for _, c := range groups {
		rec, err := m.s.lookup(c)
		if err != nil {
			return err
		}
		rec.addIncoming(fromGroup)
	}
	return nil
}

// decrement removes one back-edge from fromGroup to each group node
// references among its children, once per child position, cascade-deleting
// any child whose incoming multiset becomes empty as a result.
func (m *Memo) decrement(node PlanNode, fromGroup GroupId) error {
	groups, err := directChildGroups(node)
	if err != nil {
		return err
	}
	for _, c := range groups {
		rec, err := m.s.lookup(c)
		if err != nil {
			return err
		}
		if !rec.removeIncoming(fromGroup) {
			return ErrInvariantViolation.New(
				fmt.Sprintf("group %d has no back-edge from group %d to remove", c, fromGroup))
		}
		if !rec.referenced() {
			if err := m.deleteGroup(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// deleteGroup removes g from the store and recursively releases the
// back-edges it held on its own children. g must already have an empty
// incoming multiset.
func (m *Memo) deleteGroup(g GroupId) error {
	rec, err := m.s.lookup(g)
	if err != nil {
		return err
	}
	if rec.referenced() {
		refs := 0
		for _, n := range rec.incoming {
			refs += n
		}
		return ErrDeleteWithReferences.New(g, refs)
	}

	member := rec.member
	m.s.delete(g)

	m.log.WithField("group", g).Debug("memo: deleted unreachable group")

	return m.decrement(member, g)
}
