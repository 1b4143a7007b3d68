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

import "github.com/sirupsen/logrus"

// insertRecursive materializes an externally supplied plan subtree into
// groups, replacing each child with a group reference. If node is already
// a GroupReference, it names an existing group and is returned unchanged
// — no new group is created, and the caller is responsible for any
// back-edge accounting (insertRecursive itself never touches an existing
// group's incoming multiset for a reference it did not just create).
func (m *Memo) insertRecursive(node PlanNode) (GroupId, error) {
	return m.intern(node, make(map[PlanNode]GroupId))
}

// intern is insertRecursive's body, threading a pointer-identity cache
// through the whole recursive descent of one top-level insertion. Without
// it, a caller that builds a tree by referencing the very same child node
// twice (rather than going through an existing GroupReference) would have
// that child interned into two distinct groups instead of one group with
// a two-occurrence back-edge.
func (m *Memo) intern(node PlanNode, cache map[PlanNode]GroupId) (GroupId, error) {
	if ref, ok := node.(*GroupReference); ok {
		return ref.GroupId(), nil
	}
	if g, ok := cache[node]; ok {
		return g, nil
	}

	children := node.Children()
	newChildren := make([]PlanNode, len(children))
	for i, c := range children {
		gc, err := m.intern(c, cache)
		if err != nil {
			return 0, err
		}
		newChildren[i] = NewGroupReference(m.ids.NextPlanID(), gc, c.OutputColumns())
	}

	rewritten := node.ReplaceChildren(newChildren)
	if err := checkChildCount(rewritten, len(newChildren)); err != nil {
		return 0, err
	}
	g := m.s.create(rewritten)
	cache[node] = g

	if err := m.increment(rewritten, g); err != nil {
		return 0, err
	}

	m.log.WithFields(logrus.Fields{
		"group":    g,
		"children": len(newChildren),
	}).Debug("memo: inserted group")

	return g, nil
}
