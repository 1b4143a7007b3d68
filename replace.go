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

// Replace substitutes the member of group g with a rewritten form derived
// from newNode, for the given diagnostic reason. newNode's output columns
// must match the group's current output columns exactly — a rewrite rule
// is never allowed to change what a group produces, only how it produces
// it — or Replace fails with ErrOutputColumnsChanged and leaves the Memo
// untouched.
//
// If newNode is itself a GroupReference to another group h, the rewrite
// collapses g onto h's current member (accounting still targets g, not
// h). Otherwise newNode's children are interned via insertRecursive just
// as at construction time.
//
// Replace increments before it decrements: a child group common to both
// the old and new member must never transiently drop to zero incoming
// references and get garbage-collected mid-operation.
func (m *Memo) Replace(g GroupId, newNode PlanNode, reason string) (PlanNode, error) {
	rec, err := m.s.lookup(g)
	if err != nil {
		return nil, err
	}
	old := rec.member

	if !old.OutputColumns().Equals(newNode.OutputColumns()) {
		return nil, ErrOutputColumnsChanged.New(g, reason, old.OutputColumns(), newNode.OutputColumns())
	}

	var rewritten PlanNode
	if ref, ok := newNode.(*GroupReference); ok {
		target, err := m.s.lookup(ref.GroupId())
		if err != nil {
			return nil, err
		}
		rewritten = target.member
	} else {
		rewritten, err = m.insertChildrenAndRewrite(newNode)
		if err != nil {
			return nil, err
		}
	}

	if err := m.increment(rewritten, g); err != nil {
		return nil, err
	}

	rec.member = rewritten

	if err := m.decrement(old, g); err != nil {
		return nil, err
	}

	if err := m.evictStatistics(g); err != nil {
		return nil, err
	}

	m.log.WithFields(logrus.Fields{
		"group":  g,
		"reason": reason,
		"groups": m.s.count(),
	}).Debug("memo: replaced group member")

	return rewritten, nil
}

// insertChildrenAndRewrite interns each of node's children and returns
// node with its children substituted for the resulting GroupReferences.
// A single cache spans all of node's children so that a rewrite rule
// handing back the same child node twice gets one shared group with a
// two-occurrence back-edge, the same sharing insertRecursive preserves at
// construction time.
func (m *Memo) insertChildrenAndRewrite(node PlanNode) (PlanNode, error) {
	cache := make(map[PlanNode]GroupId)
	children := node.Children()
	newChildren := make([]PlanNode, len(children))
	for i, c := range children {
		gc, err := m.intern(c, cache)
		if err != nil {
			return nil, err
		}
		newChildren[i] = NewGroupReference(m.ids.NextPlanID(), gc, c.OutputColumns())
	}
	rewritten := node.ReplaceChildren(newChildren)
	if err := checkChildCount(rewritten, len(newChildren)); err != nil {
		return nil, err
	}
	return rewritten, nil
}
