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
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Memo interns a single root plan tree into a store of numbered groups and
// lets rewrite rules substitute a group's member in place, without
// rebuilding the ancestor chain above it. See package doc for the full
// picture.
type Memo struct {
	ids  IDAllocator
	log  logrus.FieldLogger
	s    *store
	root GroupId

	statsStores    int
	statsEvictions int
}

// Option configures a Memo at construction time.
type Option func(*Memo)

// WithLogger overrides the logger Memo emits Debug-level diagnostics to.
// The default is logrus.StandardLogger().
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Memo) { m.log = log }
}

// New builds a Memo by interning root, drawing fresh plan-node ids from
// ids as it materializes GroupReferences. The root group is pinned against
// collection with RootSentinel before New returns.
func New(ids IDAllocator, root PlanNode, opts ...Option) (*Memo, error) {
	m := &Memo{
		ids: ids,
		log: logrus.StandardLogger(),
		s:   newStore(),
	}
	for _, opt := range opts {
		opt(m)
	}

	rootGroup, err := m.insertRecursive(root)
	if err != nil {
		return nil, err
	}
	m.root = rootGroup
	rec, err := m.s.lookup(rootGroup)
	if err != nil {
		return nil, err
	}
	rec.addIncoming(RootSentinel)

	m.log.WithFields(logrus.Fields{
		"root":   m.root,
		"groups": m.s.count(),
	}).Debug("memo: constructed")

	return m, nil
}

// RootGroup returns the id of the root group.
func (m *Memo) RootGroup() GroupId {
	return m.root
}

// GetNode returns the current member of group g.
func (m *Memo) GetNode(g GroupId) (PlanNode, error) {
	rec, err := m.s.lookup(g)
	if err != nil {
		return nil, err
	}
	return rec.member, nil
}

// Resolve returns the current member of the group ref points at.
func (m *Memo) Resolve(ref *GroupReference) (PlanNode, error) {
	return m.GetNode(ref.GroupId())
}

// GroupCount returns the number of live groups in the store.
func (m *Memo) GroupCount() int {
	return m.s.count()
}

// Groups returns every live group id, in ascending order. It is a
// read-only enumeration; it does not affect reachability or reference
// counts.
func (m *Memo) Groups() []GroupId {
	out := make([]GroupId, 0, len(m.s.groups))
	for g := range m.s.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the group store one line per group, in ascending id
// order: the group id, the Go type of its member, and the member's
// children, with GroupReference children shown as "#<id>". It is for
// debugging and test failure output, not part of the data model.
func (m *Memo) String() string {
	var b strings.Builder
	for _, g := range m.Groups() {
		rec := m.s.groups[g]
		fmt.Fprintf(&b, "G%d: %T", g, rec.member)
		if children := rec.member.Children(); len(children) > 0 {
			b.WriteString(" [")
			for i, c := range children {
				if i > 0 {
					b.WriteString(", ")
				}
				if ref, ok := c.(*GroupReference); ok {
					fmt.Fprintf(&b, "%s", ref)
				} else {
					fmt.Fprintf(&b, "%T", c)
				}
			}
			b.WriteString("]")
		}
		b.WriteString("\n")
	}
	return b.String()
}
