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

// GroupId names a group in a Memo's store. Real groups are allocated from
// a monotonically increasing counter starting at 1; ids are never reused.
type GroupId uint32

// RootSentinel is the reserved id meaning "the outside world holds a
// reference to the root group." It never names a real group; it only ever
// appears as a member of a group's incoming multiset.
const RootSentinel GroupId = 0

// group is the store's record for one interned plan node.
type group struct {
	// member is the plan node currently installed in this group. Its
	// direct children are always GroupReferences (or it is a leaf).
	member PlanNode

	// incoming is the multiset of parent group ids holding a reference to
	// this group, keyed by parent id with the occurrence count as the
	// value. RootSentinel occupies a slot like any other parent for the
	// root group.
	incoming map[GroupId]int

	// stats is the cached statistics estimate for this group, or nil if
	// absent or evicted.
	stats any
}

func newGroup(member PlanNode) *group {
	return &group{member: member, incoming: make(map[GroupId]int)}
}

// addIncoming adds one occurrence of parent to this group's incoming
// multiset.
func (g *group) addIncoming(parent GroupId) {
	g.incoming[parent]++
}

// removeIncoming removes one occurrence of parent. It reports whether the
// occurrence existed; a caller that removes a non-existent occurrence is
// looking at a reference-accounting bug.
func (g *group) removeIncoming(parent GroupId) bool {
	n, ok := g.incoming[parent]
	if !ok || n == 0 {
		return false
	}
	if n == 1 {
		delete(g.incoming, parent)
	} else {
		g.incoming[parent] = n - 1
	}
	return true
}

// referenced reports whether this group has any incoming references left.
func (g *group) referenced() bool {
	return len(g.incoming) > 0
}

// store owns every live Group record, indexed by id.
type store struct {
	groups map[GroupId]*group
	nextID GroupId
}

func newStore() *store {
	return &store{
		groups: make(map[GroupId]*group),
		nextID: 1,
	}
}

// create installs a new group record and returns its freshly allocated id.
func (s *store) create(member PlanNode) GroupId {
	id := s.nextID
	s.nextID++
	s.groups[id] = newGroup(member)
	return id
}

// lookup returns the record for g, or ErrInvalidGroup if no such group is
// live.
func (s *store) lookup(g GroupId) (*group, error) {
	rec, ok := s.groups[g]
	if !ok {
		return nil, ErrInvalidGroup.New(g)
	}
	return rec, nil
}

// delete removes g's record from the store. The caller is responsible for
// having already verified g carries no incoming references.
func (s *store) delete(g GroupId) {
	delete(s.groups, g)
}

func (s *store) count() int {
	return len(s.groups)
}
