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

// fakeRel is a minimal PlanNode standing in for a real plan-node algebra,
// which this package never implements itself. It mirrors the shape of a
// query-engine's own dummy-relation test fixtures: just enough structure
// to exercise the Memo's contract, nothing resembling a real query
// operator.
type fakeRel struct {
	name     string
	children []PlanNode
	cols     ColumnSet

	// badReplace, when set, makes ReplaceChildren return a node with the
	// wrong number of children, to exercise the child-count invariant.
	badReplace bool
}

var _ PlanNode = (*fakeRel)(nil)

func leaf(name string, cols ...uint32) *fakeRel {
	return &fakeRel{name: name, cols: NewColumnSet(cols...)}
}

func node(name string, cols []uint32, children ...PlanNode) *fakeRel {
	return &fakeRel{name: name, cols: NewColumnSet(cols...), children: children}
}

func (f *fakeRel) Children() []PlanNode { return f.children }

func (f *fakeRel) ReplaceChildren(newChildren []PlanNode) PlanNode {
	out := &fakeRel{name: f.name, cols: f.cols, children: newChildren}
	if f.badReplace {
		out.children = append(out.children, out.children...)
	}
	return out
}

func (f *fakeRel) OutputColumns() ColumnSet { return f.cols }

func (f *fakeRel) String() string {
	return fmt.Sprintf("%s%s", f.name, f.cols)
}

// fakeIDs is a trivial monotonic IDAllocator, the shape Memo expects from
// the planner's shared id source.
type fakeIDs struct {
	next int64
}

func (a *fakeIDs) NextPlanID() int64 {
	a.next++
	return a.next
}
