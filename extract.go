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

// Extract reconstructs a self-contained plan tree by walking the root
// group's current member and recursively replacing every GroupReference
// child with the current member of its target group. It terminates
// because the back-edge graph — and therefore its reverse, the child
// graph Extract walks — is a DAG.
func (m *Memo) Extract() (PlanNode, error) {
	return m.extractGroup(m.root)
}

func (m *Memo) extractGroup(g GroupId) (PlanNode, error) {
	rec, err := m.s.lookup(g)
	if err != nil {
		return nil, err
	}

	children := rec.member.Children()
	if len(children) == 0 {
		return rec.member, nil
	}

	newChildren := make([]PlanNode, len(children))
	for i, c := range children {
		ref, ok := c.(*GroupReference)
		if !ok {
			return nil, ErrInvariantViolation.New("expected a GroupReference child during extract")
		}
		resolved, err := m.extractGroup(ref.GroupId())
		if err != nil {
			return nil, err
		}
		newChildren[i] = resolved
	}
	return rec.member.ReplaceChildren(newChildren), nil
}
