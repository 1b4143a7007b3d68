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
	"testing"

	"github.com/stretchr/testify/require"
)

// buildABCDEF builds A[B[C,D], E[F]], a small two-branch tree reused
// throughout these tests.
func buildABCDEF() PlanNode {
	c := leaf("C", 3)
	d := leaf("D", 4)
	f := leaf("F", 6)
	b := node("B", []uint32{3, 4}, c, d)
	e := node("E", []uint32{6}, f)
	return node("A", []uint32{3, 4, 6}, b, e)
}

func TestConstructAndExtract(t *testing.T) {
	m, err := New(&fakeIDs{}, buildABCDEF())
	require.NoError(t, err)

	require.Equal(t, 6, m.GroupCount())
	require.NoError(t, m.CheckInvariants())

	extracted, err := m.Extract()
	require.NoError(t, err)

	got := extracted.(*fakeRel)
	require.Equal(t, "A", got.name)
	require.Len(t, got.children, 2)

	gotB := got.children[0].(*fakeRel)
	require.Equal(t, "B", gotB.name)
	require.ElementsMatch(t, []string{"C", "D"}, childNames(gotB))

	gotE := got.children[1].(*fakeRel)
	require.Equal(t, "E", gotE.name)
	require.ElementsMatch(t, []string{"F"}, childNames(gotE))
}

func childNames(f *fakeRel) []string {
	names := make([]string, len(f.children))
	for i, c := range f.children {
		names[i] = c.(*fakeRel).name
	}
	return names
}

func TestRootPinnedAgainstCollection(t *testing.T) {
	m, err := New(&fakeIDs{}, leaf("A", 1))
	require.NoError(t, err)

	rootRec, err := m.s.lookup(m.RootGroup())
	require.NoError(t, err)
	require.Equal(t, 1, rootRec.incoming[RootSentinel])
}

func TestExtractRoundTrip(t *testing.T) {
	m1, err := New(&fakeIDs{}, buildABCDEF())
	require.NoError(t, err)

	tree1, err := m1.Extract()
	require.NoError(t, err)

	m2, err := New(&fakeIDs{}, tree1)
	require.NoError(t, err)

	tree2, err := m2.Extract()
	require.NoError(t, err)

	require.Equal(t, tree1.(*fakeRel).String(), tree2.(*fakeRel).String())
	require.Equal(t, m1.GroupCount(), m2.GroupCount())
}

func TestGroupsEnumeratesLiveGroups(t *testing.T) {
	m, err := New(&fakeIDs{}, buildABCDEF())
	require.NoError(t, err)

	groups := m.Groups()
	require.Len(t, groups, m.GroupCount())
	for i := 1; i < len(groups); i++ {
		require.Less(t, groups[i-1], groups[i])
	}
}

func TestStringRendersGroupStore(t *testing.T) {
	m, err := New(&fakeIDs{}, buildABCDEF())
	require.NoError(t, err)

	out := m.String()
	require.Contains(t, out, "G1:")
	require.Contains(t, out, "#")
}
