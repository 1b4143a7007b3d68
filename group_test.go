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

func TestStoreCreateAllocatesMonotonicIds(t *testing.T) {
	s := newStore()
	g1 := s.create(leaf("A", 1))
	g2 := s.create(leaf("B", 2))

	require.Equal(t, GroupId(1), g1)
	require.Equal(t, GroupId(2), g2)
	require.Equal(t, 2, s.count())
}

func TestStoreLookupUnknownGroup(t *testing.T) {
	s := newStore()
	_, err := s.lookup(GroupId(42))
	require.Error(t, err)
	require.True(t, ErrInvalidGroup.Is(err))
}

func TestGroupIncomingMultiset(t *testing.T) {
	g := newGroup(leaf("A", 1))
	require.False(t, g.referenced())

	g.addIncoming(RootSentinel)
	g.addIncoming(GroupId(5))
	g.addIncoming(GroupId(5))
	require.True(t, g.referenced())
	require.Equal(t, 2, g.incoming[GroupId(5)])

	require.True(t, g.removeIncoming(GroupId(5)))
	require.Equal(t, 1, g.incoming[GroupId(5)])
	require.True(t, g.removeIncoming(GroupId(5)))
	_, ok := g.incoming[GroupId(5)]
	require.False(t, ok)

	require.False(t, g.removeIncoming(GroupId(5)), "removing a non-existent occurrence must fail")
	require.True(t, g.referenced()) // RootSentinel is still there
}
