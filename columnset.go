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
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// ColumnSet is an unordered set of column ids, the shape PlanNode.OutputColumns
// returns. It is a thin wrapper over a bitset rather than a map so Equals
// and Contains on the small, dense column-id ranges a planner produces do
// not allocate; Add and Union return a set backed by a new bitset.
type ColumnSet struct {
	bits *bitset.BitSet
}

// NewColumnSet builds a ColumnSet containing the given column ids.
func NewColumnSet(cols ...uint32) ColumnSet {
	b := bitset.New(uint(len(cols)))
	for _, c := range cols {
		b.Set(uint(c))
	}
	return ColumnSet{bits: b}
}

// Add returns a new ColumnSet with col added.
func (c ColumnSet) Add(col uint32) ColumnSet {
	return ColumnSet{bits: c.clone().Set(uint(col))}
}

// Contains reports whether col is a member of the set.
func (c ColumnSet) Contains(col uint32) bool {
	if c.bits == nil {
		return false
	}
	return c.bits.Test(uint(col))
}

// Len returns the number of columns in the set.
func (c ColumnSet) Len() int {
	if c.bits == nil {
		return 0
	}
	return int(c.bits.Count())
}

// Union returns the set union of c and o.
func (c ColumnSet) Union(o ColumnSet) ColumnSet {
	if c.bits == nil {
		return o
	}
	if o.bits == nil {
		return c
	}
	return ColumnSet{bits: c.bits.Union(o.bits)}
}

// Equals reports whether c and o contain exactly the same columns. This is
// the check Replace uses to enforce that a group's output columns never
// change out from under its referrers.
func (c ColumnSet) Equals(o ColumnSet) bool {
	switch {
	case c.bits == nil && o.bits == nil:
		return true
	case c.bits == nil:
		return o.bits.None()
	case o.bits == nil:
		return c.bits.None()
	default:
		return c.bits.SymmetricDifferenceCardinality(o.bits) == 0
	}
}

// Columns returns the set's members as a sorted slice.
func (c ColumnSet) Columns() []uint32 {
	if c.bits == nil {
		return nil
	}
	out := make([]uint32, 0, c.bits.Count())
	for i, ok := c.bits.NextSet(0); ok; i, ok = c.bits.NextSet(i + 1) {
		out = append(out, uint32(i))
	}
	return out
}

func (c ColumnSet) clone() *bitset.BitSet {
	if c.bits == nil {
		return bitset.New(0)
	}
	return c.bits.Clone()
}

func (c ColumnSet) String() string {
	cols := c.Columns()
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("%d", col)
	}
	return "(" + strings.Join(parts, ",") + ")"
}
