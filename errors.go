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

import "gopkg.in/src-d/go-errors.v1"

// All Memo failures are fatal and non-retriable: a bad group id, a rule
// that would change a group's output columns, or an accounting mismatch
// all indicate a programmer error in a collaborator or in Memo itself.
// There is no local recovery path.
var (
	// ErrInvalidGroup is returned when a group id does not name a group
	// currently in the store.
	ErrInvalidGroup = errors.NewKind("memo: unknown group %d")

	// ErrOutputColumnsChanged is returned when Replace's new member would
	// produce a different output-column set than the group's current
	// member, for the given reason.
	ErrOutputColumnsChanged = errors.NewKind("memo: replace on group %d (reason %q) would change output columns: had %s, got %s")

	// ErrInvariantViolation is returned for internal accounting mismatches:
	// a missing back-edge during decrement, a child-count mismatch from
	// ReplaceChildren, or deletion of a group that still has incoming
	// references.
	ErrInvariantViolation = errors.NewKind("memo: invariant violation: %s")

	// ErrStatsNull is returned when StoreStats is called with a nil
	// estimate.
	ErrStatsNull = errors.NewKind("memo: storeStats called with a nil estimate for group %d")

	// ErrDeleteWithReferences is returned if deleteGroup is ever invoked
	// on a group whose incoming multiset is not empty.
	ErrDeleteWithReferences = errors.NewKind("memo: cannot delete group %d with %d incoming reference(s)")
)
