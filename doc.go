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

// Package memo implements a mutable, reference-counted interning store for
// an immutable query plan tree.
//
// A query optimizer repeatedly rewrites small subtrees of a plan. Because
// plan nodes are immutable, a naive in-place replacement of a deep subtree
// would force the rewriter to reconstruct every ancestor back to the root.
// Memo avoids that by interning each node into a numbered group and
// replacing its children with symbolic group references; a rewrite rule
// only has to call Replace on the group it changed. Statistics cached per
// group are invalidated transitively whenever a descendant changes.
//
// Memo treats plan nodes as opaque values implementing PlanNode. It knows
// nothing about the operator algebra, the rewrite rules that drive it, or
// how statistics are computed; those are the caller's concerns.
package memo
