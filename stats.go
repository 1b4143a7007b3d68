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

// GetStats returns group g's cached statistics estimate, if any. The bool
// result reports presence, the same shape as a comma-ok map lookup.
func (m *Memo) GetStats(g GroupId) (any, bool, error) {
	rec, err := m.s.lookup(g)
	if err != nil {
		return nil, false, err
	}
	return rec.stats, rec.stats != nil, nil
}

// StoreStats caches est for group g. If g already carries an estimate,
// the old estimate and every ancestor's cached estimate are evicted first
// — storing a new value for g invalidates the same set of ancestors a
// Replace on g would, since from the cache's point of view it is the same
// kind of change.
func (m *Memo) StoreStats(g GroupId, est any) error {
	if est == nil {
		return ErrStatsNull.New(g)
	}
	rec, err := m.s.lookup(g)
	if err != nil {
		return err
	}
	if rec.stats != nil {
		if err := m.evictStatistics(g); err != nil {
			return err
		}
	}
	rec.stats = est
	m.statsStores++

	m.log.WithField("group", g).Debug("memo: stored stats")

	return nil
}

// evictStatistics clears group g's cached estimate and recurses into
// every parent in g's incoming multiset (other than RootSentinel). A
// visited set bounds the walk to one evict per group even when the group
// graph has diamonds, turning the worst case from O(V*E) into O(V+E).
func (m *Memo) evictStatistics(g GroupId) error {
	return m.evictStatisticsVisited(g, make(map[GroupId]bool))
}

func (m *Memo) evictStatisticsVisited(g GroupId, visited map[GroupId]bool) error {
	if visited[g] {
		return nil
	}
	visited[g] = true

	rec, err := m.s.lookup(g)
	if err != nil {
		return err
	}
	if rec.stats != nil {
		rec.stats = nil
		m.statsEvictions++
	}

	for p := range rec.incoming {
		if p == RootSentinel {
			continue
		}
		if err := m.evictStatisticsVisited(p, visited); err != nil {
			return err
		}
	}
	return nil
}

// CacheStatsSummary reports lifetime stats-cache churn: how many
// StoreStats calls have happened, how many individual group evictions
// they and Replace have triggered, and how many groups currently hold a
// live estimate.
type CacheStatsSummary struct {
	Stores    int
	Evictions int
	Live      int
}

// CacheStats summarizes the statistics cache's current state and
// lifetime churn, for an operator watching cache effectiveness rather
// than instrumenting the optimizer loop itself.
func (m *Memo) CacheStats() CacheStatsSummary {
	live := 0
	for _, rec := range m.s.groups {
		if rec.stats != nil {
			live++
		}
	}
	summary := CacheStatsSummary{
		Stores:    m.statsStores,
		Evictions: m.statsEvictions,
		Live:      live,
	}
	m.log.WithFields(logrus.Fields{
		"stores":    summary.Stores,
		"evictions": summary.Evictions,
		"live":      summary.Live,
	}).Debug("memo: cache stats snapshot")
	return summary
}
