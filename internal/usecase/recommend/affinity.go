package recommend

import (
	"sort"

	"github.com/kailas-cloud/shoprank/internal/domain/behavior"
	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
)

// tagAffinity aggregates action-weighted tag scores across the products
// touched by a user's history window.
func tagAffinity(events []behavior.Event, productsByID map[string]catalog.Product) map[string]int {
	affinity := make(map[string]int)
	for i := range events {
		p, ok := productsByID[events[i].ProductID()]
		if !ok {
			continue
		}
		weight := events[i].Action().Weight()
		for _, tag := range p.Tags() {
			affinity[tag] += weight
		}
	}
	return affinity
}

// topTags returns the n highest-affinity tags. Ties break on tag name so
// the selection is deterministic.
func topTags(affinity map[string]int, n int) []string {
	tags := make([]string, 0, len(affinity))
	for tag := range affinity {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if affinity[tags[i]] != affinity[tags[j]] {
			return affinity[tags[i]] > affinity[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}
