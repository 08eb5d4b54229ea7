package recommend

import (
	"sort"

	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
	"github.com/kailas-cloud/shoprank/internal/domain/search/vector"
)

// scoredProduct pairs a product id with its similarity score.
type scoredProduct struct {
	productID  string
	similarity float64
}

// findSimilar ranks the corpus against the target product by TF-IDF
// cosine similarity. The target itself is excluded; ties keep corpus
// order. An unknown target yields an empty result, not an error.
func findSimilar(
	targetID string, corpus []catalog.Product,
	vectors map[string]vector.Document, limit int,
) []scoredProduct {
	target, ok := vectors[targetID]
	if !ok {
		return nil
	}

	scored := make([]scoredProduct, 0, len(corpus))
	for i := range corpus {
		id := corpus[i].ID()
		if id == targetID {
			continue
		}
		scored = append(scored, scoredProduct{
			productID:  id,
			similarity: vector.Cosine(target, vectors[id]),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].similarity > scored[j].similarity
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
