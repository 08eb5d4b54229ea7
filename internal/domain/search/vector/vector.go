// Package vector builds sparse TF-IDF term vectors over a product corpus
// and scores them with cosine similarity. Vectors are rebuilt from the
// corpus passed to each call and never cached, so IDF statistics are
// always relative to the current candidate set.
package vector

import (
	"math"

	"github.com/kailas-cloud/shoprank/internal/domain/catalog"
	"github.com/kailas-cloud/shoprank/internal/domain/search/token"
)

// Document is a sparse TF-IDF vector with its precomputed magnitude.
type Document struct {
	Terms     map[string]float64
	Magnitude float64
}

// DocumentText returns the text a product is vectorized from: title plus
// tags. Description is intentionally excluded; it participates only in
// raw substring search upstream.
func DocumentText(p *catalog.Product) string {
	text := p.Title()
	for _, tag := range p.Tags() {
		text += " " + tag
	}
	return text
}

// Build computes a TF-IDF vector per product over the given corpus.
// A corpus of size 1 yields ln(1/1)=0 for every term, i.e. an all-zero
// vector with magnitude 0; callers rely on Cosine handling that safely.
func Build(products []catalog.Product) map[string]Document {
	docs := make([][]string, len(products))
	for i := range products {
		docs[i] = token.Tokenize(DocumentText(&products[i]))
	}

	idf := inverseDocumentFrequency(docs)

	vectors := make(map[string]Document, len(products))
	for i := range products {
		tf := termFrequency(docs[i])
		terms := make(map[string]float64, len(tf))
		for term, freq := range tf {
			terms[term] = freq * idf[term]
		}
		vectors[products[i].ID()] = Document{
			Terms:     terms,
			Magnitude: magnitude(terms),
		}
	}
	return vectors
}

// termFrequency counts tokens and normalizes by document length.
func termFrequency(tokens []string) map[string]float64 {
	if len(tokens) == 0 {
		return nil
	}
	tf := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	total := float64(len(tokens))
	for term, count := range tf {
		tf[term] = count / total
	}
	return tf
}

// inverseDocumentFrequency computes ln(totalDocs/df) per term.
func inverseDocumentFrequency(docs [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	total := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log(total / float64(count))
	}
	return idf
}

func magnitude(terms map[string]float64) float64 {
	var sum float64
	for _, w := range terms {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of two documents in [0,1].
// Term weights are never negative, so the dot product cannot be either.
// A zero-magnitude vector is treated as unrelated (similarity 0) rather
// than an error.
func Cosine(a, b Document) float64 {
	if a.Magnitude == 0 || b.Magnitude == 0 {
		return 0
	}
	var dot float64
	for term, wa := range a.Terms {
		if wb, ok := b.Terms[term]; ok {
			dot += wa * wb
		}
	}
	return dot / (a.Magnitude * b.Magnitude)
}
