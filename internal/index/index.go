// Package index builds TF-IDF term vectors over a corpus of free-text
// documents and computes cosine similarity between them.
//
// TF-IDF plus cosine is deliberately local and offline: it needs no
// network dependency, is deterministic, and is auditable, in contrast to
// the qualitative signal sourced from the external scoring provider.
package index

import (
	"math"
	"strings"
	"unicode"
)

// Document is one corpus entry: a job description or candidate narrative.
type Document struct {
	ID   string
	Text string
}

// Vector is a sparse TF-IDF vector keyed by term.
type Vector map[string]float64

// Index is an immutable TF-IDF representation of a corpus. Rebuilding on
// catalog changes produces a new Index; readers of an old one are never
// affected.
type Index struct {
	vectors        map[string]Vector // doc id -> tf-idf vector
	docFrequencies map[string]int    // term -> number of docs containing it
	numDocs        int
}

// stopWords is the fixed stop-word set removed during tokenization.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "in": true, "is": true, "it": true, "its": true,
	"of": true, "on": true, "or": true, "our": true, "that": true, "the": true,
	"their": true, "this": true, "to": true, "was": true, "we": true,
	"were": true, "will": true, "with": true, "you": true, "your": true,
}

// Build constructs an index over the given documents. Documents whose text
// tokenizes to nothing are skipped; if none remain, an *EmptyCorpusError
// is returned.
func Build(documents []Document) (*Index, error) {
	tokenized := make(map[string][]string, len(documents))
	var order []string
	for _, doc := range documents {
		tokens := Tokenize(doc.Text)
		if len(tokens) == 0 {
			continue
		}
		tokenized[doc.ID] = tokens
		order = append(order, doc.ID)
	}

	if len(tokenized) == 0 {
		return nil, &EmptyCorpusError{}
	}

	idx := &Index{
		vectors:        make(map[string]Vector, len(tokenized)),
		docFrequencies: make(map[string]int),
		numDocs:        len(tokenized),
	}

	// Document frequency: each term counted once per document.
	for _, tokens := range tokenized {
		seen := make(map[string]bool)
		for _, tok := range tokens {
			if !seen[tok] {
				idx.docFrequencies[tok]++
				seen[tok] = true
			}
		}
	}

	for _, id := range order {
		idx.vectors[id] = idx.vectorize(tokenized[id])
	}

	return idx, nil
}

// Vector returns the stored vector for a document id.
func (idx *Index) Vector(docID string) (Vector, bool) {
	v, ok := idx.vectors[docID]
	return v, ok
}

// Len returns the number of documents in the index.
func (idx *Index) Len() int {
	return idx.numDocs
}

// Vectorize projects new text into the corpus vocabulary. Out-of-vocabulary
// terms are ignored; fully unseen text yields an empty vector, which is a
// valid degenerate result (similarity 0 against everything).
func (idx *Index) Vectorize(text string) Vector {
	tokens := Tokenize(text)
	inVocab := tokens[:0]
	for _, tok := range tokens {
		if idx.docFrequencies[tok] > 0 {
			inVocab = append(inVocab, tok)
		}
	}
	return idx.vectorize(inVocab)
}

// vectorize converts tokens into a TF-IDF weighted vector.
//   - TF: normalized term frequency within the token list.
//   - IDF: smoothed log scaling, log(1 + N/(1+df)).
func (idx *Index) vectorize(tokens []string) Vector {
	vector := make(Vector)
	if len(tokens) == 0 {
		return vector
	}

	tf := make(map[string]float64)
	for _, tok := range tokens {
		tf[tok]++
	}
	numTokens := float64(len(tokens))

	for tok, count := range tf {
		idf := math.Log(1 + float64(idx.numDocs)/(1+float64(idx.docFrequencies[tok])))
		vector[tok] = (count / numTokens) * idf
	}
	return vector
}

// CosineSimilarity computes cosine similarity between two sparse vectors.
// Returns a value in [0,1]; 0 when either vector has zero magnitude.
func CosineSimilarity(a, b Vector) float64 {
	// Iterate the smaller vector for the dot product.
	if len(b) < len(a) {
		a, b = b, a
	}

	dot := 0.0
	for term, x := range a {
		if y, ok := b[term]; ok {
			dot += x * y
		}
	}

	normA, normB := 0.0, 0.0
	for _, x := range a {
		normA += x * x
	}
	for _, y := range b {
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Guard against floating drift just over 1.
	if sim > 1.0 {
		sim = 1.0
	}
	if sim < 0 {
		sim = 0
	}
	return sim
}

// Tokenize lowercases text, strips punctuation, and drops stop words and
// single-character fragments.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var tokens []string
	for _, f := range fields {
		if len(f) < 2 || stopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
