package ops

import "github.com/vortex/wordcore/internal/model"

// ApplyBatch applies every operation in batch in order, committing only if
// all succeed. On the first failure it returns the original document
// unchanged — spec.md §4.3's "a batch either commits completely or rolls
// back completely." On success it also returns the inverse batch, ready to
// replay (in the order returned) to undo the whole batch.
func ApplyBatch(doc *model.Document, batch Batch) (*model.Document, Batch, error) {
	cur := doc
	inverses := make(Batch, 0, len(batch))
	for _, op := range batch {
		inv, err := Invert(cur, op)
		if err != nil {
			return doc, nil, err
		}
		next, err := Apply(cur, op)
		if err != nil {
			return doc, nil, err
		}
		inverses = append(inverses, inv)
		cur = next
	}
	reversed := make(Batch, len(inverses))
	for i, inv := range inverses {
		reversed[len(inverses)-1-i] = inv
	}
	return cur, reversed, nil
}
