package sampling

import "math/rand/v2"

// branching is the B-ary factor of the SampleTree, matching the reference
// implementation's B=4.
const branching = 4

type treeNode[T any] struct {
	weight     float64
	key        T
	subweights [branching - 1]float64
}

// SampleTree is a flat-array B-ary weighted sampler supporting O(log n)
// sample-without-replacement and O(n) reset over a fixed multiset of
// (weight, key) leaves.
type SampleTree[T any] struct {
	data  []treeNode[T]
	total float64

	frozenData  []treeNode[T]
	frozenTotal float64
}

// NewSampleTree builds a tree from leaves in input order. Every weight must
// be finite and non-negative.
func NewSampleTree[T any](weights []float64, keys []T) *SampleTree[T] {
	n := len(weights)
	data := make([]treeNode[T], n)
	for i := range data {
		data[i].weight = weights[i]
		data[i].key = keys[i]
	}

	subtreeTotal := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		w := data[i].weight
		for which := 0; which < branching; which++ {
			child := branching*i + which + 1
			if child < n {
				w += subtreeTotal[child]
			}
		}
		subtreeTotal[i] = w
		for which := 0; which < branching-1; which++ {
			child := branching*i + which + 1
			if child < n {
				data[i].subweights[which] = subtreeTotal[child]
			}
		}
	}

	total := 0.0
	if n > 0 {
		total = subtreeTotal[0]
	}

	frozen := make([]treeNode[T], n)
	copy(frozen, data)

	return &SampleTree[T]{
		data:        data,
		total:       total,
		frozenData:  frozen,
		frozenTotal: total,
	}
}

// Sample draws without replacement, returning false once every leaf has been
// taken (total == 0).
func (t *SampleTree[T]) Sample() (T, bool) {
	var zero T
	if t.total <= 0 || len(t.data) == 0 {
		return zero, false
	}

	r := rand.Float64() * t.total
	i := 0
	for {
		if r <= t.data[i].weight {
			key := t.data[i].key
			delta := t.data[i].weight
			t.data[i].weight = 0
			t.total -= delta

			curr := i
			for curr > 0 {
				which := (curr - 1) % branching
				parent := (curr - 1) / branching
				if which < branching-1 {
					t.data[parent].subweights[which] -= delta
				}
				curr = parent
			}
			return key, true
		}
		r -= t.data[i].weight

		next := -1
		for which := 0; which < branching-1; which++ {
			if r <= t.data[i].subweights[which] {
				next = branching*i + which + 1
				break
			}
			r -= t.data[i].subweights[which]
		}
		if next == -1 {
			next = branching*i + branching
		}
		i = next
	}
}

// Reset restores the tree to its frozen (post-construction) snapshot.
func (t *SampleTree[T]) Reset() {
	copy(t.data, t.frozenData)
	t.total = t.frozenTotal
}

// Total returns the tree's current live weight.
func (t *SampleTree[T]) Total() float64 { return t.total }
