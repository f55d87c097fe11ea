// Package sampling implements reservoir sampling and the SampleTree
// weighted sample-without-replacement structure, grounded on
// original_source/app/native/app_native/src/probability.rs.
package sampling

import (
	"container/heap"
	"math"
	"math/rand/v2"
)

// Unweighted draws an unordered sample of size min(k, len(src)) from src,
// with each element equally likely, using Algorithm L (exponential-skip).
func Unweighted[T any](src []T, k int) []T {
	if k <= 0 || len(src) == 0 {
		return nil
	}
	if k >= len(src) {
		out := make([]T, len(src))
		copy(out, src)
		return out
	}

	reservoir := make([]T, k)
	copy(reservoir, src[:k])

	w := math.Exp(math.Log(rand.Float64()) / float64(k))
	i := k - 1
	for i < len(src) {
		i += int(math.Floor(math.Log(rand.Float64())/math.Log(1-w))) + 1
		if i < len(src) {
			reservoir[rand.IntN(k)] = src[i]
			w *= math.Exp(math.Log(rand.Float64()) / float64(k))
		}
	}
	return reservoir
}

// weightedItem is a heap element for A-Res: key = -ln(u)/w(e), we keep the k
// smallest keys, so the heap is a max-heap (largest key pops first).
type weightedItem[T any] struct {
	key   float64
	value T
}

type weightedHeap[T any] []weightedItem[T]

func (h weightedHeap[T]) Len() int            { return len(h) }
func (h weightedHeap[T]) Less(i, j int) bool  { return h[i].key > h[j].key } // max-heap by key
func (h weightedHeap[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *weightedHeap[T]) Push(x interface{}) { *h = append(*h, x.(weightedItem[T])) }
func (h *weightedHeap[T]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Weighted draws a sample of size min(k, len(src)) via A-Res: for each
// element draw u in (0,1), key = -ln(u)/w(e), keep the k smallest keys.
// weight must return a strictly positive, finite value for every element
// that must be eligible for inclusion.
func Weighted[T any](src []T, k int, weight func(T) float64) []T {
	if k <= 0 || len(src) == 0 {
		return nil
	}
	if k >= len(src) {
		out := make([]T, len(src))
		copy(out, src)
		return out
	}

	h := make(weightedHeap[T], 0, k)
	heap.Init(&h)
	for _, v := range src {
		u := rand.Float64()
		key := -math.Log(u) / weight(v)
		if h.Len() < k {
			heap.Push(&h, weightedItem[T]{key: key, value: v})
		} else if key < h[0].key {
			heap.Pop(&h)
			heap.Push(&h, weightedItem[T]{key: key, value: v})
		}
	}

	out := make([]T, h.Len())
	for i := range out {
		out[i] = h[i].value
	}
	return out
}
