package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSampleTreeSixLeaves ports the 6-leaf equal-weight fixture from
// probability.rs's test_sample_tree: with weights [1,1,1,1,1,1] and B=4, the
// subweights at each internal node should reflect the child-subtree sums.
func TestSampleTreeSixLeaves(t *testing.T) {
	weights := []float64{1, 1, 1, 1, 1, 1}
	keys := []int{0, 1, 2, 3, 4, 5}
	tree := NewSampleTree(weights, keys)

	require.Equal(t, 6.0, tree.total)

	// node 0 has children at 1,2,3,4; child 4 is the implicit (B-1'th) slot.
	// subtree totals: child1=2 (node1 + its leaf child5), child2=1, child3=1.
	assert.Equal(t, 1.0, tree.data[0].weight)
	assert.InDeltaSlice(t, []float64{2, 1, 1}, tree.data[0].subweights[:], 1e-12)

	// node 1 has children at 5 only (index 5 = 4*1+1); slots for which=1,2 are empty leaves.
	assert.Equal(t, 1.0, tree.data[1].weight)
	assert.InDeltaSlice(t, []float64{1, 0, 0}, tree.data[1].subweights[:], 1e-12)

	for _, leafIdx := range []int{2, 3, 4, 5} {
		assert.Equal(t, 1.0, tree.data[leafIdx].weight)
		assert.InDeltaSlice(t, []float64{0, 0, 0}, tree.data[leafIdx].subweights[:], 1e-12)
	}
}

func TestSampleTreeCoverage(t *testing.T) {
	weights := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	keys := []int{0, 1, 2, 3, 4, 5, 6, 7}
	tree := NewSampleTree(weights, keys)

	seen := map[int]bool{}
	for {
		k, ok := tree.Sample()
		if !ok {
			break
		}
		require.False(t, seen[k], "key %d sampled twice", k)
		seen[k] = true
	}
	require.Len(t, seen, len(keys))
	require.Equal(t, 0.0, tree.total)

	tree.Reset()
	require.Equal(t, tree.frozenTotal, tree.total)
	assert.InDelta(t, 31.0, tree.total, 1e-9)
}

func TestSampleTreeDistributionTwoElements(t *testing.T) {
	const trials = 20000
	wA, wB := 3.0, 1.0
	countA := 0
	for i := 0; i < trials; i++ {
		tree := NewSampleTree([]float64{wA, wB}, []string{"a", "b"})
		k, ok := tree.Sample()
		require.True(t, ok)
		if k == "a" {
			countA++
		}
	}
	got := float64(countA) / float64(trials)
	want := wA / (wA + wB)
	assert.InDelta(t, want, got, 0.02)
}

func TestSampleTreeEmpty(t *testing.T) {
	tree := NewSampleTree[int](nil, nil)
	_, ok := tree.Sample()
	require.False(t, ok)
}
