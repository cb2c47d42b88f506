package anomaly

import (
	"math"
	"math/rand"
)

// Minimal isolation forest over plain float feature rows. Scores follow
// the usual 2^(-E[h(x)]/c(n)) normalization, so values near 1 mean the row
// was isolated after very few random splits. All randomness flows through
// the caller-supplied source, which keeps scoring reproducible for a fixed
// seed.

type treeNode struct {
	left, right *treeNode
	splitAttr   int
	splitValue  float64
	size        int // external nodes only
}

type forest struct {
	trees      []*treeNode
	sampleSize int
}

func buildForest(data [][]float64, trees, sampleSize int, rng *rand.Rand) *forest {
	if sampleSize > len(data) {
		sampleSize = len(data)
	}
	f := &forest{sampleSize: sampleSize}
	maxDepth := int(math.Ceil(math.Log2(float64(sampleSize))))
	for i := 0; i < trees; i++ {
		f.trees = append(f.trees, buildTree(sampleRows(data, sampleSize, rng), 0, maxDepth, rng))
	}
	return f
}

func sampleRows(data [][]float64, n int, rng *rand.Rand) [][]float64 {
	sample := make([][]float64, n)
	for i, j := range rng.Perm(len(data))[:n] {
		sample[i] = data[j]
	}
	return sample
}

func buildTree(data [][]float64, depth, maxDepth int, rng *rand.Rand) *treeNode {
	if depth >= maxDepth || len(data) <= 1 {
		return &treeNode{size: len(data)}
	}

	attr := rng.Intn(len(data[0]))
	lo, hi := data[0][attr], data[0][attr]
	for _, row := range data[1:] {
		if row[attr] < lo {
			lo = row[attr]
		}
		if row[attr] > hi {
			hi = row[attr]
		}
	}
	if lo == hi {
		return &treeNode{size: len(data)}
	}

	split := lo + rng.Float64()*(hi-lo)
	var left, right [][]float64
	for _, row := range data {
		if row[attr] < split {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}
	return &treeNode{
		splitAttr:  attr,
		splitValue: split,
		left:       buildTree(left, depth+1, maxDepth, rng),
		right:      buildTree(right, depth+1, maxDepth, rng),
	}
}

func (f *forest) score(row []float64) float64 {
	var sum float64
	for _, t := range f.trees {
		sum += pathLength(t, row, 0)
	}
	avg := sum / float64(len(f.trees))
	return math.Pow(2, -avg/avgPathLength(f.sampleSize))
}

func pathLength(n *treeNode, row []float64, depth int) float64 {
	if n.left == nil {
		return float64(depth) + avgPathLength(n.size)
	}
	if row[n.splitAttr] < n.splitValue {
		return pathLength(n.left, row, depth+1)
	}
	return pathLength(n.right, row, depth+1)
}

const eulerMascheroni = 0.5772156649

// avgPathLength is c(n): the expected path length of an unsuccessful
// search in a binary search tree over n points.
func avgPathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	fn := float64(n)
	return 2*(math.Log(fn-1)+eulerMascheroni) - 2*(fn-1)/fn
}
