package ml

import "math/rand"

// treeNode is one node of a fitted decision tree over binary features.
// Internal nodes split on a single column: zero goes left, one goes right.
// Leaves carry the positive-label fraction of their training rows.
type treeNode struct {
	feature     int // -1 on leaves
	left, right *treeNode
	prob        float64
}

// growTree fits a CART tree with gini impurity on the rows selected by idx
// (a bootstrap sample, indices may repeat). At each split mtry randomly
// chosen columns are examined. Impurity decreases are accumulated into imp,
// weighted by each node's share of the sample, which yields the
// mean-decrease-in-impurity feature importances after training.
func growTree(x [][]float64, y []int, idx []int, depth, maxDepth, mtry, width int, rng *rand.Rand, imp []float64, nTotal int) *treeNode {
	n := len(idx)
	pos := 0
	for _, i := range idx {
		pos += y[i]
	}
	node := &treeNode{feature: -1, prob: float64(pos) / float64(n)}
	if depth >= maxDepth || pos == 0 || pos == n || n < 2 {
		return node
	}

	parentGini := gini(pos, n)
	bestGain := 0.0
	bestFeature := -1
	for _, f := range rng.Perm(width)[:mtry] {
		nl, posl := 0, 0
		for _, i := range idx {
			if x[i][f] < 0.5 {
				nl++
				posl += y[i]
			}
		}
		nr := n - nl
		if nl == 0 || nr == 0 {
			continue
		}
		posr := pos - posl
		gain := parentGini - (float64(nl)*gini(posl, nl)+float64(nr)*gini(posr, nr))/float64(n)
		if gain > bestGain+1e-12 {
			bestGain = gain
			bestFeature = f
		}
	}
	if bestFeature < 0 {
		return node
	}

	imp[bestFeature] += float64(n) / float64(nTotal) * bestGain

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if x[i][bestFeature] < 0.5 {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	node.feature = bestFeature
	node.left = growTree(x, y, leftIdx, depth+1, maxDepth, mtry, width, rng, imp, nTotal)
	node.right = growTree(x, y, rightIdx, depth+1, maxDepth, mtry, width, rng, imp, nTotal)
	return node
}

// gini returns the binary gini impurity 2p(1-p) for pos positives out of n.
func gini(pos, n int) float64 {
	p := float64(pos) / float64(n)
	return 2 * p * (1 - p)
}

// predict walks the tree and returns the leaf's positive fraction.
func (t *treeNode) predict(x []float64) float64 {
	for t.feature >= 0 {
		if x[t.feature] < 0.5 {
			t = t.left
		} else {
			t = t.right
		}
	}
	return t.prob
}
