package ml

import (
	"math"
	"math/rand"
)

// Forest is a bagged ensemble of CART trees over binary one-hot features.
type Forest struct {
	trees       []*treeNode
	importances []float64
}

// ForestConfig controls forest training.
type ForestConfig struct {
	Trees    int
	MaxDepth int
	Seed     int64
}

// FitForest trains cfg.Trees trees on bootstrap samples of x, each split
// considering sqrt(width) columns. All randomness flows from a single seeded
// generator, so the same input always produces the same forest.
func FitForest(x [][]float64, y []int, width int, cfg ForestConfig) *Forest {
	rng := rand.New(rand.NewSource(cfg.Seed))
	mtry := int(math.Sqrt(float64(width)))
	if mtry < 1 {
		mtry = 1
	}

	f := &Forest{importances: make([]float64, width)}
	n := len(x)
	for t := 0; t < cfg.Trees; t++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		imp := make([]float64, width)
		f.trees = append(f.trees, growTree(x, y, idx, 0, cfg.MaxDepth, mtry, width, rng, imp, n))
		for j, v := range imp {
			f.importances[j] += v
		}
	}

	// Scale summed impurity decreases to a unit total, matching the usual
	// normalized mean-decrease-in-impurity convention.
	total := 0.0
	for _, v := range f.importances {
		total += v
	}
	if total > 0 {
		for j := range f.importances {
			f.importances[j] /= total
		}
	}
	return f
}

// PredictProba returns the mean positive-class fraction across all trees.
func (f *Forest) PredictProba(x []float64) float64 {
	if len(f.trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range f.trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.trees))
}

// Importances returns the normalized per-column feature importances.
func (f *Forest) Importances() []float64 { return f.importances }
