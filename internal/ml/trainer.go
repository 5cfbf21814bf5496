package ml

import (
	"errors"
	"math/rand"
	"sort"

	"missionlens/internal/dataset"
)

// featureColumns are the two categorical model inputs, in encoder order.
var featureColumns = []string{"launch_vehicle", "orbit_type"}

// TrainConfig controls model training. The zero value selects the defaults:
// 100 trees, depth 12, seed 42, matching the exploratory model this service
// was built around.
type TrainConfig struct {
	Trees    int
	MaxDepth int
	Seed     int64
}

func (c TrainConfig) withDefaults() TrainConfig {
	if c.Trees == 0 {
		c.Trees = 100
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = 12
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	return c
}

// Model is the trained-model state: fitted encoder, forest, and held-out
// metrics. It is built once per process and read-only afterwards.
type Model struct {
	encoder     *OneHotEncoder
	forest      *Forest
	metrics     Metrics
	hasPositive bool
}

// Train fits the success classifier on the engineered dataset. The 80/20
// split is stratified by label and derived from the seed, so repeated runs
// on the same dataset produce identical metrics.
func Train(data dataset.Dataset, cfg TrainConfig) (*Model, error) {
	cfg = cfg.withDefaults()
	if data.Empty() {
		return nil, errors.New("training requires a non-empty dataset")
	}

	rows := make([][]string, len(data))
	y := make([]int, len(data))
	for i, m := range data {
		rows[i] = []string{m.Vehicle, m.Orbit}
		y[i] = m.Success
	}

	enc := FitOneHot(featureColumns, rows)
	x := make([][]float64, len(rows))
	for i, row := range rows {
		x[i] = enc.Transform(row)
	}

	trainIdx, testIdx := stratifiedSplit(y, 0.2, cfg.Seed)
	trainX, trainY := gather(x, y, trainIdx)
	testX, testY := gather(x, y, testIdx)

	forest := FitForest(trainX, trainY, enc.Width(), ForestConfig{
		Trees:    cfg.Trees,
		MaxDepth: cfg.MaxDepth,
		Seed:     cfg.Seed,
	})

	probs := make([]float64, len(testX))
	for i := range testX {
		probs[i] = forest.PredictProba(testX[i])
	}

	hasPositive := false
	for _, label := range trainY {
		if label == 1 {
			hasPositive = true
			break
		}
	}

	return &Model{
		encoder:     enc,
		forest:      forest,
		metrics:     Evaluate(probs, testY),
		hasPositive: hasPositive,
	}, nil
}

// Predict returns the estimated success probability for a (vehicle, orbit)
// pair. Strings never seen at training time encode to zeros and still yield
// a valid probability.
func (m *Model) Predict(vehicle, orbit string) float64 {
	if !m.hasPositive {
		// The positive class was never observed in training, so it has no
		// probability mass.
		return 0.0
	}
	return m.forest.PredictProba(m.encoder.Transform([]string{vehicle, orbit}))
}

// Metrics returns the held-out evaluation metrics.
func (m *Model) Metrics() Metrics { return m.metrics }

// FeatureWeight is one ranked entry of the importance report. The JSON keys
// are part of the dashboard contract.
type FeatureWeight struct {
	Feature    string  `json:"Feature"`
	Importance float64 `json:"Importance"`
}

// Importances returns up to the ten most influential one-hot columns,
// descending by weight.
func (m *Model) Importances() []FeatureWeight {
	imp := m.forest.Importances()
	names := m.encoder.Names()
	weights := make([]FeatureWeight, len(imp))
	for i := range imp {
		weights[i] = FeatureWeight{Feature: names[i], Importance: imp[i]}
	}
	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Importance > weights[j].Importance
	})
	if len(weights) > 10 {
		weights = weights[:10]
	}
	return weights
}

// stratifiedSplit partitions indices into train/test, sampling the test set
// from each class separately so the split preserves class balance. The
// seeded shuffle makes the partition identical across runs.
func stratifiedSplit(y []int, testFrac float64, seed int64) (train, test []int) {
	rng := rand.New(rand.NewSource(seed))
	byClass := make(map[int][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	for _, label := range []int{0, 1} {
		idx := byClass[label]
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		nTest := int(float64(len(idx)) * testFrac)
		test = append(test, idx[:nTest]...)
		train = append(train, idx[nTest:]...)
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test
}

func gather(x [][]float64, y []int, idx []int) ([][]float64, []int) {
	gx := make([][]float64, len(idx))
	gy := make([]int, len(idx))
	for i, j := range idx {
		gx[i] = x[j]
		gy[i] = y[j]
	}
	return gx, gy
}
