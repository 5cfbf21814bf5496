package ml

import (
	"fmt"
	"reflect"
	"testing"

	"missionlens/internal/dataset"
)

func ptr(s string) *string { return &s }

// trainingData builds an engineered dataset with n records cycling through a
// few vehicle/orbit pairs. Every fifth PSLV mission and every GSLV GTO
// mission fails, so both classes are present.
func trainingData(t *testing.T, n int) dataset.Dataset {
	t.Helper()
	raws := make([]dataset.Raw, n)
	for i := 0; i < n; i++ {
		vehicle, orbit := "PSLV-C10", "SSPO"
		outcome := "Launch Successful"
		switch i % 4 {
		case 1:
			vehicle, orbit = "GSLV Mk II", "GTO"
			if i%8 == 1 {
				outcome = "Launch Unsuccessful"
			}
		case 2:
			vehicle, orbit = "PSLV-C20", "LEO"
		case 3:
			vehicle, orbit = "SLV-3", "LEO"
			if i%20 == 3 {
				outcome = "Launch Unsuccessful"
			}
		}
		date := fmt.Sprintf("%04d-01-01", 1980+i%40)
		raws[i] = dataset.Raw{
			Vehicle:     ptr(vehicle),
			Orbit:       ptr(orbit),
			Application: ptr("Earth Observation"),
			Outcome:     ptr(outcome),
			Site:        ptr("SHAR"),
			LaunchDate:  ptr(date),
		}
	}
	data, err := dataset.Engineer(raws)
	if err != nil {
		t.Fatalf("engineering training data: %v", err)
	}
	return data
}

func TestTrainEmptyDataset(t *testing.T) {
	_, err := Train(dataset.Dataset{}, TrainConfig{})
	if err == nil {
		t.Fatal("expected error on empty dataset")
	}
}

func TestTrainIsDeterministic(t *testing.T) {
	data := trainingData(t, 60)

	a, err := Train(data, TrainConfig{})
	if err != nil {
		t.Fatalf("first training run: %v", err)
	}
	b, err := Train(data, TrainConfig{})
	if err != nil {
		t.Fatalf("second training run: %v", err)
	}

	if a.Metrics() != b.Metrics() {
		t.Errorf("metrics differ across runs:\n%+v\n%+v", a.Metrics(), b.Metrics())
	}
	if !reflect.DeepEqual(a.Importances(), b.Importances()) {
		t.Error("importances differ across runs")
	}
	if pa, pb := a.Predict("PSLV-C10", "SSPO"), b.Predict("PSLV-C10", "SSPO"); pa != pb {
		t.Errorf("predictions differ across runs: %v vs %v", pa, pb)
	}
}

func TestPredictProbabilityBounds(t *testing.T) {
	model, err := Train(trainingData(t, 60), TrainConfig{})
	if err != nil {
		t.Fatalf("training: %v", err)
	}

	cases := [][2]string{
		{"PSLV-C10", "SSPO"},
		{"GSLV Mk II", "GTO"},
		{"Never Seen Vehicle", "SSPO"},
		{"PSLV-C10", "Never Seen Orbit"},
		{"Never Seen Vehicle", "Never Seen Orbit"},
	}
	for _, c := range cases {
		p := model.Predict(c[0], c[1])
		if p < 0 || p > 1 {
			t.Errorf("Predict(%q, %q) = %v, out of [0,1]", c[0], c[1], p)
		}
	}
}

func TestPredictReflectsTrainingSignal(t *testing.T) {
	model, err := Train(trainingData(t, 80), TrainConfig{})
	if err != nil {
		t.Fatalf("training: %v", err)
	}

	reliable := model.Predict("PSLV-C10", "SSPO")
	shaky := model.Predict("GSLV Mk II", "GTO")
	if reliable <= shaky {
		t.Errorf("expected PSLV (%v) to score above GSLV (%v)", reliable, shaky)
	}
}

func TestPredictAllFailureTrainingData(t *testing.T) {
	raws := make([]dataset.Raw, 10)
	for i := range raws {
		raws[i] = dataset.Raw{
			Vehicle:     ptr("PSLV-C1"),
			Orbit:       ptr("SSPO"),
			Application: ptr("EO"),
			Outcome:     ptr("Launch Unsuccessful"),
			Site:        ptr("SHAR"),
			LaunchDate:  ptr(fmt.Sprintf("%04d-01-01", 2000+i)),
		}
	}
	data, err := dataset.Engineer(raws)
	if err != nil {
		t.Fatalf("engineering: %v", err)
	}

	model, err := Train(data, TrainConfig{})
	if err != nil {
		t.Fatalf("training: %v", err)
	}
	if p := model.Predict("PSLV-C1", "SSPO"); p != 0 {
		t.Errorf("all-failure training data should predict 0.0, got %v", p)
	}
	// Single-class test split reports the neutral AUC.
	if auc := model.Metrics().ROCAUC; auc != 0.5 {
		t.Errorf("single-class ROC-AUC = %v, want 0.5", auc)
	}
}

func TestImportancesRankedAndBounded(t *testing.T) {
	model, err := Train(trainingData(t, 60), TrainConfig{})
	if err != nil {
		t.Fatalf("training: %v", err)
	}

	weights := model.Importances()
	if len(weights) == 0 {
		t.Fatal("expected some importances")
	}
	if len(weights) > 10 {
		t.Errorf("expected at most 10 entries, got %d", len(weights))
	}
	for i := 1; i < len(weights); i++ {
		if weights[i-1].Importance < weights[i].Importance {
			t.Errorf("importances not descending at %d", i)
		}
	}
	for _, fw := range weights {
		if fw.Importance < 0 {
			t.Errorf("%s: negative importance %v", fw.Feature, fw.Importance)
		}
	}
}

func TestStratifiedSplitPreservesBalance(t *testing.T) {
	y := make([]int, 100)
	for i := range y {
		if i < 90 {
			y[i] = 1
		}
	}

	train, test := stratifiedSplit(y, 0.2, 42)
	if len(train)+len(test) != 100 {
		t.Fatalf("split sizes %d+%d != 100", len(train), len(test))
	}

	testPos := 0
	for _, i := range test {
		testPos += y[i]
	}
	// 20% of each class: 18 positives, 2 negatives.
	if testPos != 18 || len(test) != 20 {
		t.Errorf("test split has %d positives of %d, want 18 of 20", testPos, len(test))
	}

	// Same seed, same partition.
	train2, test2 := stratifiedSplit(y, 0.2, 42)
	if !reflect.DeepEqual(train, train2) || !reflect.DeepEqual(test, test2) {
		t.Error("split not reproducible for a fixed seed")
	}
}

func TestStratifiedSplitDisjoint(t *testing.T) {
	y := []int{1, 1, 1, 1, 0, 0, 1, 1, 1, 0}
	train, test := stratifiedSplit(y, 0.2, 42)

	seen := make(map[int]bool)
	for _, i := range append(append([]int{}, train...), test...) {
		if seen[i] {
			t.Fatalf("index %d appears twice", i)
		}
		seen[i] = true
	}
	if len(seen) != len(y) {
		t.Errorf("split covers %d of %d indices", len(seen), len(y))
	}
}
