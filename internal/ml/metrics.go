package ml

import "sort"

// Metrics holds classifier evaluation results on the held-out split. The
// JSON keys are part of the dashboard contract.
type Metrics struct {
	Accuracy  float64 `json:"Accuracy"`
	Precision float64 `json:"Precision"`
	Recall    float64 `json:"Recall"`
	F1        float64 `json:"F1-Score"`
	ROCAUC    float64 `json:"ROC-AUC"`
}

// Evaluate scores predicted probabilities against true labels at a 0.5
// threshold. Ratios with a zero denominator report as 0. ROC-AUC reports a
// neutral 0.5 when the split contains a single class.
func Evaluate(probs []float64, y []int) Metrics {
	var tp, fp, tn, fn int
	for i, p := range probs {
		pred := 0
		if p >= 0.5 {
			pred = 1
		}
		switch {
		case pred == 1 && y[i] == 1:
			tp++
		case pred == 1 && y[i] == 0:
			fp++
		case pred == 0 && y[i] == 0:
			tn++
		default:
			fn++
		}
	}

	m := Metrics{ROCAUC: 0.5}
	if n := len(y); n > 0 {
		m.Accuracy = float64(tp+tn) / float64(n)
	}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	if auc, ok := rocAUC(probs, y); ok {
		m.ROCAUC = auc
	}
	return m
}

// rocAUC computes the area under the ROC curve via the rank-sum
// formulation, averaging ranks across tied scores. Returns false when only
// one class is present.
func rocAUC(probs []float64, y []int) (float64, bool) {
	n := len(probs)
	pos, neg := 0, 0
	for _, label := range y {
		if label == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 0, false
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return probs[order[a]] < probs[order[b]] })

	// Walk tie groups, assigning each member the group's average rank.
	rankSum := 0.0
	i := 0
	for i < n {
		j := i
		for j < n && probs[order[j]] == probs[order[i]] {
			j++
		}
		avgRank := float64(i+j+1) / 2 // ranks are 1-based
		for k := i; k < j; k++ {
			if y[order[k]] == 1 {
				rankSum += avgRank
			}
		}
		i = j
	}

	p := float64(pos)
	return (rankSum - p*(p+1)/2) / (p * float64(neg)), true
}
