package ml

import "sort"

// OneHotEncoder maps categorical feature values to columns of a binary
// feature matrix. The mapping is an explicit (feature, category) -> column
// index table; values never seen during fit encode to an all-zero block
// instead of failing.
type OneHotEncoder struct {
	features []string         // input feature names, in order
	index    []map[string]int // per input feature: category -> global column
	names    []string         // expanded column names, e.g. "launch_vehicle=PSLV-C37"
}

// FitOneHot learns the category set of each input feature from rows, where
// each row holds one value per feature in feature order. Categories are
// assigned columns in sorted order so the layout is reproducible.
func FitOneHot(features []string, rows [][]string) *OneHotEncoder {
	enc := &OneHotEncoder{
		features: features,
		index:    make([]map[string]int, len(features)),
	}
	col := 0
	for f := range features {
		seen := make(map[string]bool)
		for _, row := range rows {
			seen[row[f]] = true
		}
		cats := make([]string, 0, len(seen))
		for c := range seen {
			cats = append(cats, c)
		}
		sort.Strings(cats)

		enc.index[f] = make(map[string]int, len(cats))
		for _, c := range cats {
			enc.index[f][c] = col
			enc.names = append(enc.names, features[f]+"="+c)
			col++
		}
	}
	return enc
}

// Width returns the number of expanded columns.
func (e *OneHotEncoder) Width() int { return len(e.names) }

// Names returns the expanded column names in column order.
func (e *OneHotEncoder) Names() []string { return e.names }

// Transform encodes one row of feature values into a binary vector. Unknown
// categories leave their feature's block all zero.
func (e *OneHotEncoder) Transform(row []string) []float64 {
	x := make([]float64, len(e.names))
	for f := range e.features {
		if col, ok := e.index[f][row[f]]; ok {
			x[col] = 1
		}
	}
	return x
}
