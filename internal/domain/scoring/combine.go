package scoring

import (
	"math"

	"github.com/okian/teamfit/internal/domain/model"
)

// Combine merges the dimension scores into one 0..100 score. Weights are
// normalized by their sum; a zero sum is treated as one. Negative, NaN and
// infinite weights count as zero.
func Combine(d model.Dimensions, w model.Weights) int {
	weights := w.Values()
	total := 0.0
	for i, v := range weights {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			weights[i] = 0
			continue
		}
		total += v
	}
	if total == 0 {
		total = 1
	}
	sum := 0.0
	for i, s := range d.Values() {
		sum += float64(s) * (weights[i] / total)
	}
	return clampScore(int(math.Round(sum)))
}
