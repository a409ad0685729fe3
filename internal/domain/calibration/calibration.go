// Package calibration converts a single drill attempt into a 0-100
// calibration score.
//
// The metric rewards alignment between stated confidence and actual
// correctness, not accuracy alone: full confidence on a correct answer
// scores 100, full confidence on a wrong answer scores 0, and zero
// confidence on a wrong answer also scores 100 (the user knew they didn't
// know).
package calibration

import "math"

// Score computes the calibration score for one attempt:
//
//	round((1 - |confidence/100 - correctness|) * 100)
//
// where correctness is 1 if correct and 0 otherwise. Confidence outside
// [0,100] is clamped before scoring; there are no error paths. The result
// is always in [0,100].
func Score(confidencePercent int, isCorrect bool) int {
	confidence := float64(Clamp(confidencePercent)) / 100

	correctness := 0.0
	if isCorrect {
		correctness = 1.0
	}

	return int(math.Round((1 - math.Abs(confidence-correctness)) * 100))
}

// Clamp bounds a confidence value to [0,100].
func Clamp(confidencePercent int) int {
	if confidencePercent < 0 {
		return 0
	}
	if confidencePercent > 100 {
		return 100
	}
	return confidencePercent
}
