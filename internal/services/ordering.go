package services

// Rank keys are plain real numbers: moving an item rewrites one row, never
// a contiguous range. New rows append at the end (max existing rank + 1)
// when the caller does not supply a rank.

// RankBetween returns a rank strictly between two sibling rank keys.
func RankBetween(lo, hi float64) float64 {
	return lo + (hi-lo)/2
}
