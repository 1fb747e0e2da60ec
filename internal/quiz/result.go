package quiz

// Result is the terminal outcome of a quiz. It is produced once and passed
// by value.
type Result struct {
	Score      int  `json:"score"`
	Total      int  `json:"total"`
	Percentage int  `json:"percentage"`
	IsPerfect  bool `json:"isPerfect"`
}

// NewResult computes the derived fields for score out of total.
func NewResult(score, total int) Result {
	return Result{
		Score:      score,
		Total:      total,
		Percentage: Percentage(score, total),
		IsPerfect:  total > 0 && score == total,
	}
}

// Percentage returns score/total*100 rounded half up to the nearest
// integer. It is computed in integer arithmetic so .5 boundaries are exact.
func Percentage(score, total int) int {
	if total <= 0 || score <= 0 {
		return 0
	}
	return (score*200 + total) / (2 * total)
}
