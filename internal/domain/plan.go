package domain

// Age bounds for early-intervention requests, in months.
const (
	MinAgeMonths = 0
	MaxAgeMonths = 36
)

// Plan is the structured intervention plan returned by the plan endpoint.
// The "Advice for Parents" key (with spaces) is part of the wire contract
// and must not be renamed.
type Plan struct {
	Goals            string `json:"Goals"`
	Strategies       string `json:"Strategies"`
	AdviceForParents string `json:"Advice for Parents"`
}

// ValidAgeMonths reports whether age is within the supported range.
func ValidAgeMonths(age int) bool {
	return age >= MinAgeMonths && age <= MaxAgeMonths
}
