package core

// Weights of the weighted average risk indicator. The three estimate
// fields always combine with these fixed coefficients.
const (
	wariEstimatedWeight    = 0.5
	wariConservativeWeight = 0.3
	wariWorstCaseWeight    = 0.2
)

// Wari is the record's weighted average risk indicator in cents. Records
// without estimates (exact entries) contribute zero.
func (r Record) Wari() float64 {
	return float64(r.Amount(FieldEstimated))*wariEstimatedWeight +
		float64(r.Amount(FieldConservative))*wariConservativeWeight +
		float64(r.Amount(FieldWorstCase))*wariWorstCaseWeight
}

// WariByProject sums the indicator per project. Because the indicator is
// linear, this equals the weighted combination of the per-project estimate
// sums.
func WariByProject(records []Record) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range records {
		out[r.Project] += r.Wari()
	}
	return out
}
