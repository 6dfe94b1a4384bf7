package core

// OverviewRow summarizes one project for the report table. Exact entries
// are records with a positive exact amount; everything else counts as
// estimated.
type OverviewRow struct {
	Project           string
	Records           int
	ExactCount        int
	TotalExact        int64
	EstimatedCount    int
	TotalEstimated    int64
	TotalConservative int64
	TotalWorstCase    int64
}

// BuildOverview projects records into one row per project, in order of
// first appearance.
func BuildOverview(records []Record) []OverviewRow {
	index := make(map[string]int)
	rows := make([]OverviewRow, 0)
	for _, r := range records {
		i, ok := index[r.Project]
		if !ok {
			i = len(rows)
			index[r.Project] = i
			rows = append(rows, OverviewRow{Project: r.Project})
		}
		row := &rows[i]
		row.Records++
		if r.IsExact() {
			row.ExactCount++
		} else {
			row.EstimatedCount++
		}
		row.TotalExact += r.Amount(FieldExact)
		row.TotalEstimated += r.Amount(FieldEstimated)
		row.TotalConservative += r.Amount(FieldConservative)
		row.TotalWorstCase += r.Amount(FieldWorstCase)
	}
	return rows
}

// RiskPoint carries the per-project inputs of the risk bubble view: how
// urgent the project is on average, how bad it can get, and its average
// entry cost.
type RiskPoint struct {
	Project      string
	MeanPriority float64
	WorstCase    int64
	AvgCost      float64
}

// RiskProfile aggregates risk points per project in first-appearance
// order. A record's cost is the mean of its provided monetary fields.
func RiskProfile(records []Record) []RiskPoint {
	type acc struct {
		priority int
		worst    int64
		cost     float64
		count    int
	}
	index := make(map[string]int)
	order := make([]string, 0)
	accs := make([]acc, 0)
	for _, r := range records {
		i, ok := index[r.Project]
		if !ok {
			i = len(accs)
			index[r.Project] = i
			order = append(order, r.Project)
			accs = append(accs, acc{})
		}
		a := &accs[i]
		a.priority += r.Priority
		a.worst += r.Amount(FieldWorstCase)
		a.cost += r.meanCost()
		a.count++
	}
	points := make([]RiskPoint, len(order))
	for i, project := range order {
		a := accs[i]
		points[i] = RiskPoint{
			Project:      project,
			MeanPriority: float64(a.priority) / float64(a.count),
			WorstCase:    a.worst,
			AvgCost:      a.cost,
		}
	}
	return points
}

// meanCost averages the monetary fields that were actually provided.
func (r Record) meanCost() float64 {
	var sum int64
	var n int
	for _, m := range []*Money{r.Exact, r.Estimated, r.Conservative, r.WorstCase} {
		if m != nil {
			sum += m.Cents
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
