package core

import "sort"

// SumByProject groups records by project and sums the given field in cents.
// Missing values count as zero.
func SumByProject(records []Record, f Field) map[string]int64 {
	sums := make(map[string]int64)
	for _, r := range records {
		sums[r.Project] += r.Amount(f)
	}
	return sums
}

// CompleteSumByProject sums the complete amount (exact plus estimate field)
// per project, so exact and estimated entries land in one comparable figure.
func CompleteSumByProject(records []Record, f Field) map[string]int64 {
	sums := make(map[string]int64)
	for _, r := range records {
		sums[r.Project] += r.CompleteAmount(f)
	}
	return sums
}

// Shares converts per-project sums into percentage shares of the total.
// When the total is zero every share is zero.
func Shares(sums map[string]int64) map[string]float64 {
	var total int64
	for _, v := range sums {
		total += v
	}
	shares := make(map[string]float64, len(sums))
	for project, v := range sums {
		if total == 0 {
			shares[project] = 0
			continue
		}
		shares[project] = float64(v) / float64(total) * 100
	}
	return shares
}

// DenseRank assigns rank 1 to the largest sum. Equal sums share a rank and
// ranks have no gaps, so n distinct values always produce ranks 1..n.
func DenseRank(sums map[string]int64) map[string]int {
	distinct := make([]int64, 0, len(sums))
	seen := make(map[int64]bool, len(sums))
	for _, v := range sums {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i] > distinct[j] })
	rankOf := make(map[int64]int, len(distinct))
	for i, v := range distinct {
		rankOf[v] = i + 1
	}
	ranks := make(map[string]int, len(sums))
	for project, v := range sums {
		ranks[project] = rankOf[v]
	}
	return ranks
}

// OrderByRank sorts records for the ranked view of a field: projects in
// ascending rank of their complete sum, records within a project by their
// own complete amount descending.
func OrderByRank(records []Record, f Field) []Record {
	ranks := DenseRank(CompleteSumByProject(records, f))
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := ranks[out[i].Project], ranks[out[j].Project]
		if ri != rj {
			return ri < rj
		}
		return out[i].CompleteAmount(f) > out[j].CompleteAmount(f)
	})
	return out
}
