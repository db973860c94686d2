package feedback

import (
	"fmt"
	"math"
	"strconv"
)

// Aggregate turns an already filtered set of records into dashboard figures in
// a single pass.
//
// Averages divide by the number of records, not by the number of records that
// carry the field, so a missing rating counts as an implicit 0. That matches
// how the dashboard has always reported these numbers; it understates the
// average when fields are sparse.
//
// Integer percentages and the one-decimal averages round half away from zero
// (math.Round), e.g. 62.5% -> 63 and 7.25 -> "7.3".
func Aggregate(records []Record, totalEmployees int) (DashboardStats, error) {
	if totalEmployees < 0 {
		return DashboardStats{}, invalid("totalEmployees", "must not be negative")
	}

	var motivationSum, workloadSum, performanceSum int
	var supportYes, supportPartial, supportNo int

	for i, rec := range records {
		if rec.Date.IsZero() {
			return DashboardStats{}, invalid(fmt.Sprintf("records[%d].date", i), "is required")
		}
		ratings := Reconcile(rec)
		if err := checkRatings(fmt.Sprintf("records[%d].", i), ratings); err != nil {
			return DashboardStats{}, err
		}

		if ratings.Motivation != nil {
			motivationSum += *ratings.Motivation
		}
		if ratings.Workload != nil {
			workloadSum += *ratings.Workload
		}
		if ratings.Performance != nil {
			performanceSum += *ratings.Performance
		}

		switch ratings.Support {
		case SupportYes:
			supportYes++
		case SupportPartially:
			supportPartial++
		case SupportNo:
			supportNo++
		}
	}

	n := len(records)
	stats := DashboardStats{
		ResponseRate:             percent(n, totalEmployees),
		MotivationAvg:            average(motivationSum, n),
		WorkloadAvg:              average(workloadSum, n),
		PerformanceAvg:           average(performanceSum, n),
		SupportYesPercentage:     percent(supportYes, n),
		SupportPartialPercentage: percent(supportPartial, n),
		SupportNoPercentage:      percent(supportNo, n),
		TotalEmployees:           totalEmployees,
		PendingFeedbacks:         totalEmployees - n,
		FeedbackCount:            n,
	}
	return stats, nil
}

func checkRatings(prefix string, r Ratings) error {
	fields := []struct {
		name  string
		value *int
	}{
		{"motivation", r.Motivation},
		{"workload", r.Workload},
		{"performance", r.Performance},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if *f.value < MinRating || *f.value > MaxRating {
			return invalid(prefix+f.name, fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
		}
	}
	return nil
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part*100) / float64(whole)))
}

func average(sum, n int) string {
	if n == 0 {
		return "0.0"
	}
	tenths := math.Round(float64(sum*10) / float64(n))
	return strconv.FormatFloat(tenths/10, 'f', 1, 64)
}
