package feedback

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet   = "Summary"
	responsesSheet = "Responses"
)

var responseHeaders = []string{
	"Date", "Employee", "Motivation", "Workload", "Performance", "Support", "Positive event", "Improvement suggestion",
}

// WriteXLSX renders the report as a workbook with a summary sheet and a
// responses sheet.
func WriteXLSX(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	rows := [][]string{
		{"Period", periodLabel(report.Period)},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04 MST")},
	}
	rows = append(rows, summaryLines(report.Stats)...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &[]string{row[0], row[1]}); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(responsesSheet); err != nil {
		return err
	}
	header := make([]any, len(responseHeaders))
	for i, h := range responseHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(responsesSheet, "A1", &header); err != nil {
		return err
	}
	for i, resp := range report.Responses {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := responseRow(resp)
		row := make([]any, len(values))
		for j, v := range values {
			row[j] = v
		}
		if err := f.SetSheetRow(responsesSheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func summaryLines(stats DashboardStats) [][]string {
	return [][]string{
		{"Response rate", fmt.Sprintf("%d%%", stats.ResponseRate)},
		{"Feedback count", fmt.Sprint(stats.FeedbackCount)},
		{"Total employees", fmt.Sprint(stats.TotalEmployees)},
		{"Pending feedbacks", fmt.Sprint(stats.PendingFeedbacks)},
		{"Motivation average", stats.MotivationAvg},
		{"Workload average", stats.WorkloadAvg},
		{"Performance average", stats.PerformanceAvg},
		{"Support yes", fmt.Sprintf("%d%%", stats.SupportYesPercentage)},
		{"Support partially", fmt.Sprintf("%d%%", stats.SupportPartialPercentage)},
		{"Support no", fmt.Sprintf("%d%%", stats.SupportNoPercentage)},
	}
}

func responseRow(resp Response) []string {
	return []string{
		resp.Date.Format(dateLayout),
		resp.EmployeeName,
		ratingText(resp.Motivation),
		ratingText(resp.Workload),
		ratingText(resp.Performance),
		resp.Support,
		resp.PositiveEvent,
		resp.ImprovementSuggestion,
	}
}

func ratingText(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func periodLabel(period string) string {
	if KnownPeriod(period) {
		return period
	}
	return "all time"
}
