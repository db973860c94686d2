package feedback

import "time"

// Record is one stored submission. Wellbeing and Productivity are the legacy
// names of Motivation and Performance; older rows may only carry those.
type Record struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"userId"`
	Date                  time.Time `json:"date"`
	Motivation            *int      `json:"motivation,omitempty"`
	Wellbeing             *int      `json:"wellbeing,omitempty"`
	Workload              *int      `json:"workload,omitempty"`
	Performance           *int      `json:"performance,omitempty"`
	Productivity          *int      `json:"productivity,omitempty"`
	Support               string    `json:"support,omitempty"`
	PositiveEvent         string    `json:"positiveEvent,omitempty"`
	ImprovementSuggestion string    `json:"improvementSuggestion,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}

// Ratings holds the canonical values of a record after reconciliation.
type Ratings struct {
	Motivation  *int   `json:"motivation"`
	Workload    *int   `json:"workload"`
	Performance *int   `json:"performance"`
	Support     string `json:"support"`
}

// Response is the admin view of a submission.
type Response struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	EmployeeName  string    `json:"employeeName"`
	EmployeeEmail string    `json:"employeeEmail"`
	Date          time.Time `json:"date"`
	Ratings
	PositiveEvent         string    `json:"positiveEvent,omitempty"`
	ImprovementSuggestion string    `json:"improvementSuggestion,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}

// DashboardStats is derived on every request and never stored.
type DashboardStats struct {
	ResponseRate             int    `json:"responseRate"`
	MotivationAvg            string `json:"motivationAvg"`
	WorkloadAvg              string `json:"workloadAvg"`
	PerformanceAvg           string `json:"performanceAvg"`
	SupportYesPercentage     int    `json:"supportYesPercentage"`
	SupportPartialPercentage int    `json:"supportPartialPercentage"`
	SupportNoPercentage      int    `json:"supportNoPercentage"`
	TotalEmployees           int    `json:"totalEmployees"`
	PendingFeedbacks         int    `json:"pendingFeedbacks"`
	FeedbackCount            int    `json:"feedbackCount"`
}

// SubmitInput is the employee payload. The legacy keys are still accepted
// from older clients and folded into the canonical fields.
type SubmitInput struct {
	Date                  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Motivation            *int   `json:"motivation" validate:"omitempty,min=0,max=10"`
	Wellbeing             *int   `json:"wellbeing" validate:"omitempty,min=0,max=10"`
	Workload              *int   `json:"workload" validate:"omitempty,min=0,max=10"`
	Performance           *int   `json:"performance" validate:"omitempty,min=0,max=10"`
	Productivity          *int   `json:"productivity" validate:"omitempty,min=0,max=10"`
	Support               string `json:"support" validate:"omitempty,oneof=Yes No Partially"`
	PositiveEvent         string `json:"positiveEvent" validate:"max=2000"`
	ImprovementSuggestion string `json:"improvementSuggestion" validate:"max=2000"`
}

// Report bundles what the PDF and spreadsheet exports render.
type Report struct {
	Period      string
	GeneratedAt time.Time
	Stats       DashboardStats
	Responses   []Response
}
