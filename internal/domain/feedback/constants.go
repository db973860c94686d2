package feedback

const (
	SupportYes       = "Yes"
	SupportNo        = "No"
	SupportPartially = "Partially"
)

const (
	PeriodLastWeek    = "last-week"
	PeriodLastMonth   = "last-month"
	PeriodLastQuarter = "last-quarter"
	PeriodYearToDate  = "year-to-date"
)

const (
	MinRating = 0
	MaxRating = 10

	maxTextLength = 2000
	dateLayout    = "2006-01-02"
)

var SupportValues = []string{SupportYes, SupportNo, SupportPartially}
