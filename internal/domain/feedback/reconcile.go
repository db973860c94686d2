package feedback

// Reconcile resolves a record into its canonical ratings. A canonical value
// wins whenever it is present, including 0; the legacy value is only used
// when the canonical one is nil.
func Reconcile(r Record) Ratings {
	return Ratings{
		Motivation:  coalesce(r.Motivation, r.Wellbeing),
		Workload:    r.Workload,
		Performance: coalesce(r.Performance, r.Productivity),
		Support:     r.Support,
	}
}

func coalesce(canonical, legacy *int) *int {
	if canonical != nil {
		return canonical
	}
	return legacy
}

func toResponse(rec Record, name, email string) Response {
	return Response{
		ID:                    rec.ID,
		UserID:                rec.UserID,
		EmployeeName:          name,
		EmployeeEmail:         email,
		Date:                  rec.Date,
		Ratings:               Reconcile(rec),
		PositiveEvent:         rec.PositiveEvent,
		ImprovementSuggestion: rec.ImprovementSuggestion,
		CreatedAt:             rec.CreatedAt,
	}
}
