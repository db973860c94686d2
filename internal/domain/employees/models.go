package employees

import "time"

// Employee is a survey participant as listed for admins.
type Employee struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	LastSubmission *time.Time `json:"lastSubmission,omitempty"`
	Submissions    int        `json:"submissions"`
	CreatedAt      time.Time  `json:"createdAt"`
}
