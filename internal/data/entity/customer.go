package entity

type CustomerStatus string

const (
	StatusPending  CustomerStatus = "pending"
	StatusApproved CustomerStatus = "approved"
)

// Customer is the promoted account created after a passing facial analysis.
type Customer struct {
	Base
	Username     string         `db:"username"`
	PasswordHash string         `db:"password"`
	Email        string         `db:"email"`
	Country      string         `db:"country"`
	Region       string         `db:"region"`
	MobileNo     string         `db:"mobile_no"`
	Consent      bool           `db:"consent"`
	Confidence   float64        `db:"confidence"`
	Gender       string         `db:"gender"`
	AgeRange     string         `db:"age_range"`
	AnalysisURL  string         `db:"analysis_url"`
	PhotoURL     string         `db:"photo_url"`
	Status       CustomerStatus `db:"status"`
	OptOut       bool           `db:"opt_out"`
	Active       int            `db:"active"`
}
