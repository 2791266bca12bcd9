package entity

// StandardUser is a pre-registered account waiting for facial-verification
// promotion. The record is owned by the upstream signup flow; this service
// only reads it and deletes it once the customer record exists.
type StandardUser struct {
	Base
	Username string `db:"username"`
	Password string `db:"password"`
	Email    string `db:"email"`
	Country  string `db:"country"`
	Region   string `db:"region"`
	MobileNo string `db:"mobile_no"`
	Consent  bool   `db:"consent"`
}
