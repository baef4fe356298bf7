package entity

// User is the student profile this service reads when building the
// gateway payload. Account management lives elsewhere.
type User struct {
	Base
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
}
