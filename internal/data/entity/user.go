package entity

type User struct {
	Base
	Email        string `db:"email"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	PasswordHash string `db:"password"`
	IsAdmin      bool   `db:"is_admin"`
	IsStaff      bool   `db:"is_staff"`
}

// UserWithReservations is a user together with how many reservations they
// hold, computed at read time.
type UserWithReservations struct {
	User
	NbReservations int `db:"nb_reservations"`
}
