package models

type User struct {
	ID       int    `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Name     string `db:"name" json:"name"`
	Password string `db:"password" json:"-"` // bcrypt hash once stored
}

// Account is a demo login as configured in plaintext, before hashing.
type Account struct {
	ID       int
	Username string
	Password string
	Name     string
}

// DemoAccounts returns the fixed set of demo logins.
func DemoAccounts() []Account {
	return []Account{
		{ID: 1, Username: "admin", Password: "password", Name: "Administrator"},
		{ID: 2, Username: "user", Password: "123456", Name: "Regular User"},
		{ID: 3, Username: "demo", Password: "demo", Name: "Demo User"},
	}
}
