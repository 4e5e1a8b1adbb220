package domain

// User is the authenticated account the remote store scopes all data to.
type User struct {
	ID    string
	Name  string
	Email string
}
