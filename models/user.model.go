package models

// User is the authenticated customer as seen by the storefront
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Account is a stored login. Password holds the bcrypt hash.
type Account struct {
	ID       string `bson:"_id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"`
	Role     string `bson:"role" json:"role"` // "user" or "admin"
}

// User returns the public view of the account.
func (a Account) User() User {
	return User{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}
