package models

// User represents the authenticated console operator
type User struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the API granted the user an admin role
func (u User) IsAdmin() bool {
	return u.Role == "admin" || u.Role == "superadmin"
}
