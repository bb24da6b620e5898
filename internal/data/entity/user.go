package entity

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// CanModerate reports whether the role may edit content authored by others.
func (r UserRole) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

type User struct {
	Base
	Username     string   `db:"username"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	Bio          string   `db:"bio"`
	IsActive     bool     `db:"is_active"`
}
