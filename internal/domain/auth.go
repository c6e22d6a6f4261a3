package domain

// Role names a capability granted to an authenticated caller.
type Role string

const (
	RoleUser      Role = "USER"
	RoleProfessor Role = "PROFESSOR"
	RoleAdmin     Role = "ADMIN"
)

// Caller is the authenticated identity plus its role set.
type Caller struct {
	User  User
	Roles []Role
}

// NewCaller derives the role set from the stored user flags. Every authenticated
// user holds USER.
func NewCaller(user User) Caller {
	roles := []Role{RoleUser}
	if user.Professor {
		roles = append(roles, RoleProfessor)
	}
	if user.Admin {
		roles = append(roles, RoleAdmin)
	}
	return Caller{User: user, Roles: roles}
}

// HasRole reports whether the caller was granted role.
func (c Caller) HasRole(role Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ID returns the caller's user id.
func (c Caller) ID() int64 {
	return c.User.ID
}
