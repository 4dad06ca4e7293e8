package domain

type Role int

const (
	RoleAdmin Role = iota
	RoleRegular
)

// RoleFromCode maps a persisted role code back to a Role.
func RoleFromCode(code int) (Role, bool) {
	if code != int(RoleAdmin) && code != int(RoleRegular) {
		return RoleRegular, false
	}
	return Role(code), true
}

func (r Role) String() string {
	if r == RoleAdmin {
		return "Admin"
	}
	return "Regular User"
}

// User is an operator account. Privileged operations are gated on the
// role tag, not on distinct types.
type User struct {
	ID       int
	Username string
	Password string
	Role     Role
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
