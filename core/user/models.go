package user

import (
	"strings"
	"time"

	"github.com/unicrm/unicli/core"
)

// Roles; immutable from the client's perspective: assigned at registration,
// owned by the backend afterwards.
const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
	RoleAdmin    = "admin"
)

var AllRoles = []string{RoleStudent, RoleLecturer, RoleAdmin}

// User mirrors the backend's user record; held only in transient client state.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

func (u User) IsLecturer() bool {
	return u.Role == RoleLecturer
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Login contains the credentials sent to /auth/login.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (l *Login) Validate() error {
	l.Email = core.CleanString(l.Email, true /* lower */)
	return core.CheckStruct(l)
}

// Register contains the information sent to /auth/register.
type Register struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=student lecturer admin"`
}

func (r *Register) Validate() error {
	r.FirstName = core.CleanString(r.FirstName)
	r.LastName = core.CleanString(r.LastName)
	r.Email = core.CleanString(r.Email, true /* lower */)
	r.Role = core.CleanString(r.Role, true /* lower */)
	return core.CheckStruct(r)
}
