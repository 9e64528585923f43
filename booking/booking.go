package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a reservation. Confirmed rows are the
// only ones counting toward conflict and quota checks; cancelled is terminal.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Role is the caller's role as resolved by the authentication layer.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSindico  Role = "sindico"
	RoleResident Role = "resident"
)

// ParseRole maps a role claim to the closed role set. "morador" is the
// legacy wire form of the resident role and is accepted as an alias.
func ParseRole(s string) (Role, error) {
	switch s {
	case "admin":
		return RoleAdmin, nil
	case "sindico":
		return RoleSindico, nil
	case "resident", "morador":
		return RoleResident, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// IsStaff reports whether the role bypasses unit-ownership checks.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSindico
}

// Caller identifies the principal performing a request. It is supplied by
// the auth middleware; this package trusts it as-is.
type Caller struct {
	ID   int64
	Role Role
}

// Reservation is a confirmed or cancelled hold on a common area for a unit
// over a half-open time interval [StartTime, EndTime).
type Reservation struct {
	ID        uuid.UUID `json:"id"`
	UnitID    int64     `json:"unit_id"`
	Area      string    `json:"area"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
