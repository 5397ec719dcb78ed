package models

import "time"

type InvitationStatus string

const (
	// InvitationPending is the initial state after creation.
	InvitationPending InvitationStatus = "pending"
	// InvitationAccepted means the membership side effect was applied.
	InvitationAccepted InvitationStatus = "accepted"
	// InvitationRemoved means the invitation was finalized; the row is kept
	// so a repeated finalize call stays a no-op, and is physically deleted
	// by the maintenance sweep.
	InvitationRemoved InvitationStatus = "removed"
)

// Invitation authorizes one email address to join one team. The token is the
// primary key: unguessable, generated by the opaque slug allocator.
type Invitation struct {
	Token     string           `db:"token"`
	TeamID    string           `db:"team_id"`
	Email     string           `db:"email"`
	Status    InvitationStatus `db:"status"`
	CreatedAt *time.Time       `db:"created_at"`
}
