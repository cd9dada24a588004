// internal/domain/models/member.go
package models

import "time"

// Member status values. Only active members may sign up for meetings.
const (
	MemberActive    = "active"
	MemberPending   = "pending"
	MemberSuspended = "suspended"
)

// Member is the membership record the fronting application maintains for
// each identity. AgoraHub reads it to answer "is this an approved,
// non-suspended member" when gating meeting signup.
type Member struct {
	ID       string `bson:"_id" json:"id"` // opaque identity string, shared with the fronting app
	FullName string `bson:"full_name" json:"full_name"`
	Role     string `bson:"role" json:"role"` // "admin" | "member"
	Status   string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Approved reports whether the member may participate in meetings.
func (m Member) Approved() bool {
	return m.Status == MemberActive
}
