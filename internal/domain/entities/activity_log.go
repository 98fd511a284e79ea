package entities

import "time"

// ActivityAction tags an activity log entry. The set is open: new tags can be
// introduced without touching storage.
type ActivityAction string

const (
	ActivityClaimCreated  ActivityAction = "CLAIM_CREATED"
	ActivityStatusUpdated ActivityAction = "STATUS_UPDATED"
)

// ActivityLogEntry is an append-only audit record attached to a claim.
//
// Storage model (DynamoDB):
//   - PK: claim_id
//   - SK: id (ULID, so entries sort by creation time)
//
// Entries are never updated or deleted.
type ActivityLogEntry struct {
	ID        string         `json:"id"`
	ClaimID   string         `json:"claim_id"`
	Action    ActivityAction `json:"action"`
	Details   string         `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
