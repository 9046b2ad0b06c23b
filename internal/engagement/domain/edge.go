package domain

import "time"

// TargetKind tags what an edge points at.
type TargetKind string

const (
	KindChannel TargetKind = "channel" // subscription
	KindVideo   TargetKind = "video"   // like
	KindComment TargetKind = "comment" // like
	KindTweet   TargetKind = "tweet"   // like
)

// Valid reports whether k is one of the known target kinds.
func (k TargetKind) Valid() bool {
	switch k {
	case KindChannel, KindVideo, KindComment, KindTweet:
		return true
	}
	return false
}

// Edge is a relationship record whose mere existence is the boolean state:
// a (subject, kind, target) triple is "on" exactly when one row exists.
// The composite unique index is what makes concurrent toggles safe; the
// engine relies on the database rejecting a second identical row.
type Edge struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	SubjectID  string     `json:"subject_id" gorm:"uniqueIndex:idx_edges_subject_kind_target;not null"`
	TargetKind TargetKind `json:"target_kind" gorm:"uniqueIndex:idx_edges_subject_kind_target;not null"`
	TargetID   string     `json:"target_id" gorm:"uniqueIndex:idx_edges_subject_kind_target;not null"`
	CreatedAt  time.Time  `json:"created_at"`
}
