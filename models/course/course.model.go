package course

import (
	"time"

	"gorm.io/gorm"
)

// Course lifecycle: DRAFT -> PENDING -> PUBLISHED -> ARCHIVED, with REJECTED
// reachable from PENDING. Unpublishing moves a course back to DRAFT.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusArchived  = "archived"
	StatusRejected  = "rejected"
)

var statusTransitions = map[string][]string{
	StatusDraft:     {StatusPending, StatusPublished},
	StatusPending:   {StatusPublished, StatusRejected, StatusDraft},
	StatusPublished: {StatusDraft, StatusArchived},
	StatusArchived:  {},
	StatusRejected:  {},
}

// CanTransition reports whether a course may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Course represents a learning course owned by exactly one instructor
type Course struct {
	gorm.Model
	Title        string     `json:"title"`
	Slug         string     `json:"slug" gorm:"uniqueIndex;not null"`
	Description  string     `json:"description"`
	Thumbnail    string     `json:"thumbnail"`
	ThumbnailRef string     `json:"-"`
	InstructorID uint       `json:"instructor_id" gorm:"index;not null"`
	CategoryID   uint       `json:"category_id" gorm:"index"`
	Level        string     `json:"level" gorm:"default:'beginner'"` // beginner, intermediate, advanced
	Language     string     `json:"language" gorm:"default:'English'"`
	Duration     int64      `json:"duration" gorm:"default:0"` // duration in hours
	Status       string     `json:"status" gorm:"default:'draft'"`
	IsPublished  bool       `json:"is_published" gorm:"default:false"`
	PublishedAt  *time.Time `json:"published_at"`
	IsDeleted    bool       `gorm:"default:false"`
}
