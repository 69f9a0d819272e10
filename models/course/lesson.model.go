package course

import "gorm.io/gorm"

// Lesson belongs to one course and optionally one module (ModuleID 0 means
// course-scoped). Order is unique within its (course, module) pair.
type Lesson struct {
	gorm.Model
	CourseID      uint   `json:"course_id" gorm:"index;not null;uniqueIndex:uix_lessons_scope_order"`
	ModuleID      uint   `json:"module_id" gorm:"index;uniqueIndex:uix_lessons_scope_order"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Content       string `json:"content" gorm:"type:text"`
	ContentType   string `json:"content_type" gorm:"default:'video'"` // video, text, quiz, assignment, document
	VideoURL      string `json:"video_url"`
	VideoDuration int    `json:"video_duration"` // in seconds
	Order         int    `json:"order" gorm:"column:order_index;uniqueIndex:uix_lessons_scope_order"`
	IsFree        bool   `json:"is_free" gorm:"default:false"`
	IsPublished   bool   `json:"is_published" gorm:"default:false"`
	IsDeleted     bool   `gorm:"default:false"`
}
