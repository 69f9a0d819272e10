package course

import "gorm.io/gorm"

// Module represents a section/module within a course. Order is unique within
// its course; deleted modules park their order at -id so the slot cannot
// collide with live rows.
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null;uniqueIndex:uix_modules_course_order"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order" gorm:"column:order_index;uniqueIndex:uix_modules_course_order"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
