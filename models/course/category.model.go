package course

import "gorm.io/gorm"

// Category is a flat taxonomy entry keyed by unique slug. Courses reference
// categories, they never own them.
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	IsDeleted   bool   `gorm:"default:false"`
}
