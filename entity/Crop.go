package entity

import "gorm.io/gorm"

type Crop struct {
	gorm.Model
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}
