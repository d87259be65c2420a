package entity

import "time"

// TechnicalVisit is append-only: once attached to a record it is never
// edited or removed.
type TechnicalVisit struct {
	// Clock-derived id assigned by the draft service, kept as the primary
	// key so same-day visits still sort.
	ID              int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	HarvestRecordID uint      `gorm:"column:harvest_record_id;index" json:"-"`
	VisitedAt       time.Time `gorm:"column:visit_date" json:"date"`
	Stage           string    `gorm:"column:stage" json:"stage"`
	Opinion         string    `gorm:"column:opinion" json:"opinion"`
	Author          string    `gorm:"column:author" json:"author"`
}

func (TechnicalVisit) TableName() string { return "technical_visits" }
