package entity

import (
	"time"

	"gorm.io/gorm"
)

// Review status values. New records always enter as PENDING.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// StatusAll is only a filter value, never stored.
const StatusAll = "ALL"

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

type HarvestRecord struct {
	gorm.Model
	// Human-readable label (REG-YY-NNNN). The DB id is the real key,
	// the register number is display-only and not collision-proof.
	RecordNumber string `gorm:"column:record_number;uniqueIndex;not null" json:"recordNumber"`

	// "MANUAL" when the customer was typed in instead of picked from the list.
	CustomerID   string `gorm:"column:customer_id" json:"customerId"`
	CustomerName string `gorm:"column:customer_name" json:"customerName"`

	PropertyName       string  `gorm:"column:property_name" json:"propertyName"`
	LocationURL        string  `gorm:"column:location_url" json:"locationUrl"`
	CropID             string  `gorm:"column:crop_id" json:"cropId"`
	TotalArea          float64 `gorm:"column:total_area" json:"totalArea"`
	PlantedArea        float64 `gorm:"column:planted_area" json:"plantedArea"`
	RegistrationNumber string  `gorm:"column:registration_number" json:"registrationNumber"`
	CprfCoordinates    string  `gorm:"column:cprf_coordinates" json:"cprfCoordinates"`

	// Snapshot fields copied from the form at submission time.
	Regional    string `gorm:"column:regional" json:"regional"`
	ManagerName string `gorm:"column:manager_name" json:"managerName"`
	SellerName  string `gorm:"column:seller_name" json:"sellerName"`
	City        string `gorm:"column:city" json:"city"`
	State       string `gorm:"column:state" json:"state"`

	Status         string     `gorm:"column:status;not null;default:PENDING" json:"status"`
	SubmissionDate time.Time  `gorm:"column:submission_date" json:"submissionDate"`
	ReviewedAt     *time.Time `gorm:"column:reviewed_at" json:"reviewedAt,omitempty"`
	ReviewedBy     string     `gorm:"column:reviewed_by" json:"reviewedBy,omitempty"`

	// Insertion order, display reverses it.
	Visits []TechnicalVisit `gorm:"foreignKey:HarvestRecordID" json:"visits"`
	Images []HarvestImage   `gorm:"foreignKey:HarvestRecordID" json:"images,omitempty"`
}

func (HarvestRecord) TableName() string { return "harvest_records" }
