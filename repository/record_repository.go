package repository

import (
	"safra-backend/entity"

	"gorm.io/gorm"
)

type RecordRepository struct {
	DB *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{DB: db}
}

// CreateWithVisits inserts the record row and one visit row per visit in
// a single transaction, so a crash cannot leave a parent without its
// history.
func (r *RecordRepository) CreateWithVisits(rec *entity.HarvestRecord) error {
	tx := r.DB.Begin()

	visits := rec.Visits
	rec.Visits = nil
	if err := tx.Omit("Visits", "Images").Create(rec).Error; err != nil {
		tx.Rollback()
		rec.Visits = visits
		return err
	}

	for i := range visits {
		visits[i].HarvestRecordID = rec.ID
	}
	if len(visits) > 0 {
		if err := tx.Create(&visits).Error; err != nil {
			tx.Rollback()
			rec.Visits = visits
			return err
		}
	}
	rec.Visits = visits

	return tx.Commit().Error
}

// FindAll returns records with their visit history, newest submission
// first. Images are fetched separately so their failure can degrade.
func (r *RecordRepository) FindAll() ([]entity.HarvestRecord, error) {
	var recs []entity.HarvestRecord
	err := r.DB.
		Preload("Visits", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("submission_date DESC").
		Find(&recs).Error
	return recs, err
}

func (r *RecordRepository) FindByID(id uint) (*entity.HarvestRecord, error) {
	var rec entity.HarvestRecord
	if err := r.DB.
		Preload("Visits", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecordRepository) FindImages() ([]entity.HarvestImage, error) {
	var imgs []entity.HarvestImage
	err := r.DB.Find(&imgs).Error
	return imgs, err
}

func (r *RecordRepository) CreateImage(img *entity.HarvestImage) error {
	return r.DB.Create(img).Error
}

// UpdateStatus is the only retroactive mutation a persisted record gets.
func (r *RecordRepository) UpdateStatus(rec *entity.HarvestRecord) error {
	return r.DB.Model(rec).
		Select("status", "reviewed_at", "reviewed_by").
		Updates(map[string]any{
			"status":      rec.Status,
			"reviewed_at": rec.ReviewedAt,
			"reviewed_by": rec.ReviewedBy,
		}).Error
}
