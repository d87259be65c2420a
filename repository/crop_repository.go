package repository

import (
	"safra-backend/entity"

	"gorm.io/gorm"
)

type CropRepository struct {
	DB *gorm.DB
}

func NewCropRepository(db *gorm.DB) *CropRepository {
	return &CropRepository{DB: db}
}

func (r *CropRepository) FindAll() ([]entity.Crop, error) {
	var crops []entity.Crop
	err := r.DB.Order("name ASC").Find(&crops).Error
	return crops, err
}
