package services

import (
	"errors"
	"time"

	"safra-backend/entity"
	"safra-backend/repository"
	"safra-backend/utils"

	"github.com/apex/log"
	"github.com/google/uuid"
)

// ImageStore persists uploaded files. The router serves them back at the
// resolved public URL.
type ImageStore interface {
	Save(recordID uint, fileName string, data []byte) (string, error)
}

type ImageUpload struct {
	FileName string
	Data     []byte
}

var (
	ErrNotPending    = errors.New("record is not pending")
	ErrInvalidStatus = errors.New("invalid status")
)

type RecordService struct {
	Repo  *repository.RecordRepository
	Store ImageStore
}

func NewRecordService(repo *repository.RecordRepository, store ImageStore) *RecordService {
	return &RecordService{Repo: repo, Store: store}
}

// Create persists the record with its visit history, then uploads the
// images one at a time. A failed upload is logged and skipped so the
// record itself always survives.
func (s *RecordService) Create(rec *entity.HarvestRecord, images []ImageUpload) error {
	if err := s.Repo.CreateWithVisits(rec); err != nil {
		return err
	}

	for _, img := range images {
		path, err := s.Store.Save(rec.ID, img.FileName, img.Data)
		if err != nil {
			log.WithField("file", img.FileName).Errorf("image upload failed: %v", err)
			continue
		}
		row := entity.HarvestImage{
			ID:              uuid.NewString(),
			HarvestRecordID: rec.ID,
			StoragePath:     path,
			FileName:        img.FileName,
			FileSize:        int64(len(img.Data)),
		}
		if err := s.Repo.CreateImage(&row); err != nil {
			log.WithField("file", img.FileName).Errorf("image row insert failed: %v", err)
			continue
		}
		row.URL = utils.PublicURL(path)
		rec.Images = append(rec.Images, row)
	}
	return nil
}

// List returns all records newest-submission-first with images joined in
// memory. An image listing failure degrades to records without images.
func (s *RecordService) List() ([]entity.HarvestRecord, error) {
	recs, err := s.Repo.FindAll()
	if err != nil {
		return nil, err
	}

	imgs, err := s.Repo.FindImages()
	if err != nil {
		log.Errorf("listing images failed: %v", err)
		return recs, nil
	}

	byRecord := make(map[uint][]entity.HarvestImage)
	for _, img := range imgs {
		img.URL = utils.PublicURL(img.StoragePath)
		byRecord[img.HarvestRecordID] = append(byRecord[img.HarvestRecordID], img)
	}
	for i := range recs {
		recs[i].Images = byRecord[recs[i].ID]
	}
	return recs, nil
}

// UpdateStatus moves a PENDING record to APPROVED or REJECTED, stamping
// who reviewed it and when.
func (s *RecordService) UpdateStatus(id uint, status, reviewer string) (*entity.HarvestRecord, error) {
	if status != entity.StatusApproved && status != entity.StatusRejected {
		return nil, ErrInvalidStatus
	}

	rec, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if rec.Status != entity.StatusPending {
		return nil, ErrNotPending
	}

	now := time.Now()
	rec.Status = status
	rec.ReviewedAt = &now
	rec.ReviewedBy = reviewer
	if err := s.Repo.UpdateStatus(rec); err != nil {
		return nil, err
	}
	return rec, nil
}
