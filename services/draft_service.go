package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"safra-backend/entity"
	"safra-backend/utils"

	"github.com/google/uuid"
)

var (
	ErrDraftNotFound = errors.New("draft not found")
	ErrUnknownField  = errors.New("unknown field")
	ErrFieldType     = errors.New("value does not match field type")
	ErrBadDate       = errors.New("invalid visit date")
	ErrBadTarget     = errors.New("unknown location target")
	ErrBadPosition   = errors.New("invalid coordinates")

	// ErrValidation blocks submission; the draft is left untouched.
	ErrValidation = errors.New("customer name and crop are required")
)

// Draft is one in-progress record. A draft belongs to a single logical
// session; there is no concurrent editing of the same draft.
type Draft struct {
	ID     string               `json:"id"`
	Seller string               `json:"seller"`
	Record entity.HarvestRecord `json:"record"`
}

// RecordPublisher pushes freshly submitted records to live listeners.
type RecordPublisher interface {
	PublishRecord(rec *entity.HarvestRecord)
}

// DraftService holds the in-progress records and drives the
// draft-to-submission lifecycle.
type DraftService struct {
	mu          sync.Mutex
	drafts      map[string]*Draft
	lastVisitID int64

	Records *RecordService
	Feed    RecordPublisher // optional
}

func NewDraftService(records *RecordService) *DraftService {
	return &DraftService{
		drafts:  make(map[string]*Draft),
		Records: records,
	}
}

var draftStringFields = map[string]func(*entity.HarvestRecord, string){
	"customerId":         func(r *entity.HarvestRecord, v string) { r.CustomerID = v },
	"customerName":       func(r *entity.HarvestRecord, v string) { r.CustomerName = v },
	"propertyName":       func(r *entity.HarvestRecord, v string) { r.PropertyName = v },
	"locationUrl":        func(r *entity.HarvestRecord, v string) { r.LocationURL = v },
	"cropId":             func(r *entity.HarvestRecord, v string) { r.CropID = v },
	"registrationNumber": func(r *entity.HarvestRecord, v string) { r.RegistrationNumber = v },
	"cprfCoordinates":    func(r *entity.HarvestRecord, v string) { r.CprfCoordinates = v },
	"regional":           func(r *entity.HarvestRecord, v string) { r.Regional = v },
	"managerName":        func(r *entity.HarvestRecord, v string) { r.ManagerName = v },
	"sellerName":         func(r *entity.HarvestRecord, v string) { r.SellerName = v },
	"city":               func(r *entity.HarvestRecord, v string) { r.City = v },
	"state":              func(r *entity.HarvestRecord, v string) { r.State = v },
}

var draftNumberFields = map[string]func(*entity.HarvestRecord, float64){
	"totalArea":   func(r *entity.HarvestRecord, v float64) { r.TotalArea = v },
	"plantedArea": func(r *entity.HarvestRecord, v float64) { r.PlantedArea = v },
}

func emptyRecord() entity.HarvestRecord {
	return entity.HarvestRecord{
		RecordNumber: utils.NewRecordNumber(),
		CustomerID:   "MANUAL",
		Visits:       []entity.TechnicalVisit{},
	}
}

// NewDraft registers a fresh draft and returns it. The returned value
// aliases the stored draft; its id is not known to any other caller
// until the response carrying it is delivered, so no concurrent
// mutation can overlap the initial read.
func (s *DraftService) NewDraft(seller string) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := &Draft{
		ID:     uuid.NewString(),
		Seller: seller,
		Record: emptyRecord(),
	}
	s.drafts[d.ID] = d
	return d
}

// Get returns a detached snapshot of the draft, so callers can read and
// serialize it without holding the lock while other requests mutate it.
func (s *DraftService) Get(id string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.get(id)
	if err != nil {
		return nil, err
	}
	snap := *d
	snap.Record.Visits = append([]entity.TechnicalVisit(nil), d.Record.Visits...)
	return &snap, nil
}

func (s *DraftService) get(id string) (*Draft, error) {
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

// SetField mutates one draft field. The value must match the field's
// declared type; no range or format validation beyond that.
func (s *DraftService) SetField(id, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.get(id)
	if err != nil {
		return err
	}

	if set, ok := draftStringFields[field]; ok {
		str, ok := value.(string)
		if !ok {
			return ErrFieldType
		}
		set(&d.Record, str)
		return nil
	}
	if set, ok := draftNumberFields[field]; ok {
		switch n := value.(type) {
		case float64:
			set(&d.Record, n)
		case int:
			set(&d.Record, float64(n))
		default:
			return ErrFieldType
		}
		return nil
	}
	return ErrUnknownField
}

// AddVisit appends a technical visit to the draft's history. All three
// inputs are required; missing any of them is a silent no-op, matching
// the disabled add button on the form. The chosen calendar day is
// combined with the current time of day so same-day visits keep a
// meaningful sort order.
func (s *DraftService) AddVisit(id, stage, opinion, date string) (*entity.TechnicalVisit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.get(id)
	if err != nil {
		return nil, err
	}

	stage = strings.TrimSpace(stage)
	opinion = strings.TrimSpace(opinion)
	if stage == "" || opinion == "" || date == "" {
		return nil, nil
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, ErrBadDate
	}

	now := time.Now()
	visit := entity.TechnicalVisit{
		ID:        s.nextVisitID(now),
		VisitedAt: time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.Local),
		Stage:     stage,
		Opinion:   opinion,
		Author:    s.visitAuthor(d),
	}
	d.Record.Visits = append(d.Record.Visits, visit)
	return &visit, nil
}

// visitAuthor mirrors the form header: the seller named on the record,
// else the session user, else a placeholder.
func (s *DraftService) visitAuthor(d *Draft) string {
	if name := strings.TrimSpace(d.Record.SellerName); name != "" {
		return name
	}
	if d.Seller != "" {
		return d.Seller
	}
	return "Técnico Atual"
}

// nextVisitID hands out clock-derived ids that never repeat even when
// two visits land in the same nanosecond tick.
func (s *DraftService) nextVisitID(now time.Time) int64 {
	id := now.UnixNano()
	if id <= s.lastVisitID {
		id = s.lastVisitID + 1
	}
	s.lastVisitID = id
	return id
}

// SetLocation formats a device position into the chosen field. The
// geolocation request itself happens on the device; this is the
// format-and-apply step. An invalid position leaves the field unchanged.
func (s *DraftService) SetLocation(id string, lat, lng float64, target string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.get(id)
	if err != nil {
		return "", err
	}
	if !utils.ValidCoordinates(lat, lng) {
		return "", ErrBadPosition
	}

	switch target {
	case "locationUrl":
		d.Record.LocationURL = utils.MapsLink(lat, lng)
		return d.Record.LocationURL, nil
	case "cprfCoordinates":
		d.Record.CprfCoordinates = utils.CprfCoordinates(lat, lng)
		return d.Record.CprfCoordinates, nil
	default:
		return "", ErrBadTarget
	}
}

// Submit freezes the draft and hands it to the persistence gateway. On
// success the draft is reset in place with a freshly generated register
// number; on gateway failure the draft is preserved so the seller can
// retry without losing work.
func (s *DraftService) Submit(id string, images []ImageUpload) (*entity.HarvestRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(d.Record.CustomerName) == "" || strings.TrimSpace(d.Record.CropID) == "" {
		return nil, ErrValidation
	}

	submission := d.Record
	if submission.CustomerID == "" {
		submission.CustomerID = "MANUAL"
	}
	submission.Status = entity.StatusPending
	submission.SubmissionDate = time.Now()

	if err := s.Records.Create(&submission, images); err != nil {
		return nil, err
	}

	old := d.Record.RecordNumber
	d.Record = emptyRecord()
	for d.Record.RecordNumber == old {
		d.Record.RecordNumber = utils.NewRecordNumber()
	}

	if s.Feed != nil {
		s.Feed.PublishRecord(&submission)
	}
	return &submission, nil
}
