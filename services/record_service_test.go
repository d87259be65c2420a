package services

import (
	"testing"
	"time"

	"safra-backend/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(number string, submitted time.Time) *entity.HarvestRecord {
	return &entity.HarvestRecord{
		RecordNumber:       number,
		CustomerID:         "MANUAL",
		CustomerName:       "AGROPECUÁRIA BOA ESPERANÇA LTDA",
		PropertyName:       "FAZENDA BOA ESPERANÇA",
		LocationURL:        "https://www.google.com/maps/search/?api=1&query=-12.5,-55.7",
		CropID:             "1",
		TotalArea:          1200.5,
		PlantedArea:        980.25,
		RegistrationNumber: "M-4411",
		CprfCoordinates:    "-12.500000, -55.700000",
		Regional:           entity.RegionalCentroOeste,
		ManagerName:        "Carlos Mendes",
		SellerName:         "Roberto Silva",
		City:               "Sorriso",
		State:              "MT",
		Status:             entity.StatusPending,
		SubmissionDate:     submitted,
		Visits: []entity.TechnicalVisit{
			{ID: 1001, VisitedAt: submitted.Add(-48 * time.Hour), Stage: "V2", Opinion: "emergência uniforme", Author: "Roberto Silva"},
			{ID: 1002, VisitedAt: submitted.Add(-24 * time.Hour), Stage: "V4", Opinion: "sem pragas", Author: "Roberto Silva"},
		},
	}
}

func TestCreateAndListRoundTrip(t *testing.T) {
	db := testDB(t)
	svc := newRecordService(t, db, nil)

	want := sampleRecord("REG-26-0001", time.Now().Truncate(time.Second))
	require.NoError(t, svc.Create(want, nil))
	require.NotZero(t, want.ID)

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]

	assert.Equal(t, want.RecordNumber, got.RecordNumber)
	assert.Equal(t, want.CustomerName, got.CustomerName)
	assert.Equal(t, want.PropertyName, got.PropertyName)
	assert.Equal(t, want.LocationURL, got.LocationURL)
	assert.Equal(t, want.CropID, got.CropID)
	assert.Equal(t, want.TotalArea, got.TotalArea)
	assert.Equal(t, want.PlantedArea, got.PlantedArea)
	assert.Equal(t, want.RegistrationNumber, got.RegistrationNumber)
	assert.Equal(t, want.CprfCoordinates, got.CprfCoordinates)
	assert.Equal(t, want.Regional, got.Regional)
	assert.Equal(t, want.ManagerName, got.ManagerName)
	assert.Equal(t, want.SellerName, got.SellerName)
	assert.Equal(t, want.City, got.City)
	assert.Equal(t, want.State, got.State)
	assert.Equal(t, entity.StatusPending, got.Status)

	// visit rows round-trip in insertion order
	require.Len(t, got.Visits, 2)
	assert.Equal(t, "V2", got.Visits[0].Stage)
	assert.Equal(t, "V4", got.Visits[1].Stage)
	assert.Equal(t, want.Visits[0].ID, got.Visits[0].ID)
}

func TestListNewestSubmissionFirst(t *testing.T) {
	db := testDB(t)
	svc := newRecordService(t, db, nil)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, svc.Create(sampleRecord("REG-26-0010", base), nil))
	require.NoError(t, svc.Create(sampleRecord("REG-26-0011", base.Add(10*time.Minute)), nil))
	require.NoError(t, svc.Create(sampleRecord("REG-26-0012", base.Add(5*time.Minute)), nil))

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "REG-26-0011", list[0].RecordNumber)
	assert.Equal(t, "REG-26-0012", list[1].RecordNumber)
	assert.Equal(t, "REG-26-0010", list[2].RecordNumber)
}

func TestCreateSkipsFailedImageUploads(t *testing.T) {
	db := testDB(t)
	store := &memStore{failOn: map[int]bool{2: true}}
	svc := newRecordService(t, db, store)

	rec := sampleRecord("REG-26-0002", time.Now())
	images := []ImageUpload{
		{FileName: "talhao1.jpg", Data: []byte("aaa")},
		{FileName: "talhao2.jpg", Data: []byte("bbb")},
		{FileName: "talhao3.jpg", Data: []byte("ccc")},
	}

	require.NoError(t, svc.Create(rec, images), "one bad upload must not fail the record")

	var rows []entity.HarvestImage
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Len(t, rec.Images, 2)
	assert.Equal(t, "talhao1.jpg", rec.Images[0].FileName)
	assert.Equal(t, "talhao3.jpg", rec.Images[1].FileName)
	assert.NotEmpty(t, rec.Images[0].URL)

	// list joins the surviving images back in
	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Images, 2)
	assert.Contains(t, list[0].Images[0].URL, "/uploads/")
}

func TestListDegradesWhenImagesUnavailable(t *testing.T) {
	db := testDB(t)
	svc := newRecordService(t, db, nil)

	rec := sampleRecord("REG-26-0004", time.Now())
	require.NoError(t, svc.Create(rec, []ImageUpload{{FileName: "talhao1.jpg", Data: []byte("aaa")}}))
	require.Len(t, rec.Images, 1)

	// break the image fetch only; the records themselves must survive
	require.NoError(t, db.Migrator().DropTable(&entity.HarvestImage{}))

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rec.RecordNumber, list[0].RecordNumber)
	assert.Empty(t, list[0].Images)
	require.Len(t, list[0].Visits, 2)
}

func TestUpdateStatusTransitions(t *testing.T) {
	db := testDB(t)
	svc := newRecordService(t, db, nil)

	rec := sampleRecord("REG-26-0003", time.Now())
	require.NoError(t, svc.Create(rec, nil))

	got, err := svc.UpdateStatus(rec.ID, entity.StatusApproved, "Administrador")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, got.Status)
	assert.Equal(t, "Administrador", got.ReviewedBy)
	require.NotNil(t, got.ReviewedAt)

	// only PENDING records may transition
	_, err = svc.UpdateStatus(rec.ID, entity.StatusRejected, "Administrador")
	assert.ErrorIs(t, err, ErrNotPending)

	// the stored row kept the first review
	var stored entity.HarvestRecord
	require.NoError(t, db.First(&stored, rec.ID).Error)
	assert.Equal(t, entity.StatusApproved, stored.Status)

	_, err = svc.UpdateStatus(rec.ID, "ARCHIVED", "Administrador")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
