package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"safra-backend/entity"
	"safra-backend/repository"
	"safra-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func controllerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Customer{}, &entity.Crop{},
		&entity.HarvestRecord{}, &entity.TechnicalVisit{}, &entity.HarvestImage{},
	))
	return db
}

func TestToRecordResponseReversesVisits(t *testing.T) {
	submitted := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	rec := entity.HarvestRecord{
		Model:          gorm.Model{ID: 7},
		RecordNumber:   "REG-26-0042",
		CustomerID:     "MANUAL",
		CustomerName:   "Fazenda X",
		CropID:         "1",
		Status:         entity.StatusPending,
		SubmissionDate: submitted,
		Visits: []entity.TechnicalVisit{
			{ID: 1, VisitedAt: submitted.Add(-72 * time.Hour), Stage: "V2", Opinion: "emergência"},
			{ID: 2, VisitedAt: submitted.Add(-48 * time.Hour), Stage: "V4", Opinion: "sem pragas"},
			{ID: 3, VisitedAt: submitted.Add(-24 * time.Hour), Stage: "V6", Opinion: "florescimento"},
		},
	}
	crops := []entity.Crop{{Model: gorm.Model{ID: 1}, Name: "Soja"}}

	out := toRecordResponse(&rec, nil, crops)

	// display order is most recent first
	require.Len(t, out.Visits, 3)
	assert.Equal(t, "V6", out.Visits[0].Stage)
	assert.Equal(t, "V4", out.Visits[1].Stage)
	assert.Equal(t, "V2", out.Visits[2].Stage)

	// the record itself keeps insertion order
	assert.Equal(t, "V2", rec.Visits[0].Stage)

	assert.Equal(t, "Fazenda X", out.CustomerName)
	assert.Equal(t, "Soja", out.CropName)
	assert.Equal(t, submitted.Format(time.RFC3339), out.SubmissionDate)
}

func TestBootstrapToleratesFailedLeg(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := controllerDB(t)
	require.NoError(t, db.Create(&entity.Crop{Name: "Soja"}).Error)

	repo := repository.NewRecordRepository(db)
	rec := entity.HarvestRecord{
		RecordNumber:   "REG-26-0050",
		CustomerID:     "MANUAL",
		CustomerName:   "Fazenda X",
		CropID:         "1",
		Status:         entity.StatusPending,
		SubmissionDate: time.Now(),
	}
	require.NoError(t, repo.CreateWithVisits(&rec))

	// one broken leg: the customers fetch has nothing to read
	require.NoError(t, db.Migrator().DropTable(&entity.Customer{}))

	ctl := NewRecordController(
		services.NewRecordService(repo, nil),
		repository.NewCustomerRepository(db),
		repository.NewCropRepository(db),
	)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/bootstrap", nil)
	ctl.Bootstrap(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		OK   bool `json:"ok"`
		Data struct {
			Customers []entity.Customer `json:"customers"`
			Crops     []entity.Crop     `json:"crops"`
			Records   []RecordResponse  `json:"records"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.OK)

	// the failed leg yields its zero value, the rest still load
	assert.Empty(t, body.Data.Customers)
	require.Len(t, body.Data.Crops, 1)
	assert.Equal(t, "Soja", body.Data.Crops[0].Name)
	require.Len(t, body.Data.Records, 1)
	assert.Equal(t, "REG-26-0050", body.Data.Records[0].RecordNumber)
	assert.Equal(t, "Fazenda X", body.Data.Records[0].CustomerName)
}

func TestToRecordResponseUnknownLookups(t *testing.T) {
	rec := entity.HarvestRecord{
		RecordNumber: "REG-26-0043",
		CustomerID:   "99",
		CropID:       "99",
		Status:       entity.StatusPending,
	}

	out := toRecordResponse(&rec, nil, nil)
	assert.Equal(t, services.UnknownCustomer, out.CustomerName)
	assert.Equal(t, "Cultura Desconhecida", out.CropName)
	assert.Empty(t, out.Visits)
	assert.Empty(t, out.Images)
}
