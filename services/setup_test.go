package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"safra-backend/entity"
	"safra-backend/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Customer{}, &entity.Crop{},
		&entity.HarvestRecord{}, &entity.TechnicalVisit{}, &entity.HarvestImage{},
	))
	return db
}

// memStore keeps uploads in memory; failOn marks 1-based files that
// should fail to store.
type memStore struct {
	saved  []string
	failOn map[int]bool
	calls  int
}

func (s *memStore) Save(recordID uint, fileName string, data []byte) (string, error) {
	s.calls++
	if s.failOn[s.calls] {
		return "", errors.New("disk full")
	}
	path := fmt.Sprintf("%d/%s", recordID, fileName)
	s.saved = append(s.saved, path)
	return path, nil
}

func newRecordService(t *testing.T, db *gorm.DB, store ImageStore) *RecordService {
	t.Helper()
	if store == nil {
		store = &memStore{}
	}
	return NewRecordService(repository.NewRecordRepository(db), store)
}
