package delivery

import (
	"errors"
	"fmt"
	"testing"
	"time"

	deliveryModel "enrollment-gateway/models/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&deliveryModel.Attempt{}))
	return db
}

func TestRecorderPersistsOutcomes(t *testing.T) {
	db := newTestDB(t)
	recorder := NewRecorder(db)
	go recorder.Process()

	recorder.Record("9876543210", "123456", nil)
	recorder.Record("8876543210", "654321", errors.New("upstream down"))

	require.Eventually(t, func() bool {
		var count int64
		db.Model(&deliveryModel.Attempt{}).Count(&count)
		return count == 2
	}, time.Second, 10*time.Millisecond)

	var failed deliveryModel.Attempt
	require.NoError(t, db.Where("status = ?", deliveryModel.AttemptStatusFailed).First(&failed).Error)
	assert.Equal(t, "8876543210", failed.Phone)
	assert.Equal(t, "upstream down", failed.Error)

	var sent deliveryModel.Attempt
	require.NoError(t, db.Where("status = ?", deliveryModel.AttemptStatusSent).First(&sent).Error)
	assert.Equal(t, "9876543210", sent.Phone)
}

func TestRecorderNeverPersistsFullCode(t *testing.T) {
	db := newTestDB(t)
	recorder := NewRecorder(db)
	go recorder.Process()

	recorder.Record("9876543210", "123456", nil)

	require.Eventually(t, func() bool {
		var count int64
		db.Model(&deliveryModel.Attempt{}).Count(&count)
		return count == 1
	}, time.Second, 10*time.Millisecond)

	var attempt deliveryModel.Attempt
	require.NoError(t, db.First(&attempt).Error)
	assert.Equal(t, "****56", attempt.CodeHint)
	assert.NotContains(t, attempt.CodeHint, "123456")
}
