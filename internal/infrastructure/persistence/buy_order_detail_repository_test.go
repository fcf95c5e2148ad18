package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oms/backend/internal/domain/trade"
	"github.com/oms/backend/internal/infrastructure/persistence/models"
)

func setupDetailTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.BuyOrderDetailModel{})
	require.NoError(t, err)

	return db
}

func TestGormBuyOrderDetailRepository_BulkUpdateMutable(t *testing.T) {
	db := setupDetailTestDB(t)
	repo := NewGormBuyOrderDetailRepository(db)
	ctx := context.Background()

	orderDate := time.Date(2023, 12, 25, 14, 30, 0, 0, time.UTC)
	d, err := trade.NewBuyOrderDetail(uuid.New(), "900001", orderDate)
	require.NoError(t, err)
	d.StatusID = uuid.New()
	d.PaymentTypeID = uuid.New()
	d.TotalAmount = decimal.RequireFromString("150.50")
	require.NoError(t, repo.BulkCreate(ctx, []*trade.BuyOrderDetail{d}))

	// A later report changes status and tracking but also carries
	// different amounts; only the mutable pair may land.
	newStatus := uuid.New()
	d.ApplyStatusUpdate(newStatus, "BR123456789")
	d.TotalAmount = decimal.RequireFromString("999.99")

	require.NoError(t, repo.BulkUpdateMutable(ctx, []*trade.BuyOrderDetail{d}))

	found, err := repo.FindByExternalIDs(ctx, []string{"900001"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, newStatus, found[0].StatusID)
	assert.Equal(t, "BR123456789", found[0].TrackingCode)
	assert.True(t, found[0].TotalAmount.Equal(decimal.RequireFromString("150.50")))
}
