package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/model"
)

func seedProperty(t *testing.T, db *gorm.DB, name, location string, area float64) model.Property {
	t.Helper()
	property := model.Property{
		Name:           name,
		Location:       location,
		Area:           area,
		PropertyType:   model.PropertyTypeResidential,
		PropertyStatus: model.PropertyStatusAvailable,
		Price:          50000,
		Image:          "/Uploads/seed.jpg",
	}
	require.NoError(t, db.Create(&property).Error)
	return property
}

func TestTransferOverwritesHolder(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransferService(db, nil)
	ctx := context.Background()

	seedProperty(t, db, "Alice", "North District", 120)

	price := 75000.0
	result, err := svc.Transfer(ctx, domain.TransferRequest{
		OldHolderName:   "Alice",
		NewHolderName:   "Bob Smith",
		Area:            120,
		Location:        "North District",
		TransactionType: "Sell",
		Price:           &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", result.NewHolderName)

	// 旧三元组不再命中，新持有人名下命中
	var stale model.Property
	err = db.Where("name = ? AND location = ? AND area = ?", "Alice", "North District", 120.0).First(&stale).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var transferred model.Property
	require.NoError(t, db.Where("name = ?", "Bob Smith").First(&transferred).Error)
	assert.Equal(t, 75000.0, transferred.Price)

	// 买家没有账号时合成 pending 占位账号
	var buyer model.User
	require.NoError(t, db.Where("name = ?", "Bob Smith").First(&buyer).Error)
	assert.Equal(t, model.StatusPending, buyer.Status)
	assert.Equal(t, "bobsmith@example.com", buyer.Email)
	assert.Equal(t, model.RoleHolder, buyer.Role)
}

func TestTransferBuyRequiresImage(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransferService(db, nil)

	seedProperty(t, db, "Alice", "North District", 120)

	_, err := svc.Transfer(context.Background(), domain.TransferRequest{
		OldHolderName:   "Alice",
		NewHolderName:   "Bob",
		Area:            120,
		Location:        "North District",
		TransactionType: "Buy",
	})
	require.Error(t, err)
	assert.Equal(t, 400, appCode(t, err))

	// 校验失败时不能留下任何写入
	var userCount int64
	require.NoError(t, db.Model(&model.User{}).Count(&userCount).Error)
	assert.EqualValues(t, 0, userCount)

	var property model.Property
	require.NoError(t, db.Where("name = ?", "Alice").First(&property).Error)
}

func TestTransferUnlistedSellerWithAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransferService(db, nil)
	ctx := context.Background()

	// 卖家有账号但登记簿里没有记录
	require.NoError(t, db.Create(&model.User{
		Name: "Carol", Email: "carol@example.com", Password: "x",
		Role: model.RoleHolder, Status: model.StatusApproved,
	}).Error)

	result, err := svc.Transfer(ctx, domain.TransferRequest{
		OldHolderName:   "Carol",
		NewHolderName:   "Dave",
		Area:            80,
		Location:        "East Side",
		TransactionType: "Sell",
	})
	require.NoError(t, err)
	assert.NotZero(t, result.PropertyID)

	// 补建的记录默认 residential/available，过户后属于买家
	var property model.Property
	require.NoError(t, db.First(&property, result.PropertyID).Error)
	assert.Equal(t, "Dave", property.Name)
	assert.Equal(t, model.PropertyTypeResidential, property.PropertyType)
	assert.Equal(t, model.PropertyStatusAvailable, property.PropertyStatus)
}

func TestTransferUnknownSeller(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransferService(db, nil)

	_, err := svc.Transfer(context.Background(), domain.TransferRequest{
		OldHolderName:   "Ghost",
		NewHolderName:   "Bob",
		Area:            50,
		Location:        "Nowhere",
		TransactionType: "Sell",
	})
	require.Error(t, err)
	assert.Equal(t, 404, appCode(t, err))

	// 失败的过户不能创建买家账号
	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestTransferRecordsTransactionDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransferService(db, nil)

	seedProperty(t, db, "Alice", "North District", 120)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	result, err := svc.Transfer(context.Background(), domain.TransferRequest{
		OldHolderName:   "Alice",
		NewHolderName:   "Bob",
		Area:            120,
		Location:        "North District",
		TransactionType: "Sell",
		TransactionDate: &date,
	})
	require.NoError(t, err)

	var property model.Property
	require.NoError(t, db.First(&property, result.PropertyID).Error)
	assert.True(t, property.UpdatedAt.Equal(date), "updated_at should carry the transaction date, got %v", property.UpdatedAt)
}
