package service

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/infra"
)

// newTestDB 每个测试用独立的内存 sqlite
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infra.AutoMigrate(db))
	return db
}

// appCode 提取业务错误里的 HTTP 状态码
func appCode(t *testing.T, err error) int {
	t.Helper()

	var appErr *domain.AppError
	require.True(t, errors.As(err, &appErr), "expected *domain.AppError, got %v", err)
	return appErr.Code
}
