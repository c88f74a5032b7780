package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"landadmin.com/internal/config"
	"landadmin.com/internal/infra"
	"landadmin.com/internal/model"
	"landadmin.com/internal/service"
)

// newTestApp 构建走内存 sqlite 的完整 handler 栈。
// 路由不挂 Casbin 中间件，权限检查单独在 auth 包测试。
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infra.AutoMigrate(db))

	store, err := infra.NewImageStore(config.UploadsConfig{
		Dir:     t.TempDir(),
		MaxSize: 5 * 1024 * 1024,
	}, "http://localhost:2000")
	require.NoError(t, err)

	notifications := service.NewNotificationService(db, nil)
	accounts := service.NewAccountService(db, "test-secret", nil, notifications)
	registry := service.NewRegistryService(db, nil, store)
	transfers := service.NewTransferService(db, nil)
	staff := service.NewStaffService(db)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})

	authHandler := NewAuthHandler(accounts)
	userHandler := NewUserHandler(accounts)
	propertyHandler := NewPropertyHandler(registry, store)
	transferHandler := NewTransferHandler(transfers, store)
	employeeHandler := NewEmployeeHandler(staff)
	taskHandler := NewTaskHandler(staff)
	notificationHandler := NewNotificationHandler(notifications)

	app.Post("/auth/register", authHandler.Register)
	app.Post("/auth/login", authHandler.Login)

	api := app.Group("/api")
	api.Get("/users", userHandler.List)
	api.Post("/users/:id/approve", userHandler.Approve)
	api.Get("/properties", propertyHandler.List)
	api.Get("/properties/search", propertyHandler.Search)
	api.Get("/holders/:name/land-area", propertyHandler.LandArea)
	api.Post("/transfers", transferHandler.Transfer)
	api.Get("/employees", employeeHandler.List)
	api.Post("/tasks", taskHandler.Add)
	api.Get("/notifications", notificationHandler.ListPending)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func TestRegisterAndLoginEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/auth/register", map[string]interface{}{
		"name":     "Alice",
		"password": "secret123",
		"email":    "alice@example.com",
		"area":     120.5,
		"location": "North District",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	payload := decodeBody(t, resp)
	assert.Equal(t, "success", payload["status"])
	assert.NotZero(t, payload["userId"])

	// 自助注册的账号在审批前登录被拒
	resp = doJSON(t, app, "POST", "/auth/login", map[string]interface{}{
		"name": "Alice", "password": "secret123",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// 重复注册 409
	resp = doJSON(t, app, "POST", "/auth/register", map[string]interface{}{
		"name": "Alice", "password": "other", "email": "alice2@example.com",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestApproveEndpointUnlocksLogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/auth/register", map[string]interface{}{
		"name": "Alice", "password": "secret123", "email": "alice@example.com",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	payload := decodeBody(t, resp)
	userID := int(payload["userId"].(float64))

	resp = doJSON(t, app, "POST", "/api/users/"+strconv.Itoa(userID)+"/approve", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/auth/login", map[string]interface{}{
		"name": "Alice", "password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload = decodeBody(t, resp)
	assert.NotEmpty(t, payload["token"])

	// 非数字 id 是 400 而不是 404
	resp = doJSON(t, app, "POST", "/api/users/not-a-number/approve", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPropertySearchEndpoint(t *testing.T) {
	app, db := newTestApp(t)

	require.NoError(t, db.Create(&model.Property{
		Name: "Alice", Location: "North District", Area: 100,
		PropertyType: model.PropertyTypeResidential, PropertyStatus: model.PropertyStatusAvailable,
		Price: 50000, Image: "/Uploads/a.jpg",
	}).Error)

	// 闭区间边界命中
	resp := doJSON(t, app, "GET", "/api/properties/search?minPrice=50000&maxPrice=50000", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload := decodeBody(t, resp)
	data := payload["data"].([]interface{})
	require.Len(t, data, 1)

	// 图片物化为绝对 URL
	first := data[0].(map[string]interface{})
	assert.Equal(t, "http://localhost:2000/Uploads/a.jpg", first["image"])

	// 无结果 404
	resp = doJSON(t, app, "GET", "/api/properties/search?location=Atlantis", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// 非法数字参数 400
	resp = doJSON(t, app, "GET", "/api/properties/search?minPrice=abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPropertyListEmptyEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/properties", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTransferEndpointBuyRequiresImage(t *testing.T) {
	app, db := newTestApp(t)

	require.NoError(t, db.Create(&model.Property{
		Name: "Alice", Location: "North District", Area: 120,
		PropertyType: model.PropertyTypeResidential, Price: 50000,
	}).Error)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("oldHolderName", "Alice"))
	require.NoError(t, writer.WriteField("newHolderName", "Bob"))
	require.NoError(t, writer.WriteField("location", "North District"))
	require.NoError(t, writer.WriteField("area", "120"))
	require.NoError(t, writer.WriteField("transactionType", "Buy"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/transfers", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// 校验失败不能留下买家账号
	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAddTaskEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/tasks", map[string]interface{}{
		"taskName": "Survey plot 42",
		"category": "Land Surveying",
		"salary":   1500,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/tasks", map[string]interface{}{
		"taskName": "Paint the office",
		"category": "Maintenance",
		"salary":   500,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	payload := decodeBody(t, resp)
	assert.Equal(t, "Invalid task category", payload["message"])
}
