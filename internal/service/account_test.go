package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"landadmin.com/internal/domain"
	"landadmin.com/internal/model"
)

type fakeVerifier struct {
	claims *domain.IdentityClaims
	err    error
}

func (f *fakeVerifier) Verify(ctx context.Context, idToken string) (*domain.IdentityClaims, error) {
	return f.claims, f.err
}

func TestRegisterCreatesPendingUser(t *testing.T) {
	db := newTestDB(t)
	notifications := NewNotificationService(db, nil)
	svc := NewAccountService(db, "test-secret", nil, notifications)

	user, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Alice Jones",
		Password: "secret123",
		Email:    "alice@example.com",
		Area:     120.5,
		Location: "North District",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, user.Status)
	assert.Equal(t, model.RoleHolder, user.Role)
	assert.NotEqual(t, "secret123", user.Password, "password must be hashed")

	// 注册同时要落一条待审批通知
	pending, err := notifications.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "alice@example.com", pending[0].Email)
}

func TestRegisterDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, "test-secret", nil, nil)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Alice", Password: "secret123", Email: "alice@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Alice", Password: "other", Email: "alice2@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, 409, appCode(t, err))
	assert.Contains(t, err.Error(), "Username already exists")

	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Bob", Password: "other", Email: "alice@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, 409, appCode(t, err))
	assert.Contains(t, err.Error(), "Email already registered")
}

func TestLoginLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, "test-secret", nil, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterRequest{
		Name: "Alice", Password: "secret123", Email: "alice@example.com",
	})
	require.NoError(t, err)

	// 未审批账号不能登录
	_, err = svc.Login(ctx, "Alice", "secret123")
	require.Error(t, err)
	assert.Equal(t, 403, appCode(t, err))

	// 错误密码和不存在的用户都是同一个 401
	_, err = svc.Login(ctx, "Alice", "wrongpass")
	assert.Equal(t, 401, appCode(t, err))
	_, err = svc.Login(ctx, "Nobody", "secret123")
	assert.Equal(t, 401, appCode(t, err))

	// 审批之后可以登录
	require.NoError(t, svc.Approve(ctx, user.ID))
	result, err := svc.Login(ctx, "Alice", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, model.StatusApproved, result.User.Status)

	// 重复审批报 400
	err = svc.Approve(ctx, user.ID)
	assert.Equal(t, 400, appCode(t, err))
}

func TestApproveMarksNotification(t *testing.T) {
	db := newTestDB(t)
	notifications := NewNotificationService(db, nil)
	svc := NewAccountService(db, "test-secret", nil, notifications)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterRequest{
		Name: "Alice", Password: "secret123", Email: "alice@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Approve(ctx, user.ID))

	pending, err := notifications.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending, "signup notification should be approved together with the user")
}

func TestGoogleLogin(t *testing.T) {
	db := newTestDB(t)
	verifier := &fakeVerifier{claims: &domain.IdentityClaims{
		Subject: "google-sub-1",
		Email:   "alice@gmail.com",
		Name:    "Alice",
		Picture: "https://example.com/p.jpg",
	}}
	svc := NewAccountService(db, "test-secret", verifier, nil)
	ctx := context.Background()

	// 首次登录自动建号且直接 approved
	result, err := svc.GoogleLogin(ctx, "valid-token")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, model.StatusApproved, result.User.Status)
	assert.Equal(t, "google-sub-1", result.User.GoogleID)

	// 二次登录命中同一账号
	again, err := svc.GoogleLogin(ctx, "valid-token")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, again.User.ID)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGoogleLoginInvalidToken(t *testing.T) {
	db := newTestDB(t)
	verifier := &fakeVerifier{err: errors.New("token expired")}
	svc := NewAccountService(db, "test-secret", verifier, nil)

	_, err := svc.GoogleLogin(context.Background(), "bad-token")
	require.Error(t, err)
	assert.Equal(t, 401, appCode(t, err))
}

func TestUpdateUserEmailConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, "test-secret", nil, nil)
	ctx := context.Background()

	alice, err := svc.Register(ctx, domain.RegisterRequest{Name: "Alice", Password: "pw123456", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, domain.RegisterRequest{Name: "Bob", Password: "pw123456", Email: "bob@example.com"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, alice.ID, "Alice", "bob@example.com")
	require.Error(t, err)
	assert.Equal(t, 409, appCode(t, err))

	updated, err := svc.Update(ctx, alice.ID, "Alice J", "alicej@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice J", updated.Name)
}

func TestRegisterByAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db, "test-secret", nil, nil)
	ctx := context.Background()

	user, err := svc.RegisterByAdmin(ctx, domain.AdminRegisterRequest{
		Name:        "Eve",
		Password:    "pw123456",
		Email:       "eve@example.com",
		Role:        model.RoleManager,
		Permissions: []string{"users:read", "users:write"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, user.Status)
	assert.Equal(t, []string(user.Permissions), []string{"users:read", "users:write"})

	_, err = svc.RegisterByAdmin(ctx, domain.AdminRegisterRequest{
		Name: "Mallory", Password: "pw123456", Email: "m@example.com", Role: "superuser",
	})
	require.Error(t, err)
	assert.Equal(t, 400, appCode(t, err))
}
