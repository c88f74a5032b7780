package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"landadmin.com/internal/model"
)

type fakeNotifier struct {
	broadcasts []interface{}
}

func (f *fakeNotifier) BroadcastToAll(data interface{}) {
	f.broadcasts = append(f.broadcasts, data)
}

func TestNotificationLifecycle(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewNotificationService(db, notifier)
	ctx := context.Background()

	created, err := svc.Create(ctx, "signup", "Alice", "alice@example.com", model.RoleHolder, "")
	require.NoError(t, err)
	assert.Equal(t, model.NotificationPending, created.Status, "empty status defaults to pending")
	assert.Len(t, notifier.broadcasts, 1, "creation is pushed to the admin feed")

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	reviewed, err := svc.Review(ctx, created.ID, model.NotificationRejected, "incomplete documents")
	require.NoError(t, err)
	assert.Equal(t, model.NotificationRejected, reviewed.Status)
	assert.Equal(t, "incomplete documents", reviewed.RejectionReason)
	assert.Len(t, notifier.broadcasts, 2)

	// 审批完成后不再出现在待审批列表
	pending, err = svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReviewValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "signup", "Alice", "alice@example.com", model.RoleHolder, model.NotificationPending)
	require.NoError(t, err)

	_, err = svc.Review(ctx, created.ID, "maybe", "")
	require.Error(t, err)
	assert.Equal(t, 400, appCode(t, err))

	_, err = svc.Review(ctx, 9999, model.NotificationApproved, "")
	require.Error(t, err)
	assert.Equal(t, 404, appCode(t, err))
}

func TestCreateNotificationValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)

	_, err := svc.Create(context.Background(), "", "Alice", "alice@example.com", model.RoleHolder, "")
	require.Error(t, err)
	assert.Equal(t, 400, appCode(t, err))
}
