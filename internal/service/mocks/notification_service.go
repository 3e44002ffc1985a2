package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"newshub/internal/domain"
	"newshub/internal/service/notification"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) CreateLike(ctx context.Context, postID, likerID, ownerID int64, likerName string) (int64, error) {
	args := m.Called(ctx, postID, likerID, ownerID, likerName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) CreateComment(ctx context.Context, postID, commentID, commenterID, ownerID int64, commenterName string) (int64, error) {
	args := m.Called(ctx, postID, commentID, commenterID, ownerID, commenterName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) CreateCommentLike(ctx context.Context, commentID, postID, likerID, ownerID int64, likerName string) (int64, error) {
	args := m.Called(ctx, commentID, postID, likerID, ownerID, likerName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) CreateFollow(ctx context.Context, followerID, followedID int64, followerName string) (int64, error) {
	args := m.Called(ctx, followerID, followedID, followerName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) CreateShare(ctx context.Context, postID, sharerID, ownerID int64, sharerName string) (int64, error) {
	args := m.Called(ctx, postID, sharerID, ownerID, sharerName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) NotifyFollowersOfNewPost(ctx context.Context, postID, authorID int64, authorName, title string) (int, error) {
	args := m.Called(ctx, postID, authorID, authorName, title)
	return args.Int(0), args.Error(1)
}

func (m *NotificationService) CreateAdminMessage(ctx context.Context, recipientID, adminID int64, title, message string) (int64, error) {
	args := m.Called(ctx, recipientID, adminID, title, message)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) CreateSystemUpdate(ctx context.Context, recipientID int64, title, message string, actionURL *string) (int64, error) {
	args := m.Called(ctx, recipientID, title, message, actionURL)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) CreateSecurityAlert(ctx context.Context, recipientID int64, title, message string) (int64, error) {
	args := m.Called(ctx, recipientID, title, message)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) CreateBulk(ctx context.Context, req notification.BulkRequest) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID int64) (bool, error) {
	args := m.Called(ctx, notificationID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) List(ctx context.Context, userID int64, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) GetSummary(ctx context.Context, userID int64) (*domain.NotificationSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationSummary), args.Error(1)
}
