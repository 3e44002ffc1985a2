package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"newshub/internal/domain"
	"newshub/internal/repository"
	"newshub/internal/service/email"
)

// NotCreated is returned in place of an id when a notification was suppressed.
const NotCreated int64 = 0

const (
	maxPreviewTitle = 50
	summaryRecent   = 5
	unreadCacheTTL  = 5 * time.Minute
)

var (
	ErrInvalidType      = errors.New("invalid notification type")
	ErrInvalidRecipient = errors.New("invalid notification recipient")
	ErrFollowerLookup   = errors.New("failed to resolve followers")
)

type BulkRequest struct {
	RecipientIDs []int64
	Type         domain.NotificationType
	Title        string
	Message      string
	FromUserID   *int64
	ActionURL    *string
}

type Service interface {
	CreateLike(ctx context.Context, postID, likerID, ownerID int64, likerName string) (int64, error)
	CreateComment(ctx context.Context, postID, commentID, commenterID, ownerID int64, commenterName string) (int64, error)
	CreateCommentLike(ctx context.Context, commentID, postID, likerID, ownerID int64, likerName string) (int64, error)
	CreateFollow(ctx context.Context, followerID, followedID int64, followerName string) (int64, error)
	CreateShare(ctx context.Context, postID, sharerID, ownerID int64, sharerName string) (int64, error)
	NotifyFollowersOfNewPost(ctx context.Context, postID, authorID int64, authorName, title string) (int, error)
	CreateAdminMessage(ctx context.Context, recipientID, adminID int64, title, message string) (int64, error)
	CreateSystemUpdate(ctx context.Context, recipientID int64, title, message string, actionURL *string) (int64, error)
	CreateSecurityAlert(ctx context.Context, recipientID int64, title, message string) (int64, error)
	CreateBulk(ctx context.Context, req BulkRequest) (int, error)

	MarkAsRead(ctx context.Context, notificationID, userID int64) (bool, error)
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
	GetUnreadCount(ctx context.Context, userID int64) (int64, error)
	List(ctx context.Context, userID int64, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetSummary(ctx context.Context, userID int64) (*domain.NotificationSummary, error)
}

type service struct {
	notifRepo  repository.NotificationRepository
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	emailSvc   email.Service
	redis      *redis.Client
}

func NewService(
	notifRepo repository.NotificationRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	emailSvc email.Service,
	redisClient *redis.Client,
) Service {
	return &service{
		notifRepo:  notifRepo,
		followRepo: followRepo,
		userRepo:   userRepo,
		emailSvc:   emailSvc,
		redis:      redisClient,
	}
}

func (s *service) CreateLike(ctx context.Context, postID, likerID, ownerID int64, likerName string) (int64, error) {
	if likerID == ownerID {
		return NotCreated, nil
	}

	return s.create(ctx, &domain.NotificationRequest{
		UserID:            ownerID,
		Type:              domain.NotifLike,
		Title:             "New Like",
		Message:           fmt.Sprintf("%s liked your post", likerName),
		RelatedEntityType: strPtr(domain.EntityPost),
		RelatedEntityID:   &postID,
		FromUserID:        &likerID,
		ActionURL:         strPtr(postURL(postID)),
	})
}

func (s *service) CreateComment(ctx context.Context, postID, commentID, commenterID, ownerID int64, commenterName string) (int64, error) {
	if commenterID == ownerID {
		return NotCreated, nil
	}

	return s.create(ctx, &domain.NotificationRequest{
		UserID:            ownerID,
		Type:              domain.NotifComment,
		Title:             "New Comment",
		Message:           fmt.Sprintf("%s commented on your post", commenterName),
		RelatedEntityType: strPtr(domain.EntityPost),
		RelatedEntityID:   &postID,
		FromUserID:        &commenterID,
		ActionURL:         strPtr(commentURL(postID, commentID)),
	})
}

func (s *service) CreateCommentLike(ctx context.Context, commentID, postID, likerID, ownerID int64, likerName string) (int64, error) {
	if likerID == ownerID {
		return NotCreated, nil
	}

	return s.create(ctx, &domain.NotificationRequest{
		UserID:            ownerID,
		Type:              domain.NotifCommentLike,
		Title:             "New Comment Like",
		Message:           fmt.Sprintf("%s liked your comment", likerName),
		RelatedEntityType: strPtr(domain.EntityComment),
		RelatedEntityID:   &commentID,
		FromUserID:        &likerID,
		ActionURL:         strPtr(commentURL(postID, commentID)),
	})
}

// CreateFollow does not check for self-follow; callers reject that before getting here.
func (s *service) CreateFollow(ctx context.Context, followerID, followedID int64, followerName string) (int64, error) {
	return s.create(ctx, &domain.NotificationRequest{
		UserID:            followedID,
		Type:              domain.NotifFollow,
		Title:             "New Follower",
		Message:           fmt.Sprintf("%s started following you", followerName),
		RelatedEntityType: strPtr(domain.EntityUser),
		RelatedEntityID:   &followerID,
		FromUserID:        &followerID,
		ActionURL:         strPtr(userURL(followerID)),
	})
}

func (s *service) CreateShare(ctx context.Context, postID, sharerID, ownerID int64, sharerName string) (int64, error) {
	if sharerID == ownerID {
		return NotCreated, nil
	}

	return s.create(ctx, &domain.NotificationRequest{
		UserID:            ownerID,
		Type:              domain.NotifPostShare,
		Title:             "Post Shared",
		Message:           fmt.Sprintf("%s shared your post", sharerName),
		RelatedEntityType: strPtr(domain.EntityPost),
		RelatedEntityID:   &postID,
		FromUserID:        &sharerID,
		ActionURL:         strPtr(postURL(postID)),
	})
}

// NotifyFollowersOfNewPost writes one NewPost notification per follower, in order.
// A failed follower lookup is returned; a failed write for one follower is logged
// and left out of the count.
func (s *service) NotifyFollowersOfNewPost(ctx context.Context, postID, authorID int64, authorName, title string) (int, error) {
	followerIDs, err := s.followRepo.GetFollowerIDs(ctx, authorID)
	if err != nil {
		return 0, fmt.Errorf("%w for user %d: %v", ErrFollowerLookup, authorID, err)
	}

	message := fmt.Sprintf("%s published: %s", authorName, truncate(title, maxPreviewTitle))
	created := 0
	for _, followerID := range followerIDs {
		if followerID == authorID {
			continue
		}

		_, err := s.create(ctx, &domain.NotificationRequest{
			UserID:            followerID,
			Type:              domain.NotifNewPost,
			Title:             "New Post",
			Message:           message,
			RelatedEntityType: strPtr(domain.EntityPost),
			RelatedEntityID:   &postID,
			FromUserID:        &authorID,
			ActionURL:         strPtr(postURL(postID)),
		})
		if err != nil {
			log.Printf("[NotificationService] new post %d: notify follower %d failed: %v", postID, followerID, err)
			continue
		}
		created++
	}

	return created, nil
}

func (s *service) CreateAdminMessage(ctx context.Context, recipientID, adminID int64, title, message string) (int64, error) {
	return s.create(ctx, &domain.NotificationRequest{
		UserID:            recipientID,
		Type:              domain.NotifAdminMessage,
		Title:             title,
		Message:           message,
		RelatedEntityType: strPtr(domain.EntityAdmin),
		RelatedEntityID:   &adminID,
		FromUserID:        &adminID,
	})
}

func (s *service) CreateSystemUpdate(ctx context.Context, recipientID int64, title, message string, actionURL *string) (int64, error) {
	return s.create(ctx, &domain.NotificationRequest{
		UserID:            recipientID,
		Type:              domain.NotifSystemUpdate,
		Title:             title,
		Message:           message,
		RelatedEntityType: strPtr(domain.EntitySystem),
		ActionURL:         actionURL,
	})
}

func (s *service) CreateSecurityAlert(ctx context.Context, recipientID int64, title, message string) (int64, error) {
	id, err := s.create(ctx, &domain.NotificationRequest{
		UserID:            recipientID,
		Type:              domain.NotifSecurityAlert,
		Title:             title,
		Message:           message,
		RelatedEntityType: strPtr(domain.EntitySystem),
	})
	if err != nil {
		return NotCreated, err
	}

	if s.emailSvc != nil && s.userRepo != nil {
		if user, err := s.userRepo.GetByID(ctx, recipientID); err == nil && user != nil && user.Email != "" {
			go func(toEmail, name string) {
				ctx := context.Background()
				if err := s.emailSvc.SendSecurityAlertEmail(ctx, toEmail, name, title, message); err != nil {
					log.Printf("[NotificationService] failed to send security alert email to user %d: %v", recipientID, err)
				}
			}(user.Email, user.Name)
		}
	}

	return id, nil
}

func (s *service) CreateBulk(ctx context.Context, req BulkRequest) (int, error) {
	if !req.Type.IsValid() {
		return 0, ErrInvalidType
	}

	relatedType := bulkEntityType(req.Type)
	created := 0
	for _, recipientID := range req.RecipientIDs {
		_, err := s.create(ctx, &domain.NotificationRequest{
			UserID:            recipientID,
			Type:              req.Type,
			Title:             req.Title,
			Message:           req.Message,
			RelatedEntityType: relatedType,
			RelatedEntityID:   req.FromUserID,
			FromUserID:        req.FromUserID,
			ActionURL:         req.ActionURL,
		})
		if err != nil {
			log.Printf("[NotificationService] bulk %s: recipient %d failed: %v", req.Type, recipientID, err)
			continue
		}
		created++
	}

	return created, nil
}

func (s *service) MarkAsRead(ctx context.Context, notificationID, userID int64) (bool, error) {
	updated, err := s.notifRepo.MarkAsRead(ctx, notificationID, userID)
	if err != nil {
		return false, err
	}
	if updated {
		s.invalidateUnread(ctx, userID)
		return true, nil
	}

	// A repeat call from the recipient is a no-op success; anyone else gets false.
	notif, err := s.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return false, err
	}
	return notif != nil && notif.UserID == userID && notif.IsRead, nil
}

func (s *service) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	count, err := s.notifRepo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.invalidateUnread(ctx, userID)
	return count, nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID int64) (int64, error) {
	if s.redis == nil {
		return s.notifRepo.CountUnread(ctx, userID)
	}

	key := unreadKey(userID)
	if cached, err := s.redis.Get(ctx, key).Int64(); err == nil {
		return cached, nil
	}

	// The fill is dropped when a write bumps the version between the read and the SET.
	var (
		count   int64
		dbErr   error
		counted bool
	)
	err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
		count, dbErr = s.notifRepo.CountUnread(ctx, userID)
		if dbErr != nil {
			return dbErr
		}
		counted = true

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, count, unreadCacheTTL)
			return nil
		})
		return err
	}, unreadVersionKey(userID))

	if dbErr != nil {
		return 0, dbErr
	}
	if !counted {
		log.Printf("[NotificationService] unread cache unavailable for user %d: %v", userID, err)
		return s.notifRepo.CountUnread(ctx, userID)
	}
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		log.Printf("[NotificationService] failed to cache unread count for user %d: %v", userID, err)
	}
	return count, nil
}

func (s *service) List(ctx context.Context, userID int64, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) GetSummary(ctx context.Context, userID int64) (*domain.NotificationSummary, error) {
	unread, err := s.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.notifRepo.CountAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, _, err := s.notifRepo.ListByUser(ctx, userID, false, domain.PaginationParams{Page: 1, PageSize: summaryRecent})
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []domain.Notification{}
	}

	byType, err := s.notifRepo.CountUnreadByType(ctx, userID)
	if err != nil {
		return nil, err
	}
	unreadByType := make(map[domain.NotificationType]int64, len(byType))
	for _, tc := range byType {
		unreadByType[tc.Type] = tc.Count
	}

	return &domain.NotificationSummary{
		UnreadCount:  unread,
		TotalCount:   total,
		UnreadByType: unreadByType,
		Recent:       recent,
	}, nil
}

func (s *service) create(ctx context.Context, req *domain.NotificationRequest) (int64, error) {
	if !req.Type.IsValid() {
		return NotCreated, ErrInvalidType
	}
	if req.UserID <= 0 {
		return NotCreated, ErrInvalidRecipient
	}

	id, err := s.notifRepo.Create(ctx, req)
	if err != nil {
		return NotCreated, fmt.Errorf("failed to create %s notification for user %d: %w", req.Type, req.UserID, err)
	}

	s.invalidateUnread(ctx, req.UserID)
	return id, nil
}

func (s *service) invalidateUnread(ctx context.Context, userID int64) {
	if s.redis == nil {
		return
	}
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, unreadKey(userID))
		pipe.Incr(ctx, unreadVersionKey(userID))
		pipe.Expire(ctx, unreadVersionKey(userID), 2*unreadCacheTTL)
		return nil
	})
	if err != nil {
		log.Printf("[NotificationService] failed to invalidate unread cache for user %d: %v", userID, err)
	}
}

func bulkEntityType(t domain.NotificationType) *string {
	switch t {
	case domain.NotifAdminMessage:
		return strPtr(domain.EntityAdmin)
	case domain.NotifSystemUpdate, domain.NotifSecurityAlert:
		return strPtr(domain.EntitySystem)
	default:
		return nil
	}
}

func unreadKey(userID int64) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

func unreadVersionKey(userID int64) string {
	return fmt.Sprintf("notifications:unread:%d:v", userID)
}
