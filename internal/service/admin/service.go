package admin

import (
	"context"
	"fmt"
	"log"
	"strings"

	"newshub/internal/domain"
	"newshub/internal/repository"
	"newshub/internal/service/audit"
	"newshub/internal/service/dashboard"
	"newshub/internal/service/email"
	"newshub/internal/service/helpers"
	"newshub/internal/service/notification"
	"newshub/internal/service/oauth"
)

type Service interface {
	BanUser(ctx context.Context, actor domain.Identity, userID int64, input domain.BanUserInput) error
	UnbanUser(ctx context.Context, actor domain.Identity, userID int64) error
	DeleteArticle(ctx context.Context, actor domain.Identity, articleID int64, input domain.ModerationInput) error
	SendMessage(ctx context.Context, actor domain.Identity, input domain.AdminMessageInput) (int64, error)
	Broadcast(ctx context.Context, actor domain.Identity, input domain.BroadcastInput) (int, error)
	ListReports(ctx context.Context, actor domain.Identity, status domain.ReportStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Report], error)
	ResolveReport(ctx context.Context, actor domain.Identity, reportID int64, input domain.ResolveReportInput) error
	GetStats(ctx context.Context, actor domain.Identity) (*domain.AdminStats, error)
	SetNewsSyncEnabled(ctx context.Context, actor domain.Identity, enabled bool) error
	GetNewsSyncEnabled(ctx context.Context, actor domain.Identity) (bool, error)
	ListUsers(ctx context.Context, actor domain.Identity, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error)
	ListAuditLogs(ctx context.Context, actor domain.Identity, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
}

type service struct {
	userRepo    repository.UserRepository
	articleRepo repository.ArticleRepository
	reportRepo  repository.ReportRepository
	settingRepo repository.SettingRepository
	notifSvc    notification.Service
	sessionSvc  oauth.Service
	emailSvc    email.Service
	auditSvc    audit.Service
	statsSvc    dashboard.Service
}

func NewService(
	userRepo repository.UserRepository,
	articleRepo repository.ArticleRepository,
	reportRepo repository.ReportRepository,
	settingRepo repository.SettingRepository,
	notifSvc notification.Service,
	sessionSvc oauth.Service,
	emailSvc email.Service,
	auditSvc audit.Service,
	statsSvc dashboard.Service,
) Service {
	return &service{
		userRepo:    userRepo,
		articleRepo: articleRepo,
		reportRepo:  reportRepo,
		settingRepo: settingRepo,
		notifSvc:    notifSvc,
		sessionSvc:  sessionSvc,
		emailSvc:    emailSvc,
		auditSvc:    auditSvc,
		statsSvc:    statsSvc,
	}
}

// requireAdmin checks the stored admin flag, not the token claim.
func (s *service) requireAdmin(ctx context.Context, actor domain.Identity) error {
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if user == nil || !user.IsAdmin || !user.CanSignIn() {
		return domain.NewAuthorizationError("admin access required")
	}
	return nil
}

func (s *service) BanUser(ctx context.Context, actor domain.Identity, userID int64, input domain.BanUserInput) error {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return err
	}
	if err := domain.Validate(input); err != nil {
		return err
	}

	target, err := helpers.RequireUser(ctx, s.userRepo, userID)
	if err != nil {
		return err
	}
	if target.IsAdmin {
		return domain.NewBusinessRuleError("administrators cannot be banned")
	}
	if target.IsBanned {
		return domain.NewBusinessRuleError("user is already banned")
	}

	reason := strings.TrimSpace(input.Reason)
	if err := s.userRepo.SetBanned(ctx, userID, true, &reason); err != nil {
		return fmt.Errorf("failed to ban user: %w", err)
	}

	ended := s.sessionSvc.LogoutAll(ctx, userID, domain.LogoutAdminForced)
	log.Printf("[Admin] user %d banned by %d, %d sessions ended", userID, actor.UserID, ended)

	notification.BestEffort("ban alert", func() (int64, error) {
		return s.notifSvc.CreateSecurityAlert(ctx, userID, "Account Suspended",
			"Your account has been suspended: "+reason)
	})

	if s.emailSvc != nil {
		go func(to, name string) {
			if err := s.emailSvc.SendBanNoticeEmail(context.Background(), to, name, reason); err != nil {
				log.Printf("[Admin] failed to send ban notice to user %d: %v", userID, err)
			}
		}(target.Email, target.Name)
	}

	s.auditSvc.Record(ctx, actor.UserID, domain.AuditBanUser, domain.EntityUser, userID, map[string]any{
		"reason":         reason,
		"sessions_ended": ended,
	})
	s.statsSvc.Invalidate(ctx)
	return nil
}

func (s *service) UnbanUser(ctx context.Context, actor domain.Identity, userID int64) error {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return err
	}

	target, err := helpers.RequireUser(ctx, s.userRepo, userID)
	if err != nil {
		return err
	}
	if !target.IsBanned {
		return domain.NewBusinessRuleError("user is not banned")
	}

	if err := s.userRepo.SetBanned(ctx, userID, false, nil); err != nil {
		return fmt.Errorf("failed to unban user: %w", err)
	}

	notification.BestEffort("unban notice", func() (int64, error) {
		return s.notifSvc.CreateSystemUpdate(ctx, userID, "Account Restored",
			"Your account has been restored. Welcome back.", nil)
	})

	s.auditSvc.Record(ctx, actor.UserID, domain.AuditUnbanUser, domain.EntityUser, userID, nil)
	s.statsSvc.Invalidate(ctx)
	return nil
}

func (s *service) DeleteArticle(ctx context.Context, actor domain.Identity, articleID int64, input domain.ModerationInput) error {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return err
	}
	if err := domain.Validate(input); err != nil {
		return err
	}
	return s.deleteArticle(ctx, actor, articleID, strings.TrimSpace(input.Reason))
}

func (s *service) deleteArticle(ctx context.Context, actor domain.Identity, articleID int64, reason string) error {
	article, err := helpers.RequireArticle(ctx, s.articleRepo, articleID)
	if err != nil {
		return err
	}
	if err := s.articleRepo.Delete(ctx, articleID); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	if article.AuthorID != nil && *article.AuthorID != actor.UserID {
		authorID := *article.AuthorID
		message := fmt.Sprintf("Your article %q was removed by a moderator.", article.Title)
		if reason != "" {
			message += " Reason: " + reason
		}
		notification.BestEffort("article removed", func() (int64, error) {
			return s.notifSvc.CreateAdminMessage(ctx, authorID, actor.UserID, "Article Removed", message)
		})
	}

	s.auditSvc.Record(ctx, actor.UserID, domain.AuditDeleteArticle, domain.EntityPost, articleID, map[string]any{
		"title":  article.Title,
		"reason": reason,
	})
	s.statsSvc.Invalidate(ctx)
	return nil
}

// SendMessage delivers one admin message. The notification is the primary
// result here, so engine errors are returned.
func (s *service) SendMessage(ctx context.Context, actor domain.Identity, input domain.AdminMessageInput) (int64, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return 0, err
	}
	if err := domain.Validate(input); err != nil {
		return 0, err
	}
	if _, err := helpers.RequireUser(ctx, s.userRepo, input.UserID); err != nil {
		return 0, err
	}

	id, err := s.notifSvc.CreateAdminMessage(ctx, input.UserID, actor.UserID,
		strings.TrimSpace(input.Title), strings.TrimSpace(input.Message))
	if err != nil {
		return 0, fmt.Errorf("failed to send admin message: %w", err)
	}

	s.auditSvc.Record(ctx, actor.UserID, domain.AuditDirectMessage, domain.EntityUser, input.UserID, map[string]any{
		"title": input.Title,
	})
	return id, nil
}

func (s *service) Broadcast(ctx context.Context, actor domain.Identity, input domain.BroadcastInput) (int, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return 0, err
	}
	if err := domain.Validate(input); err != nil {
		return 0, err
	}

	recipients, err := s.userRepo.ListActiveIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list recipients: %w", err)
	}

	adminID := actor.UserID
	sent, err := s.notifSvc.CreateBulk(ctx, notification.BulkRequest{
		RecipientIDs: recipients,
		Type:         domain.NotifAdminMessage,
		Title:        strings.TrimSpace(input.Title),
		Message:      strings.TrimSpace(input.Message),
		FromUserID:   &adminID,
		ActionURL:    input.ActionURL,
	})
	if err != nil {
		return 0, err
	}

	s.auditSvc.Record(ctx, actor.UserID, domain.AuditBroadcast, domain.EntitySystem, 0, map[string]any{
		"title":      input.Title,
		"recipients": len(recipients),
		"delivered":  sent,
	})
	return sent, nil
}

func (s *service) ListReports(ctx context.Context, actor domain.Identity, status domain.ReportStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Report], error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return domain.PaginatedResponse[domain.Report]{}, err
	}

	params.Validate()
	reports, total, err := s.reportRepo.List(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Report]{}, err
	}
	return domain.NewPaginatedResponse(reports, params.Page, params.PageSize, total), nil
}

func (s *service) ResolveReport(ctx context.Context, actor domain.Identity, reportID int64, input domain.ResolveReportInput) error {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return err
	}
	if err := domain.Validate(input); err != nil {
		return err
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return domain.NewNotFoundError("report %d not found", reportID)
	}
	if report.Status != domain.ReportPending {
		return domain.NewBusinessRuleError("report has already been reviewed")
	}

	if err := s.reportRepo.Resolve(ctx, reportID, input.Status, actor.UserID); err != nil {
		return fmt.Errorf("failed to resolve report: %w", err)
	}

	s.auditSvc.Record(ctx, actor.UserID, domain.AuditResolveReport, domain.EntityPost, report.ArticleID, map[string]any{
		"report_id": reportID,
		"status":    input.Status,
	})

	if input.Status == domain.ReportResolved && input.DeleteArticle {
		return s.deleteArticle(ctx, actor, report.ArticleID, report.Reason)
	}
	s.statsSvc.Invalidate(ctx)
	return nil
}

func (s *service) GetStats(ctx context.Context, actor domain.Identity) (*domain.AdminStats, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	return s.statsSvc.GetStats(ctx)
}

func (s *service) SetNewsSyncEnabled(ctx context.Context, actor domain.Identity, enabled bool) error {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return err
	}
	if err := s.settingRepo.SetBool(ctx, repository.SettingNewsSyncEnabled, enabled); err != nil {
		return fmt.Errorf("failed to update news sync setting: %w", err)
	}

	s.auditSvc.Record(ctx, actor.UserID, domain.AuditToggleSync, domain.EntitySystem, 0, map[string]any{
		"enabled": enabled,
	})
	s.statsSvc.Invalidate(ctx)
	return nil
}

func (s *service) GetNewsSyncEnabled(ctx context.Context, actor domain.Identity) (bool, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return false, err
	}
	return s.settingRepo.GetBool(ctx, repository.SettingNewsSyncEnabled, true)
}

func (s *service) ListUsers(ctx context.Context, actor domain.Identity, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}

	params.Validate()
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}
	return domain.NewPaginatedResponse(users, params.Page, params.PageSize, total), nil
}

func (s *service) ListAuditLogs(ctx context.Context, actor domain.Identity, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}
	return s.auditSvc.List(ctx, params)
}
