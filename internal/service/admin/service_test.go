package admin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newshub/internal/domain"
	"newshub/internal/repository"
	repomocks "newshub/internal/repository/mocks"
	"newshub/internal/service/admin"
	"newshub/internal/service/audit"
	"newshub/internal/service/dashboard"
	"newshub/internal/service/mocks"
	"newshub/internal/service/notification"
)

type fixture struct {
	svc         admin.Service
	userRepo    *repomocks.UserRepository
	articleRepo *repomocks.ArticleRepository
	reportRepo  *repomocks.ReportRepository
	settingRepo *repomocks.SettingRepository
	auditRepo   *repomocks.AuditLogRepository
	notifSvc    *mocks.NotificationService
	sessionSvc  *mocks.SessionService
}

var adminActor = domain.Identity{UserID: 1, IsAdmin: true}

func newFixture() *fixture {
	f := &fixture{
		userRepo:    new(repomocks.UserRepository),
		articleRepo: new(repomocks.ArticleRepository),
		reportRepo:  new(repomocks.ReportRepository),
		settingRepo: new(repomocks.SettingRepository),
		auditRepo:   new(repomocks.AuditLogRepository),
		notifSvc:    new(mocks.NotificationService),
		sessionSvc:  new(mocks.SessionService),
	}
	f.svc = admin.NewService(
		f.userRepo, f.articleRepo, f.reportRepo, f.settingRepo,
		f.notifSvc, f.sessionSvc, nil,
		audit.NewService(f.auditRepo),
		dashboard.NewService(f.userRepo, f.articleRepo, f.reportRepo, f.settingRepo, nil),
	)
	return f
}

func (f *fixture) withAdmin(ctx context.Context) {
	f.userRepo.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1, IsAdmin: true, IsActive: true}, nil)
	f.auditRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLog")).Return(nil)
}

func TestAdminService_RequiresAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.userRepo.On("GetByID", ctx, int64(42)).Return(&domain.User{ID: 42, IsActive: true}, nil)
	actor := domain.Identity{UserID: 42, IsAdmin: true}

	_, err := f.svc.GetStats(ctx, actor)
	assert.True(t, domain.IsKind(err, domain.KindAuthorization))

	err = f.svc.BanUser(ctx, actor, 9, domain.BanUserInput{Reason: "spam"})
	assert.True(t, domain.IsKind(err, domain.KindAuthorization))

	f.userRepo.AssertNotCalled(t, "SetBanned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_BanUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Ends sessions and alerts the user", func(t *testing.T) {
		f := newFixture()
		f.withAdmin(ctx)
		f.userRepo.On("GetByID", ctx, int64(9)).Return(&domain.User{ID: 9, Name: "Bob", Email: "bob@example.com", IsActive: true}, nil)
		f.userRepo.On("SetBanned", ctx, int64(9), true, mock.MatchedBy(func(r *string) bool {
			return r != nil && *r == "spamming links"
		})).Return(nil).Once()
		f.sessionSvc.On("LogoutAll", ctx, int64(9), domain.LogoutAdminForced).Return(int64(2)).Once()
		f.notifSvc.On("CreateSecurityAlert", ctx, int64(9), "Account Suspended", mock.Anything).Return(int64(0), errors.New("db down"))

		err := f.svc.BanUser(ctx, adminActor, 9, domain.BanUserInput{Reason: " spamming links "})

		require.NoError(t, err)
		f.userRepo.AssertExpectations(t)
		f.sessionSvc.AssertExpectations(t)
		f.auditRepo.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(l *domain.AuditLog) bool {
			return l.Action == domain.AuditBanUser && l.EntityID == 9
		}))
	})

	t.Run("Cannot ban an admin", func(t *testing.T) {
		f := newFixture()
		f.withAdmin(ctx)
		f.userRepo.On("GetByID", ctx, int64(2)).Return(&domain.User{ID: 2, IsAdmin: true, IsActive: true}, nil)

		err := f.svc.BanUser(ctx, adminActor, 2, domain.BanUserInput{Reason: "because"})

		assert.True(t, domain.IsKind(err, domain.KindBusinessRule))
		f.sessionSvc.AssertNotCalled(t, "LogoutAll", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAdminService_Broadcast(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.withAdmin(ctx)
	f.userRepo.On("ListActiveIDs", ctx).Return([]int64{1, 9, 42}, nil)
	f.notifSvc.On("CreateBulk", ctx, mock.MatchedBy(func(req notification.BulkRequest) bool {
		return len(req.RecipientIDs) == 3 &&
			req.Type == domain.NotifAdminMessage &&
			req.FromUserID != nil && *req.FromUserID == 1
	})).Return(2, nil)

	sent, err := f.svc.Broadcast(ctx, adminActor, domain.BroadcastInput{Title: "Maintenance", Message: "Down at noon"})

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
}

func TestAdminService_ResolveReport(t *testing.T) {
	ctx := context.Background()
	author := int64(9)

	t.Run("Resolving with delete removes the article and tells the author", func(t *testing.T) {
		f := newFixture()
		f.withAdmin(ctx)
		f.reportRepo.On("GetByID", ctx, int64(3)).Return(&domain.Report{ID: 3, ArticleID: 7, Reason: "misleading", Status: domain.ReportPending}, nil)
		f.reportRepo.On("Resolve", ctx, int64(3), domain.ReportResolved, int64(1)).Return(nil).Once()
		f.articleRepo.On("GetByID", ctx, int64(7)).Return(&domain.Article{ID: 7, Title: "Hot take", AuthorID: &author}, nil)
		f.articleRepo.On("Delete", ctx, int64(7)).Return(nil).Once()
		f.notifSvc.On("CreateAdminMessage", ctx, int64(9), int64(1), "Article Removed", mock.AnythingOfType("string")).Return(int64(12), nil).Once()

		err := f.svc.ResolveReport(ctx, adminActor, 3, domain.ResolveReportInput{Status: domain.ReportResolved, DeleteArticle: true})

		require.NoError(t, err)
		f.articleRepo.AssertExpectations(t)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("Already reviewed", func(t *testing.T) {
		f := newFixture()
		f.withAdmin(ctx)
		f.reportRepo.On("GetByID", ctx, int64(3)).Return(&domain.Report{ID: 3, Status: domain.ReportDismissed}, nil)

		err := f.svc.ResolveReport(ctx, adminActor, 3, domain.ResolveReportInput{Status: domain.ReportResolved})

		assert.True(t, domain.IsKind(err, domain.KindBusinessRule))
	})
}

func TestAdminService_NewsSyncSetting(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.withAdmin(ctx)
	f.settingRepo.On("SetBool", ctx, repository.SettingNewsSyncEnabled, false).Return(nil).Once()
	f.settingRepo.On("GetBool", ctx, repository.SettingNewsSyncEnabled, true).Return(false, nil).Once()

	require.NoError(t, f.svc.SetNewsSyncEnabled(ctx, adminActor, false))
	enabled, err := f.svc.GetNewsSyncEnabled(ctx, adminActor)

	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestAdminService_GetStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.withAdmin(ctx)
	f.userRepo.On("CountAll", ctx).Return(int64(10), nil)
	f.userRepo.On("CountBanned", ctx).Return(int64(1), nil)
	f.articleRepo.On("CountAll", ctx).Return(int64(50), nil)
	f.articleRepo.On("CountExternal", ctx).Return(int64(30), nil)
	f.reportRepo.On("CountPending", ctx).Return(int64(4), nil)
	f.settingRepo.On("GetBool", ctx, repository.SettingNewsSyncEnabled, true).Return(true, nil)

	stats, err := f.svc.GetStats(ctx, adminActor)

	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalUsers)
	assert.Equal(t, int64(30), stats.ExternalArticles)
	assert.Equal(t, int64(4), stats.PendingReports)
	assert.True(t, stats.NewsSyncEnabled)
}
