package app

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/repository"
	"github.com/noah-isme/elores-client/internal/schedule"
	"github.com/noah-isme/elores-client/internal/service"
	"github.com/noah-isme/elores-client/internal/session"
	"github.com/noah-isme/elores-client/pkg/cache"
	"github.com/noah-isme/elores-client/pkg/config"
	"github.com/noah-isme/elores-client/pkg/jobs"
	"github.com/noah-isme/elores-client/pkg/security"
	"github.com/noah-isme/elores-client/pkg/storage"
)

// App holds the one session of the process and every service bound to it.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	Metrics  *service.MetricsService
	Client   *session.Client
	Queue    *jobs.Queue
	Session  *session.QueuedExecutor
	Identity *session.Identity

	Auth      *service.AuthService
	Tokens    *service.TokenService
	Schedule  *service.ScheduleService
	Meetings  *service.MeetingService
	Students  *service.StudentService
	Profiles  *service.ProfileService
	Avatars   *service.AvatarService
	Exports   *service.ExportService
	Storage   *storage.LocalStorage
	cacheRepo *repository.CacheRepository
}

// New wires the application. The exchange queue is started with ctx; call
// Close to stop it.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics := service.NewMetricsService()
	client := session.NewClient(session.Options{
		Addr:        cfg.Server.Addr(),
		DialTimeout: cfg.Server.DialTimeout,
		IOTimeout:   cfg.Server.IOTimeout,
		Logger:      logger.Named("session"),
		Observer:    metrics,
	})

	queue := jobs.NewQueue("exchange", jobs.QueueConfig{
		Workers:    1,
		BufferSize: cfg.Queue.BufferSize,
		Logger:     logger.Named("queue"),
	})
	queue.Start(ctx)

	executor := session.NewQueuedExecutor(client, queue)
	identity := session.NewIdentity()
	validate := validator.New()
	periods := models.Periods{FirstHour: cfg.Schedule.FirstPeriodHour}

	store, err := storage.NewLocalStorage(cfg.Exports.Dir)
	if err != nil {
		queue.Stop()
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  metrics,
		Client:   client,
		Queue:    queue,
		Session:  executor,
		Identity: identity,
		Storage:  store,
	}

	a.Auth = service.NewAuthService(executor, identity, validate, logger.Named("auth"))
	a.Tokens = service.NewTokenService(service.TokenConfig{Secret: cfg.Gateway.TokenSecret, TTL: cfg.Gateway.TokenTTL})
	a.Schedule = service.NewScheduleService(executor, identity, schedule.NewComposer(logger.Named("composer")), periods, logger.Named("schedule"))
	a.Meetings = service.NewMeetingService(executor, identity, periods, validate, logger.Named("meetings"))
	a.Students = service.NewStudentService(executor, identity, logger.Named("students"))
	a.Profiles = service.NewProfileService(executor, identity, security.BcryptHasher{Cost: security.DefaultCost}, validate, logger.Named("profile"))
	a.Exports = service.NewExportService(store, logger.Named("export"), nil, nil)

	avatarCache := a.avatarCache(ctx)
	a.Avatars = service.NewAvatarService(&http.Client{Timeout: cfg.Avatar.FetchTimeout}, avatarCache, service.AvatarConfig{
		Timeout:  cfg.Avatar.FetchTimeout,
		MaxBytes: cfg.Avatar.MaxBytes,
		CacheTTL: cfg.Avatar.CacheTTL,
	}, logger.Named("avatar"))

	return a, nil
}

// avatarCache connects to Redis when enabled. An unreachable Redis disables
// the cache instead of failing start-up.
func (a *App) avatarCache(ctx context.Context) *service.CacheService {
	if !a.Config.Avatar.CacheEnabled {
		return nil
	}
	client, err := cache.NewRedis(ctx, a.Config.Redis)
	if err != nil {
		a.Logger.Warn("avatar cache disabled", zap.Error(err))
		return nil
	}
	a.cacheRepo = repository.NewCacheRepository(client, a.Logger.Named("cache"))
	return service.NewCacheService(a.cacheRepo, a.Metrics, a.Config.Avatar.CacheTTL, a.Logger.Named("cache"), true)
}

// Close logs out, closes the connection and stops the queue.
func (a *App) Close(ctx context.Context) {
	if a.Identity.IsAuthenticated() {
		a.Auth.Logout(ctx)
	}
	a.Client.Disconnect()
	a.Queue.Stop()
	if a.cacheRepo != nil {
		if err := a.cacheRepo.Close(); err != nil {
			a.Logger.Warn("closing cache", zap.Error(err))
		}
	}
}
