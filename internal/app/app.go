package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"life-os/internal/api"
	"life-os/internal/config"
	"life-os/internal/database"
	"life-os/internal/services"
	"life-os/internal/telegram"
	"life-os/internal/utils"
)

const shutdownTimeout = 5 * time.Second

type Application struct {
	config   *config.Config
	db       *database.Database
	bot      *telegram.Bot
	services *services.ServiceManager
	cron     *cron.Cron
	logger   *zap.Logger
}

// logSender stands in for the bot when no Telegram token is configured.
type logSender struct {
	logger *zap.Logger
}

func (s logSender) SendMessage(text string) error {
	s.logger.Info("notification", zap.String("text", text))
	return nil
}

// Open builds the services on top of the configured database without
// starting any transport. The caller closes the returned database.
func Open(cfg *config.Config, logger *zap.Logger) (*database.Database, *services.ServiceManager, error) {
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(cfg.Database.Path, logger)
	if err != nil {
		return nil, nil, err
	}

	sm := services.NewServiceManager(db, loc, time.Now, logger)

	if cfg.Export.Dir != "" {
		ctx := context.Background()
		current, err := sm.Export.Folder(ctx)
		if err == nil && current == "" {
			err = sm.Export.SetFolder(ctx, cfg.Export.Dir)
		}
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("seed export folder: %w", err)
		}
	}

	return db, sm, nil
}

func New(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	db, serviceManager, err := Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	app := &Application{
		config:   cfg,
		db:       db,
		services: serviceManager,
		cron:     cron.New(cron.WithLocation(serviceManager.Calendar.Location())),
		logger:   logger,
	}

	if cfg.BotEnabled() {
		bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID, serviceManager, logger)
		if err != nil {
			db.Close()
			return nil, err
		}
		app.bot = bot
		serviceManager.SetNotificationSender(bot)
	} else {
		logger.Warn("telegram token not set, bot disabled")
		serviceManager.SetNotificationSender(logSender{logger: logger.Named("notify")})
	}

	if err := app.setupCronJobs(); err != nil {
		db.Close()
		return nil, err
	}

	return app, nil
}

// Run serves until ctx is cancelled, then shuts everything down.
func (a *Application) Run(ctx context.Context) error {
	a.logger.Info("starting",
		zap.String("timezone", utils.GetTimezoneInfo(a.services.Calendar.Location(), a.services.Calendar.Now())),
		zap.String("port", a.config.Server.Port),
		zap.Bool("bot", a.bot != nil))

	a.cron.Start()
	defer func() {
		<-a.cron.Stop().Done()
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close database", zap.Error(err))
		}
		a.logger.Info("stopped")
	}()

	// Catch up on an export missed while the process was down.
	a.services.Notification.RunScheduledExport()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})

	if a.bot != nil {
		g.Go(func() error {
			a.logger.Info("bot polling", zap.String("username", a.bot.GetUsername()))
			return a.bot.Start(ctx)
		})
	}

	if a.config.Server.Port != "" {
		srv := api.NewServer(a.services, a.logger).HTTPServer(a.config.Server.Port)
		g.Go(func() error {
			a.logger.Info("api listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("api server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

func (a *Application) setupCronJobs() error {
	jobs := []struct {
		name string
		spec string
		fn   func()
	}{
		{"export", a.config.Schedule.Export, a.services.Notification.RunScheduledExport},
		{"pillar reminder", a.config.Schedule.Reminder, a.services.Notification.SendPillarReminder},
		{"log reminder", a.config.Schedule.Log, a.services.Notification.SendLogReminder},
		{"weekly summary", a.config.Schedule.Weekly, a.services.Notification.SendWeeklySummary},
	}

	for _, job := range jobs {
		if job.spec == "" {
			continue
		}
		if _, err := a.cron.AddFunc(job.spec, job.fn); err != nil {
			return fmt.Errorf("schedule %s: %w", job.name, err)
		}
		a.logger.Debug("scheduled", zap.String("job", job.name), zap.String("spec", job.spec))
	}
	return nil
}
