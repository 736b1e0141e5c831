package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"atm-terminal/internal/config"
	"atm-terminal/internal/repository/sqlite"
	"atm-terminal/internal/service"
	"atm-terminal/internal/session"
	"atm-terminal/internal/storage"
	"atm-terminal/internal/terminal"
)

const (
	backupTimeout = 2 * time.Minute
	sessionGrace  = 2 * time.Second
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := run(logger); err != nil {
		logger.Fatalf("atm: %v", err)
	}
}

func run(logger *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	closeLog, err := configureLogger(logger, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	accountRepo := sqlite.NewAccountRepository(db)
	if err := accountRepo.Init(ctx); err != nil {
		return fmt.Errorf("init account repository: %w", err)
	}
	created, err := accountRepo.EnsureAdministrator(ctx, cfg.Admin.Login, cfg.Admin.Pin)
	if err != nil {
		return fmt.Errorf("seed administrator: %w", err)
	}
	if created {
		logger.WithField("login", cfg.Admin.Login).Info("administrator account created")
	}

	controller := session.NewController(
		accountRepo,
		service.NewTransactionService(accountRepo),
		service.NewAdminService(accountRepo),
		terminal.NewConsole(os.Stdin, os.Stdout, !color.NoColor),
		logger,
	)

	// a blocked terminal read cannot observe ctx, so the session runs aside
	done := make(chan error, 1)
	go func() {
		done <- controller.Run(ctx)
	}()

	sessionErr := awaitSession(ctx, done, sessionGrace, logger)
	if errors.Is(sessionErr, context.Canceled) {
		sessionErr = nil
	}

	if cfg.BackupEnabled() {
		backupCtx, cancel := context.WithTimeout(context.Background(), backupTimeout)
		defer cancel()
		if err := backupDatabase(backupCtx, cfg, db, logger); err != nil {
			logger.WithError(err).Error("database backup failed")
		}
	}

	if sessionErr != nil {
		return fmt.Errorf("session: %w", sessionErr)
	}
	logger.Info("bye")
	return nil
}

// awaitSession returns the session result. After an interrupt it waits up to
// grace for an in-flight store call to finish; a session still blocked on a
// terminal read holds no statement open and is abandoned.
func awaitSession(ctx context.Context, done <-chan error, grace time.Duration, logger logrus.FieldLogger) error {
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		logger.Info("interrupted, shutting down...")
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		logger.Warn("session still waiting for input, leaving it behind")
		return nil
	}
}

func configureLogger(logger *logrus.Logger, cfg config.Config) (func(), error) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)

	if cfg.Log.File == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return func() { f.Close() }, nil
}

func backupDatabase(ctx context.Context, cfg config.Config, db *sql.DB, logger *logrus.Logger) error {
	tmpDir, err := os.MkdirTemp("", "atm-backup-")
	if err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	snapshot := filepath.Join(tmpDir, "atm.db")
	if err := sqlite.Snapshot(ctx, db, snapshot); err != nil {
		return err
	}

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("setup storage: %w", err)
	}

	backup := storage.NewBackup(storageSvc, storage.BackupConfig{
		Bucket:    cfg.Backup.Bucket,
		KeyPrefix: cfg.Backup.KeyPrefix,
		Keep:      cfg.Backup.Keep,
	}, logger)
	_, err = backup.Run(ctx, snapshot, time.Now())
	return err
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Backup.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Backup.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Backup.Bucket, cfg.Backup.Region)
	return storage.NewS3Service(client), nil
}
