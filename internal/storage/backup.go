package storage

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	backupNamePrefix = "atm-"
	backupNameSuffix = ".db"
	backupTimeLayout = "20060102T150405Z"
)

// BackupConfig names where snapshots go and how many are retained.
// Keep <= 0 disables pruning.
type BackupConfig struct {
	Bucket    string
	KeyPrefix string
	Keep      int
}

// Backup uploads database snapshots and prunes old ones.
type Backup struct {
	svc    Service
	cfg    BackupConfig
	logger logrus.FieldLogger
}

func NewBackup(svc Service, cfg BackupConfig, logger logrus.FieldLogger) *Backup {
	if logger == nil {
		logger = logrus.New()
	}
	return &Backup{svc: svc, cfg: cfg, logger: logger}
}

// BackupKey is the object key for a snapshot taken at t.
func BackupKey(keyPrefix string, t time.Time) string {
	name := backupNamePrefix + t.UTC().Format(backupTimeLayout) + backupNameSuffix
	prefix := strings.Trim(keyPrefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Run uploads the snapshot at localPath and then prunes. It returns the uploaded location.
func (b *Backup) Run(ctx context.Context, localPath string, now time.Time) (string, error) {
	key := BackupKey(b.cfg.KeyPrefix, now)
	log := b.logger.WithFields(logrus.Fields{"bucket": b.cfg.Bucket, "key": key})

	location, err := b.svc.UploadFile(ctx, localPath, UploadOptions{
		Bucket: b.cfg.Bucket,
		Key:    key,
		ProgressCallback: func(done, total int64) {
			log.Debugf("backup upload %d/%d bytes", done, total)
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload backup: %w", err)
	}
	log.Infof("database backed up to %s", location)

	pruned, err := b.Prune(ctx)
	if err != nil {
		return location, err
	}
	if len(pruned) > 0 {
		log.WithField("pruned", len(pruned)).Info("old backups removed")
	}
	return location, nil
}

// Prune removes the oldest backups beyond the retention count and returns their keys.
func (b *Backup) Prune(ctx context.Context) ([]string, error) {
	if b.cfg.Keep <= 0 {
		return nil, nil
	}

	prefix := strings.Trim(b.cfg.KeyPrefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	objects, err := b.svc.ListObjects(ctx, b.cfg.Bucket, prefix+backupNamePrefix)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}

	expired := expiredBackups(prefix, objects, b.cfg.Keep)
	if len(expired) == 0 {
		return nil, nil
	}
	if err := b.svc.DeleteObjects(ctx, b.cfg.Bucket, expired); err != nil {
		return nil, fmt.Errorf("prune backups: %w", err)
	}
	return expired, nil
}

// expiredBackups returns backup keys directly under prefix, oldest first,
// excluding the newest keep. Timestamped names sort chronologically.
func expiredBackups(prefix string, objects []ObjectInfo, keep int) []string {
	var keys []string
	for _, obj := range objects {
		name := strings.TrimPrefix(obj.Key, prefix)
		if strings.Contains(name, "/") {
			continue
		}
		if !strings.HasPrefix(name, backupNamePrefix) || !strings.HasSuffix(name, backupNameSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, backupNamePrefix), backupNameSuffix)
		if _, err := time.Parse(backupTimeLayout, stamp); err != nil {
			continue
		}
		keys = append(keys, obj.Key)
	}
	if len(keys) <= keep {
		return nil
	}
	sort.Strings(keys)
	return keys[:len(keys)-keep]
}
