package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryService struct {
	objects   map[string]string
	uploadErr error
	listErr   error
	deleted   [][]string
}

func newMemoryService(keys ...string) *memoryService {
	m := &memoryService{objects: map[string]string{}}
	for _, k := range keys {
		m.objects[k] = "old"
	}
	return m
}

func (m *memoryService) UploadFile(_ context.Context, localPath string, opts UploadOptions) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	m.objects[opts.Key] = localPath
	return "s3://" + opts.Bucket + "/" + opts.Key, nil
}

func (m *memoryService) ListObjects(_ context.Context, _ string, prefix string) ([]ObjectInfo, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []ObjectInfo
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, ObjectInfo{Key: k})
		}
	}
	// S3 ordering is not something pruning may rely on
	sort.Slice(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out, nil
}

func (m *memoryService) DeleteObjects(_ context.Context, _ string, keys []string) error {
	m.deleted = append(m.deleted, keys)
	for _, k := range keys {
		delete(m.objects, k)
	}
	return nil
}

func TestBackupKey(t *testing.T) {
	at := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))

	assert.Equal(t, "atm-backups/atm-20260102T020405Z.db", BackupKey("atm-backups", at))
	assert.Equal(t, "a/b/atm-20260102T020405Z.db", BackupKey("/a/b/", at))
	assert.Equal(t, "atm-20260102T020405Z.db", BackupKey("", at))
}

func TestBackupUploadsAndPrunesOldest(t *testing.T) {
	svc := newMemoryService(
		"atm-backups/atm-20260101T000000Z.db",
		"atm-backups/atm-20260103T000000Z.db",
		"atm-backups/atm-20260102T000000Z.db",
		"atm-backups/atm-notes.db",
		"atm-backups/nested/atm-20250101T000000Z.db",
		"other/atm-20240101T000000Z.db",
	)
	logger, _ := logtest.NewNullLogger()
	b := NewBackup(svc, BackupConfig{Bucket: "bank", KeyPrefix: "atm-backups", Keep: 2}, logger)

	location, err := b.Run(context.Background(), "/tmp/atm.db", time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "s3://bank/atm-backups/atm-20260104T000000Z.db", location)

	require.Len(t, svc.deleted, 1)
	assert.Equal(t, []string{
		"atm-backups/atm-20260101T000000Z.db",
		"atm-backups/atm-20260102T000000Z.db",
	}, svc.deleted[0])

	assert.Contains(t, svc.objects, "atm-backups/atm-20260103T000000Z.db")
	assert.Contains(t, svc.objects, "atm-backups/atm-20260104T000000Z.db")
	assert.Contains(t, svc.objects, "atm-backups/atm-notes.db")
	assert.Contains(t, svc.objects, "atm-backups/nested/atm-20250101T000000Z.db")
	assert.Contains(t, svc.objects, "other/atm-20240101T000000Z.db")
}

func TestPruneDisabledOrUnderLimit(t *testing.T) {
	svc := newMemoryService("p/atm-20260101T000000Z.db", "p/atm-20260102T000000Z.db")

	pruned, err := NewBackup(svc, BackupConfig{Bucket: "b", KeyPrefix: "p", Keep: 0}, nil).Prune(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pruned)

	pruned, err = NewBackup(svc, BackupConfig{Bucket: "b", KeyPrefix: "p", Keep: 5}, nil).Prune(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pruned)
	assert.Empty(t, svc.deleted)
}

func TestBackupErrors(t *testing.T) {
	boom := errors.New("boom")

	svc := newMemoryService()
	svc.uploadErr = boom
	_, err := NewBackup(svc, BackupConfig{Bucket: "b", Keep: 1}, nil).Run(context.Background(), "db", time.Now())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, svc.deleted)

	svc = newMemoryService()
	svc.listErr = boom
	location, err := NewBackup(svc, BackupConfig{Bucket: "b", Keep: 1}, nil).Run(context.Background(), "db", time.Now())
	assert.ErrorIs(t, err, boom)
	assert.NotEmpty(t, location)
}

func TestProgressReporterThrottlesAndFlushes(t *testing.T) {
	var calls [][2]int64
	p := newProgressReporter(10, func(done, total int64) {
		calls = append(calls, [2]int64{done, total})
	})
	require.NotNil(t, p)
	p.interval = time.Hour

	p.report(0)
	n, err := p.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, _ = p.Write(nil)
	_, _ = p.Write([]byte("defghij"))
	p.flush()

	assert.Equal(t, [][2]int64{{0, 10}, {10, 10}, {10, 10}}, calls)
}

func TestProgressReporterNilWithoutCallback(t *testing.T) {
	assert.Nil(t, newProgressReporter(10, nil))
}
