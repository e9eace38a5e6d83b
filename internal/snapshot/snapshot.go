// Package snapshot periodically copies the sqlite store, encrypts the copy,
// and uploads it to S3-compatible storage. Snapshots are best-effort: a
// failed run is logged and the next tick tries again.
package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sethvargo/go-retry"
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config holds snapshot configuration. The manager is disabled unless
// Bucket, AccessKey, SecretKey, and Passphrase are all set.
type Config struct {
	Endpoint   string
	Bucket     string
	Region     string
	AccessKey  string
	SecretKey  string
	Passphrase string
	DBPath     string
	Interval   time.Duration
}

// Enabled reports whether the config is complete enough to snapshot.
func (c Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != "" && c.Passphrase != ""
}

// Manager runs the snapshot loop.
type Manager struct {
	cfg    Config
	db     *sql.DB
	client s3Client
	logger *slog.Logger

	mu      sync.RWMutex
	lastRun *time.Time
	lastErr string
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewManager(cfg Config, db *sql.DB, logger *slog.Logger) *Manager {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	m := &Manager{
		cfg:    cfg,
		db:     db,
		logger: logger.With("component", "snapshot"),
	}
	if cfg.Enabled() {
		m.client = newS3Client(cfg)
	}
	return m
}

func newS3Client(cfg Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Start begins the snapshot loop. No-op when unconfigured.
func (m *Manager) Start(ctx context.Context) {
	if m.client == nil {
		m.logger.Info("snapshots disabled")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.cancel = cancel
	m.done = make(chan struct{})
	done := m.done
	m.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(m.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := m.RunOnce(ctx); err != nil {
					m.logger.Error("snapshot failed", "error", err)
				}
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (m *Manager) Stop() {
	m.mu.RLock()
	cancel := m.cancel
	done := m.done
	m.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Status returns the last run time and error, if any.
func (m *Manager) Status() (lastRun *time.Time, lastErr string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRun, m.lastErr
}

// RunOnce takes one snapshot: VACUUM INTO a temp copy, encrypt, upload
// with backoff, then refresh the latest key.
func (m *Manager) RunOnce(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("snapshots not configured")
	}

	err := m.runOnce(ctx)

	m.mu.Lock()
	if err != nil {
		m.lastErr = err.Error()
	} else {
		now := time.Now().UTC()
		m.lastRun = &now
		m.lastErr = ""
	}
	m.mu.Unlock()
	return err
}

func (m *Manager) runOnce(ctx context.Context) error {
	tmpDir := os.TempDir()
	dbCopy := filepath.Join(tmpDir, fmt.Sprintf("wellspring-snapshot-%d.db", os.Getpid()))
	encFile := dbCopy + ".enc"
	defer os.Remove(dbCopy)
	defer os.Remove(encFile)
	os.Remove(dbCopy)

	// VACUUM INTO writes a consistent copy without blocking writers.
	if _, err := m.db.ExecContext(ctx, "VACUUM INTO ?", dbCopy); err != nil {
		return fmt.Errorf("vacuum into: %w", err)
	}

	if err := EncryptFile(dbCopy, encFile, m.cfg.Passphrase); err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}

	timestamp := time.Now().UTC().Format("2006-01-02T150405Z")
	key := fmt.Sprintf("snapshots/wellspring-%s.db.enc", timestamp)

	if err := m.upload(ctx, key, encFile); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	if err := m.upload(ctx, "snapshots/latest.db.enc", encFile); err != nil {
		return fmt.Errorf("upload latest: %w", err)
	}

	m.logger.Info("snapshot uploaded", "key", key)
	return nil
}

// upload pushes the file to S3, retrying transient failures with
// exponential backoff.
func (m *Manager) upload(ctx context.Context, key, path string) error {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(time.Second))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil {
			return err
		}

		_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(m.cfg.Bucket),
			Key:           aws.String(key),
			Body:          f,
			ContentLength: aws.Int64(stat.Size()),
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
