package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"

	"github.com/bnema/mediaconv/internal/domain"
	"github.com/bnema/mediaconv/internal/port"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DefaultListLimit caps ListRecent when the caller passes a non-positive limit.
const DefaultListLimit = 50

const maxErrorMessage = 4096

type Store struct {
	db *sql.DB
}

var hookOnce sync.Once

func registerHook() {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA busy_timeout = 5000",
				"PRAGMA synchronous = NORMAL",
			}
			for _, p := range pragmas {
				if _, err := conn.ExecContext(context.Background(), p, nil); err != nil {
					return fmt.Errorf("execute %s: %w", p, err)
				}
			}
			return nil
		})
	})
}

var gooseMu sync.Mutex

// NewStore opens (or creates) mediaconv.db in dataDir and applies pending
// migrations.
func NewStore(dataDir string) (*Store, error) {
	registerHook()

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "mediaconv.db"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection for SQLite (WAL allows concurrent reads but only one writer)
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// goose keeps its configuration in package globals.
func migrate(db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// truncateMessage cuts msg to at most n bytes on a rune boundary.
func truncateMessage(msg string, n int) string {
	if len(msg) <= n {
		return msg
	}
	for n > 0 && !utf8.RuneStart(msg[n]) {
		n--
	}
	return msg[:n]
}

func (s *Store) Save(ctx context.Context, r *domain.ConversionRecord) error {
	msg := truncateMessage(r.ErrorMessage, maxErrorMessage)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions (
			id, strategy, source_mime, target_mime, original_name, output_name,
			status, error_kind, error_message, input_size, output_size,
			input_digest, output_digest, duration_ns, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Strategy, r.SourceMIME, r.TargetMIME, r.OriginalName, r.OutputName,
		string(r.Status), r.ErrorKind, msg, r.InputSize, r.OutputSize,
		r.InputDigest, r.OutputDigest, int64(r.Duration), r.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert conversion: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT id, strategy, source_mime, target_mime, original_name, output_name,
	       status, error_kind, error_message, input_size, output_size,
	       input_digest, output_digest, duration_ns, created_at
	FROM conversions`

func (s *Store) Get(ctx context.Context, id string) (*domain.ConversionRecord, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conversion: %w", err)
	}
	return r, nil
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]*domain.ConversionRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	records := []*domain.ConversionRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*domain.ConversionRecord, error) {
	var (
		r         domain.ConversionRecord
		status    string
		duration  int64
		createdAt int64
	)
	err := sc.Scan(
		&r.ID, &r.Strategy, &r.SourceMIME, &r.TargetMIME, &r.OriginalName, &r.OutputName,
		&status, &r.ErrorKind, &r.ErrorMessage, &r.InputSize, &r.OutputSize,
		&r.InputDigest, &r.OutputDigest, &duration, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	r.Status = domain.RecordStatus(status)
	r.Duration = time.Duration(duration)
	r.CreatedAt = time.Unix(0, createdAt).UTC()
	return &r, nil
}

var _ port.HistoryStore = (*Store)(nil)
