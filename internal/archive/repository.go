package archive

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/vitalstats/internal/binding"
	"codeberg.org/mutker/vitalstats/internal/engine"
	"codeberg.org/mutker/vitalstats/internal/logger"
	"codeberg.org/mutker/vitalstats/internal/units"
	_ "github.com/mattn/go-sqlite3"
)

// Repository stores archive records in SQLite, one row per value.
type Repository struct {
	db     *sql.DB
	logger logger.Logger
	cfg    Config
	mu     sync.Mutex
	closed bool
}

func NewRepository(cfg Config, log logger.Logger) (*Repository, error) {
	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.DBPath,
			Error: err.Error(),
		})
	}

	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}

	if err := ValidateAndUpdateSchema(db, cfg.backupDir(), log); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	log.Info().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Msg("Archive repository initialized")

	return &Repository{
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

// Store writes every value of rec in one transaction. Records without values
// are skipped.
func (r *Repository) Store(ctx context.Context, rec *engine.Record) error {
	if rec == nil {
		return errFactory.New(ErrInvalidRecord)
	}
	if len(rec.Values) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		if ctx.Err() != nil {
			return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
		}
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertRecordSQL)
	if err != nil {
		r.rollback(tx)
		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer stmt.Close()

	ts := rec.DateTime.Unix()
	for _, name := range rec.Keys() {
		if _, err := stmt.ExecContext(ctx, ts, int64(rec.UnitSystem), name, rec.Values[name]); err != nil {
			r.rollback(tx)
			return errFactory.WithData(ErrTransactionFailed, struct {
				ObsType string
				Error   string
			}{
				ObsType: name,
				Error:   err.Error(),
			})
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	r.logger.Debug().
		Time("date_time", rec.DateTime).
		Int("values", len(rec.Values)).
		Msg("Stored archive record")

	return nil
}

func (r *Repository) Records(ctx context.Context, from, to time.Time) ([]*engine.Record, error) {
	rows, err := r.db.QueryContext(ctx, selectRecordsSQL, from.Unix(), to.Unix())
	if err != nil {
		return nil, errFactory.Wrap(ErrQueryFailed, err)
	}
	defer rows.Close()

	var (
		out  []*engine.Record
		last *engine.Record
	)
	for rows.Next() {
		var (
			ts      int64
			sys     int64
			obsType string
			value   float64
		)
		if err := rows.Scan(&ts, &sys, &obsType, &value); err != nil {
			return nil, errFactory.Wrap(ErrQueryFailed, err)
		}

		if last == nil || last.DateTime.Unix() != ts {
			last = engine.NewRecord(binding.Archive, units.System(sys), time.Unix(ts, 0))
			out = append(out, last)
		}
		last.Set(obsType, value)
	}
	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(ErrQueryFailed, err)
	}

	return out, nil
}

func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	// Checkpoint WAL and cleanup on close
	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return errFactory.WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "checkpoint_wal",
			Error: err.Error(),
		})
	}

	if err := r.db.Close(); err != nil {
		return errFactory.WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "close_database",
			Error: err.Error(),
		})
	}

	r.logger.Info().Msg("Archive repository closed gracefully")

	return nil
}

func (r *Repository) rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		r.logger.Error().Err(err).Msg("Failed to roll back transaction")
	}
}
