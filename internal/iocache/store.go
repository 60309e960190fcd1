// Package iocache is the durable cache for fetched weather observations.
// It lets repeat fetch runs skip the POWER API for ranges already seen.
package iocache

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/schema"
	"github.com/go-sql-driver/mysql"   // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

const tableName = "weather_observations"

// ObservationStoreImpl backs the observation cache with a SQL database.
type ObservationStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.ObservationStore = &ObservationStoreImpl{} // Compile-time check

// NewObservationStore opens the cache for the configured backend and brings
// its schema up to date. The none backend returns a no-op store.
func NewObservationStore(backend schema.DatabaseBackend, connStr string) (contract.ObservationStore, error) {
	if backend == schema.NoneBackend {
		return &ObservationStoreImpl{backend: backend}, nil
	}

	db, err := openBackend(backend, connStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s cache. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	if err := migrateUp(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &ObservationStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

// openBackend opens the raw connection for a backend.
func openBackend(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetCacheDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite cache at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Single connection avoids "database is locked" errors.
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL cache: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL cache: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported cache backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
}

// PutSeries upserts one series worth of observations.
func (s *ObservationStoreImpl) PutSeries(country string, param schema.WeatherParameter, series schema.TimeSeries) error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache write: %w", err)
	}
	now := time.Now().Unix()
	query := s.upsertQuery()
	for _, obs := range series.Points() {
		value := sql.NullFloat64{Float64: obs.Value, Valid: !math.IsNaN(obs.Value)}
		if _, err := tx.Exec(query, country, contract.FormatDay(obs.Date), string(param), value, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("cache write for %s/%s: %w", country, param, err)
		}
	}
	return tx.Commit()
}

// GetSeries reads cached observations inside [start, end].
func (s *ObservationStoreImpl) GetSeries(country string, param schema.WeatherParameter, start, end time.Time) (schema.TimeSeries, bool, error) {
	var empty schema.TimeSeries
	if s.backend == schema.NoneBackend || s.db == nil {
		return empty, false, nil
	}

	query := fmt.Sprintf(
		`SELECT obs_date, obs_value FROM %s WHERE country = %s AND parameter = %s AND obs_date >= %s AND obs_date <= %s ORDER BY obs_date`,
		tableName, s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4))
	rows, err := s.db.Query(query, country, string(param), contract.FormatDay(start), contract.FormatDay(end))
	if err != nil {
		return empty, false, fmt.Errorf("cache read for %s/%s: %w", country, param, err)
	}
	defer rows.Close()

	var obs []schema.Observation
	for rows.Next() {
		var day string
		var value sql.NullFloat64
		if err := rows.Scan(&day, &value); err != nil {
			return empty, false, fmt.Errorf("cache scan for %s/%s: %w", country, param, err)
		}
		d, err := contract.ParseDay(day)
		if err != nil {
			continue
		}
		v := math.NaN()
		if value.Valid {
			v = value.Float64
		}
		obs = append(obs, schema.Observation{Date: d, Value: v})
	}
	if err := rows.Err(); err != nil {
		return empty, false, fmt.Errorf("cache read for %s/%s: %w", country, param, err)
	}
	if len(obs) == 0 {
		return empty, false, nil
	}
	return schema.NewTimeSeries(obs), true, nil
}

// Status summarizes the cache contents.
func (s *ObservationStoreImpl) Status() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
	}
	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", tableName))
	if err := row.Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}

	row = s.db.QueryRow(fmt.Sprintf("SELECT COUNT(DISTINCT country) FROM %s", tableName))
	if err := row.Scan(&status.Countries); err != nil {
		return status, fmt.Errorf("failed to get country count: %w", err)
	}

	if status.TotalEntries == 0 {
		return status, nil
	}

	var lastTs, oldestTs int64
	row = s.db.QueryRow(fmt.Sprintf("SELECT MAX(fetched_at), MIN(fetched_at) FROM %s", tableName))
	if err := row.Scan(&lastTs, &oldestTs); err != nil {
		return status, fmt.Errorf("failed to get entry times: %w", err)
	}
	status.LastEntryTime = time.Unix(lastTs, 0)
	status.OldestEntryTime = time.Unix(oldestTs, 0)

	status.TableSizeBytes = s.tableSize(status.TotalEntries)
	return status, nil
}

// tableSize estimates on-disk size per backend, falling back to a rough
// per-row estimate when the backend query fails.
func (s *ObservationStoreImpl) tableSize(totalEntries int64) int64 {
	fallback := totalEntries * 64
	switch s.backend {
	case schema.SQLiteBackend:
		var size int64
		row := s.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&size); err != nil {
			return fallback
		}
		return size

	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(s.connStr)
		if err != nil || cfg.DBName == "" {
			return fallback
		}
		var size int64
		row := s.db.QueryRow(
			"SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?",
			cfg.DBName, tableName)
		if err := row.Scan(&size); err != nil {
			return fallback
		}
		return size

	case schema.PostgreSQLBackend:
		var size int64
		row := s.db.QueryRow("SELECT pg_total_relation_size($1)", tableName)
		if err := row.Scan(&size); err != nil {
			return fallback
		}
		return size

	default:
		return fallback
	}
}

// Clear drops every cached observation.
func (s *ObservationStoreImpl) Clear() error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", tableName)); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Close closes the underlying DB connection.
func (s *ObservationStoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// placeholder returns the parameter placeholder for the backend.
func (s *ObservationStoreImpl) placeholder(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// upsertQuery returns the UPSERT statement for the backend.
func (s *ObservationStoreImpl) upsertQuery() string {
	switch s.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (country, obs_date, parameter, obs_value, fetched_at) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE obs_value = new.obs_value, fetched_at = new.fetched_at`, tableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (country, obs_date, parameter, obs_value, fetched_at) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (country, obs_date, parameter) DO UPDATE SET obs_value = EXCLUDED.obs_value, fetched_at = EXCLUDED.fetched_at`, tableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (country, obs_date, parameter, obs_value, fetched_at) VALUES (?, ?, ?, ?, ?)`, tableName)
	}
}
