package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	_ "modernc.org/sqlite"

	"ScannerLedger/internal/model"
)

// SQLiteStore persists every hit and daily summary to a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so analytics reads don't block the append path.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scanner_hits (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			hit_id              INTEGER,
			date                TEXT,
			timestamp           TEXT,
			time_readable       TEXT,
			market_session      TEXT,
			ticker              TEXT,
			price               REAL,
			price_change_pct    REAL,
			price_category      TEXT,
			volume              INTEGER,
			relative_volume     REAL,
			volume_category     TEXT,
			momentum_score      INTEGER,
			primary_trigger     TEXT,
			trigger_description TEXT,
			breakout_detected   INTEGER,
			news_detected       INTEGER,
			signal_strength     INTEGER,
			risk_level          TEXT,
			scanner_criteria    TEXT,
			created_at          DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_hits_date ON scanner_hits(date)`,
		`CREATE INDEX IF NOT EXISTS idx_hits_ticker ON scanner_hits(ticker)`,

		`CREATE TABLE IF NOT EXISTS daily_summaries (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			date                TEXT UNIQUE,
			total_hits          INTEGER,
			unique_tickers      INTEGER,
			trigger_types       TEXT,
			price_ranges        TEXT,
			performance_metrics TEXT,
			created_at          DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) InsertHit(hit *model.HitRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sd := hit.Stock
	ta := hit.Trigger

	_, err := s.db.Exec(`INSERT INTO scanner_hits (
			hit_id, date, timestamp, time_readable, market_session,
			ticker, price, price_change_pct, price_category, volume,
			relative_volume, volume_category, momentum_score,
			primary_trigger, trigger_description, breakout_detected,
			news_detected, signal_strength, risk_level, scanner_criteria
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		hit.HitID, hit.Date(), hit.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
		hit.TimeReadable, string(hit.MarketSession),
		sd.Ticker, nullFloat(sd.Price), nullFloat(sd.PriceChangePct), string(sd.PriceCategory),
		nullInt64(sd.Volume), nullFloat(sd.RelativeVolume), string(sd.VolumeCategory), nullInt(sd.MomentumScore),
		string(ta.PrimaryTrigger), ta.TriggerDescription, boolToInt(ta.BreakoutDetected),
		boolToInt(ta.NewsDetected), ta.SignalStrength, string(ta.RiskLevel),
		hit.Context.ScannerCriteria,
	)
	if err != nil {
		return fmt.Errorf("insert hit: %w: %v", model.ErrPersistence, err)
	}
	return nil
}

func (s *SQLiteStore) UpsertDailySummary(date string, summary *model.DailySummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	triggerTypes, err := json.Marshal(summary.TriggerTypes)
	if err != nil {
		return fmt.Errorf("encode trigger types: %w", err)
	}
	priceRanges, err := json.Marshal(summary.PriceRanges)
	if err != nil {
		return fmt.Errorf("encode price ranges: %w", err)
	}
	metrics, err := json.Marshal(summary.Performance)
	if err != nil {
		return fmt.Errorf("encode performance metrics: %w", err)
	}

	_, err = s.db.Exec(`INSERT OR REPLACE INTO daily_summaries (
			date, total_hits, unique_tickers, trigger_types,
			price_ranges, performance_metrics
		) VALUES (?,?,?,?,?,?)`,
		date, summary.TotalHits, len(summary.UniqueTickers),
		string(triggerTypes), string(priceRanges), string(metrics),
	)
	if err != nil {
		return fmt.Errorf("upsert daily summary: %w: %v", model.ErrPersistence, err)
	}
	return nil
}

func (s *SQLiteStore) QueryHits(q Query) ([]HitRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT id, hit_id, date, timestamp, time_readable, market_session,
		ticker, price, price_change_pct, price_category, volume,
		relative_volume, volume_category, momentum_score,
		primary_trigger, trigger_description, breakout_detected,
		news_detected, signal_strength, risk_level, scanner_criteria
		FROM scanner_hits WHERE 1=1`
	var args []any

	if q.StartDate != "" {
		query += " AND date >= ?"
		args = append(args, q.StartDate)
	}
	if q.EndDate != "" {
		query += " AND date <= ?"
		args = append(args, q.EndDate)
	}
	if q.Ticker != "" {
		query += " AND ticker = ?"
		args = append(args, strings.ToUpper(q.Ticker))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " ORDER BY timestamp DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query hits: %w: %v", model.ErrPersistence, err)
	}
	defer rows.Close()

	var results []HitRow
	for rows.Next() {
		var r HitRow
		var price, changePct, relVolume sql.NullFloat64
		var volume sql.NullInt64
		var momentum sql.NullInt64
		var breakout, news int
		if err := rows.Scan(
			&r.ID, &r.HitID, &r.Date, &r.Timestamp, &r.TimeReadable, &r.MarketSession,
			&r.Ticker, &price, &changePct, &r.PriceCategory, &volume,
			&relVolume, &r.VolumeCategory, &momentum,
			&r.PrimaryTrigger, &r.TriggerDescription, &breakout,
			&news, &r.SignalStrength, &r.RiskLevel, &r.ScannerCriteria,
		); err != nil {
			return nil, fmt.Errorf("scan hit row: %w", err)
		}
		if price.Valid {
			r.Price = &price.Float64
		}
		if changePct.Valid {
			r.PriceChangePct = &changePct.Float64
		}
		if relVolume.Valid {
			r.RelativeVolume = &relVolume.Float64
		}
		if volume.Valid {
			r.Volume = &volume.Int64
		}
		if momentum.Valid {
			m := int(momentum.Int64)
			r.MomentumScore = &m
		}
		r.BreakoutDetected = breakout != 0
		r.NewsDetected = news != 0
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *SQLiteStore) Stats() (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &Stats{}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM scanner_hits").Scan(&st.TotalHits); err != nil {
		return nil, fmt.Errorf("count hits: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(DISTINCT ticker) FROM scanner_hits").Scan(&st.UniqueTickers); err != nil {
		return nil, fmt.Errorf("count tickers: %w", err)
	}

	var first, latest sql.NullString
	if err := s.db.QueryRow("SELECT MIN(date), MAX(date) FROM scanner_hits").Scan(&first, &latest); err != nil {
		return nil, fmt.Errorf("date range: %w", err)
	}
	st.FirstHitDate = first.String
	st.LatestHitDate = latest.String

	if fi, err := os.Stat(s.dbPath); err == nil {
		st.DatabaseSize = humanize.Bytes(uint64(fi.Size()))
	}
	return st, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullInt64(i *int64) any {
	if i == nil {
		return nil
	}
	return *i
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}
