package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chaisthra/vibetrack/internal"
)

// PostgresStorage implements the repositories with per-record upserts and
// indexed owner/timestamp queries instead of whole-collection rewrites.
// Timestamps stay text columns so range filters keep the same lexicographic
// semantics as the file backend.
type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, storageErr("connect postgres", err)
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() {
	p.pool.Close()
}

// --- UserRepository ---

func (p *PostgresStorage) CreateUser(ctx context.Context, u *internal.User) error {
	var exists bool
	err := p.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, u.Username).Scan(&exists)
	if err != nil {
		p.logger.Errorf("failed to check username: %v", err)
		return storageErr("check username", err)
	}
	if exists {
		return internal.ErrDuplicateUsername
	}
	_, err = p.pool.Exec(ctx, `INSERT INTO users (id, username, email, full_name, hashed_password, created_at, last_login, elevenlabs_key, theme, notifications_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Username, u.Email, u.FullName, u.HashedPassword, u.CreatedAt, u.LastLogin, u.ElevenLabsKey,
		u.Settings.Theme, u.Settings.NotificationsEnabled)
	if err != nil {
		p.logger.Errorf("failed to insert user: %v", err)
		return storageErr("insert user", err)
	}
	return nil
}

func (p *PostgresStorage) GetUserByUsername(ctx context.Context, username string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, username, email, full_name, hashed_password, created_at, last_login, elevenlabs_key, theme, notifications_enabled
		FROM users WHERE username = $1`, username)
	var u internal.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.HashedPassword, &u.CreatedAt, &u.LastLogin, &u.ElevenLabsKey,
		&u.Settings.Theme, &u.Settings.NotificationsEnabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrNotFound
		}
		p.logger.Errorf("failed to query user: %v", err)
		return nil, storageErr("query user", err)
	}
	return &u, nil
}

func (p *PostgresStorage) UpdateUser(ctx context.Context, username string, update internal.UserUpdate) (*internal.User, error) {
	u, err := p.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	applyUserUpdate(u, update)
	_, err = p.pool.Exec(ctx, `UPDATE users SET email = $2, full_name = $3, hashed_password = $4, last_login = $5, elevenlabs_key = $6 WHERE username = $1`,
		username, u.Email, u.FullName, u.HashedPassword, u.LastLogin, u.ElevenLabsKey)
	if err != nil {
		p.logger.Errorf("failed to update user: %v", err)
		return nil, storageErr("update user", err)
	}
	return u, nil
}

// --- ActivityRepository ---

func (p *PostgresStorage) SaveActivity(ctx context.Context, a *internal.Activity) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO activities (id, user_id, type, raw_text, processed_text, category, timestamp, conversation_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.UserID, a.Type, a.RawText, a.ProcessedText, a.Category, a.Timestamp, a.ConversationID)
	if err != nil {
		p.logger.Errorf("failed to insert activity: %v", err)
		return storageErr("insert activity", err)
	}
	return nil
}

func (p *PostgresStorage) ListActivities(ctx context.Context, userID, start, end string) ([]internal.Activity, error) {
	query := `SELECT id, user_id, type, raw_text, processed_text, category, timestamp, conversation_id
		FROM activities WHERE user_id = $1`
	args := []any{userID}
	if start != "" {
		args = append(args, start)
		query += ` AND timestamp >= $2`
	}
	if end != "" {
		args = append(args, end)
		if start != "" {
			query += ` AND timestamp < $3`
		} else {
			query += ` AND timestamp < $2`
		}
	}
	query += ` ORDER BY timestamp`

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("failed to query activities: %v", err)
		return nil, storageErr("query activities", err)
	}
	defer rows.Close()

	activities := []internal.Activity{}
	for rows.Next() {
		var a internal.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.RawText, &a.ProcessedText, &a.Category, &a.Timestamp, &a.ConversationID); err != nil {
			p.logger.Errorf("failed to scan activity: %v", err)
			return nil, storageErr("scan activity", err)
		}
		activities = append(activities, a)
	}
	return activities, nil
}

// --- CategoryRepository ---

func (p *PostgresStorage) RecordCategoryUse(ctx context.Context, category, userID, contextClue string) (*internal.CounterEntry, error) {
	now := internal.NowString()
	_, err := p.pool.Exec(ctx, `INSERT INTO category_counters (category, count, first_seen, context_clues)
		VALUES ($1, 1, $2, CASE WHEN $3 = '' THEN ARRAY[]::text[] ELSE ARRAY[$3] END)
		ON CONFLICT (category) DO UPDATE SET
			count = category_counters.count + 1,
			context_clues = CASE
				WHEN $3 = '' OR $3 = ANY(category_counters.context_clues) THEN category_counters.context_clues
				ELSE array_append(category_counters.context_clues, $3)
			END`,
		category, now, contextClue)
	if err != nil {
		p.logger.Errorf("failed to upsert category counter: %v", err)
		return nil, storageErr("upsert counter", err)
	}

	_, err = p.pool.Exec(ctx, `INSERT INTO category_user_stats (category, user_id, count, first_used, last_used)
		VALUES ($1, $2, 1, $3, $3)
		ON CONFLICT (category, user_id) DO UPDATE SET
			count = category_user_stats.count + 1,
			last_used = $3`,
		category, userID, now)
	if err != nil {
		p.logger.Errorf("failed to upsert category user stats: %v", err)
		return nil, storageErr("upsert user stats", err)
	}

	return p.loadCounter(ctx, category)
}

func (p *PostgresStorage) loadCounter(ctx context.Context, category string) (*internal.CounterEntry, error) {
	row := p.pool.QueryRow(ctx, `SELECT count, first_seen, context_clues FROM category_counters WHERE category = $1`, category)
	entry := &internal.CounterEntry{UserStats: map[string]*internal.UserCategoryStats{}}
	if err := row.Scan(&entry.Count, &entry.FirstSeen, &entry.ContextClues); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrNotFound
		}
		p.logger.Errorf("failed to query counter: %v", err)
		return nil, storageErr("query counter", err)
	}

	rows, err := p.pool.Query(ctx, `SELECT user_id, count, first_used, last_used FROM category_user_stats WHERE category = $1`, category)
	if err != nil {
		p.logger.Errorf("failed to query counter user stats: %v", err)
		return nil, storageErr("query user stats", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var stats internal.UserCategoryStats
		if err := rows.Scan(&id, &stats.Count, &stats.FirstUsed, &stats.LastUsed); err != nil {
			return nil, storageErr("scan user stats", err)
		}
		entry.UserStats[id] = &stats
	}
	return entry, nil
}

func (p *PostgresStorage) LoadCounters(ctx context.Context) (map[string]*internal.CounterEntry, error) {
	rows, err := p.pool.Query(ctx, `SELECT category, count, first_seen, context_clues FROM category_counters`)
	if err != nil {
		p.logger.Errorf("failed to query counters: %v", err)
		return nil, storageErr("query counters", err)
	}
	defer rows.Close()

	counters := map[string]*internal.CounterEntry{}
	for rows.Next() {
		var name string
		entry := &internal.CounterEntry{UserStats: map[string]*internal.UserCategoryStats{}}
		if err := rows.Scan(&name, &entry.Count, &entry.FirstSeen, &entry.ContextClues); err != nil {
			return nil, storageErr("scan counter", err)
		}
		counters[name] = entry
	}

	statRows, err := p.pool.Query(ctx, `SELECT category, user_id, count, first_used, last_used FROM category_user_stats`)
	if err != nil {
		p.logger.Errorf("failed to query counter user stats: %v", err)
		return nil, storageErr("query user stats", err)
	}
	defer statRows.Close()
	for statRows.Next() {
		var name, id string
		var stats internal.UserCategoryStats
		if err := statRows.Scan(&name, &id, &stats.Count, &stats.FirstUsed, &stats.LastUsed); err != nil {
			return nil, storageErr("scan user stats", err)
		}
		if entry, ok := counters[name]; ok {
			entry.UserStats[id] = &stats
		}
	}
	return counters, nil
}

// --- BackupRepository ---

// BackupAll snapshots the collections into timestamped backup tables. The
// table suffix comes from the clock, never from input.
func (p *PostgresStorage) BackupAll(ctx context.Context) (string, error) {
	stamp := time.Now().UTC().Format("20060102_150405")
	for _, table := range []string{"users", "activities", "category_counters", "category_user_stats"} {
		name := table + "_backup_" + stamp
		if _, err := p.pool.Exec(ctx, `CREATE TABLE `+name+` AS TABLE `+table); err != nil {
			p.logger.Errorf("failed to back up %s: %v", table, err)
			return "", storageErr("backup "+table, err)
		}
	}
	return stamp, nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*PostgresStorage)(nil)
var _ ActivityRepository = (*PostgresStorage)(nil)
var _ CategoryRepository = (*PostgresStorage)(nil)
var _ BackupRepository = (*PostgresStorage)(nil)
