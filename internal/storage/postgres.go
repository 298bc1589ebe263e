package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RiseHunter/RiseHuntBot/internal"
)

type PostgresStore struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStore(dsn string, logger internal.Logger) (*PostgresStore, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}

// dimensionColumn guards against interpolating anything but a known
// dimension tag into SQL.
func dimensionColumn(dir internal.Direction) (string, error) {
	if !internal.ValidDirection(dir) {
		return "", fmt.Errorf("%w: dimension %s", internal.ErrNotFound, dir)
	}
	return string(dir), nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", internal.ErrStoreUnavailable, err)
}

// --- users ---

func (p *PostgresStore) GetUser(ctx context.Context, id string) (*internal.User, error) {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO users (id, level, pv, ci, ei, si, ai, ex, onboarded, created_at)
		VALUES ($1, 1, 5.0, 5.0, 5.0, 5.0, 5.0, 5.0, FALSE, NOW())
		ON CONFLICT (id) DO NOTHING`, id)
	if err != nil {
		p.logger.Errorf("failed to ensure user: %v", err)
		return nil, storeErr(err)
	}

	row := p.pool.QueryRow(ctx, `
		SELECT id, COALESCE(name, ''), COALESCE(age, 0), COALESCE(gender, ''),
		       COALESCE(handle, ''), onboarded, level, pv, ci, ei, si, ai, ex, created_at
		FROM users WHERE id = $1`, id)

	u := &internal.User{Dimensions: make(map[internal.Direction]float64, 6)}
	var pv, ci, ei, si, ai, ex float64
	if err := row.Scan(&u.ID, &u.Name, &u.Age, &u.Gender, &u.Handle, &u.Onboarded,
		&u.Level, &pv, &ci, &ei, &si, &ai, &ex, &u.CreatedAt); err != nil {
		p.logger.Errorf("failed to load user: %v", err)
		return nil, storeErr(err)
	}
	u.Dimensions[internal.DirectionPV] = pv
	u.Dimensions[internal.DirectionCI] = ci
	u.Dimensions[internal.DirectionEI] = ei
	u.Dimensions[internal.DirectionSI] = si
	u.Dimensions[internal.DirectionAI] = ai
	u.Dimensions[internal.DirectionEX] = ex
	return u, nil
}

func (p *PostgresStore) UpdateUserFields(ctx context.Context, id string, patch internal.UserPatch) error {
	sets := []string{}
	args := []interface{}{id}
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Age != nil {
		add("age", *patch.Age)
	}
	if patch.Gender != nil {
		add("gender", *patch.Gender)
	}
	if patch.Handle != nil {
		add("handle", *patch.Handle)
	}
	if patch.Onboarded != nil {
		add("onboarded", *patch.Onboarded)
	}
	if len(sets) == 0 {
		return nil
	}
	query := "UPDATE users SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += " WHERE id = $1"
	tag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("failed to update user fields: %v", err)
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", internal.ErrNotFound, id)
	}
	return nil
}

func (p *PostgresStore) UpdateDimension(ctx context.Context, id string, dir internal.Direction, value float64) error {
	col, err := dimensionColumn(dir)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE users SET %s = $2 WHERE id = $1`, col), id, value)
	if err != nil {
		p.logger.Errorf("failed to update dimension %s: %v", dir, err)
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", internal.ErrNotFound, id)
	}
	return nil
}

func (p *PostgresStore) IncrementLevelAndReset(ctx context.Context, id string, dir internal.Direction) (int, error) {
	col, err := dimensionColumn(dir)
	if err != nil {
		return 0, err
	}
	row := p.pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE users SET level = level + 1, %s = $2 WHERE id = $1 RETURNING level`, col),
		id, internal.DimensionBaseline)
	var level int
	if err := row.Scan(&level); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: user %s", internal.ErrNotFound, id)
		}
		p.logger.Errorf("failed to increment level: %v", err)
		return 0, storeErr(err)
	}
	return level, nil
}

// --- journal ---

func (p *PostgresStore) SaveJournalEntry(ctx context.Context, userID string, typ internal.JournalType, content string) (*internal.JournalEntry, error) {
	e := &internal.JournalEntry{UserID: userID, Type: typ, Content: content}
	row := p.pool.QueryRow(ctx, `
		INSERT INTO journal (user_id, type, content, created_at)
		VALUES ($1, $2, $3, NOW()) RETURNING id, created_at`,
		userID, typ, content)
	if err := row.Scan(&e.ID, &e.CreatedAt); err != nil {
		p.logger.Errorf("failed to insert journal entry: %v", err)
		return nil, storeErr(err)
	}
	return e, nil
}

func (p *PostgresStore) GetRecentJournal(ctx context.Context, userID string, windowDays, limit int) ([]internal.JournalEntry, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, user_id, type, content, created_at FROM journal
		WHERE user_id = $1 AND created_at >= NOW() - make_interval(days => $2)
		ORDER BY created_at DESC LIMIT $3`, userID, windowDays, limit)
	if err != nil {
		p.logger.Errorf("failed to query journal: %v", err)
		return nil, storeErr(err)
	}
	defer rows.Close()

	entries := []internal.JournalEntry{}
	for rows.Next() {
		var e internal.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Content, &e.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan journal entry: %v", err)
			return nil, storeErr(err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (p *PostgresStore) PurgeJournalBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM journal WHERE created_at < $1`, cutoff)
	if err != nil {
		p.logger.Errorf("failed to purge journal: %v", err)
		return 0, storeErr(err)
	}
	return int(tag.RowsAffected()), nil
}

// --- goals ---

func (p *PostgresStore) AddGoal(ctx context.Context, userID string, period internal.Period, dir internal.Direction, title string) (*internal.Goal, error) {
	g := &internal.Goal{UserID: userID, Period: period, Direction: dir, Title: title}
	row := p.pool.QueryRow(ctx, `
		INSERT INTO goals (user_id, period, direction, title, done, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW()) RETURNING id, created_at`,
		userID, period, dir, title)
	if err := row.Scan(&g.ID, &g.CreatedAt); err != nil {
		p.logger.Errorf("failed to insert goal: %v", err)
		return nil, storeErr(err)
	}
	return g, nil
}

func (p *PostgresStore) GetGoals(ctx context.Context, userID string, period internal.Period) ([]internal.Goal, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, user_id, period, direction, title, done, created_at
		FROM goals WHERE user_id = $1 AND period = $2 ORDER BY created_at ASC`,
		userID, period)
	if err != nil {
		p.logger.Errorf("failed to query goals: %v", err)
		return nil, storeErr(err)
	}
	defer rows.Close()

	goals := []internal.Goal{}
	for rows.Next() {
		var g internal.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Period, &g.Direction, &g.Title, &g.Done, &g.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan goal: %v", err)
			return nil, storeErr(err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (p *PostgresStore) GetGoal(ctx context.Context, goalID int64) (*internal.Goal, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, user_id, period, direction, title, done, created_at
		FROM goals WHERE id = $1`, goalID)
	var g internal.Goal
	if err := row.Scan(&g.ID, &g.UserID, &g.Period, &g.Direction, &g.Title, &g.Done, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: goal %d", internal.ErrNotFound, goalID)
		}
		p.logger.Errorf("failed to load goal: %v", err)
		return nil, storeErr(err)
	}
	return &g, nil
}

func (p *PostgresStore) SetGoalDone(ctx context.Context, goalID int64, done bool) error {
	tag, err := p.pool.Exec(ctx, `UPDATE goals SET done = $2 WHERE id = $1`, goalID, done)
	if err != nil {
		p.logger.Errorf("failed to update goal: %v", err)
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: goal %d", internal.ErrNotFound, goalID)
	}
	return nil
}

func (p *PostgresStore) DeleteGoal(ctx context.Context, goalID int64) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, goalID)
	if err != nil {
		p.logger.Errorf("failed to delete goal: %v", err)
		return storeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: goal %d", internal.ErrNotFound, goalID)
	}
	return nil
}

// --- Compile-time assertions ---
var _ Store = (*PostgresStore)(nil)
