package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/michalkratky/slovicka/internal/entity"
	"github.com/michalkratky/slovicka/internal/repository"
)

type wordStatRow struct {
	WordID         int64     `db:"word_id"`
	Direction      string    `db:"direction"`
	CorrectCount   int       `db:"correct_count"`
	IncorrectCount int       `db:"incorrect_count"`
	LastSeen       time.Time `db:"last_seen"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type sessionStatRow struct {
	ID               int64  `db:"id"`
	Date             string `db:"session_date"`
	CorrectAnswers   int    `db:"correct_answers"`
	IncorrectAnswers int    `db:"incorrect_answers"`
	TotalTimeMinutes int    `db:"total_time_minutes"`
	WordsPracticed   int    `db:"words_practiced"`
}

func (r sessionStatRow) toEntity() *entity.SessionStat {
	return &entity.SessionStat{
		ID:               r.ID,
		Date:             r.Date,
		CorrectAnswers:   r.CorrectAnswers,
		IncorrectAnswers: r.IncorrectAnswers,
		TotalTimeMinutes: r.TotalTimeMinutes,
		WordsPracticed:   r.WordsPracticed,
	}
}

type statsRepository struct {
	db    *sqlx.DB
	clock func() time.Time
}

// NewStatsRepository returns a StatsRepository backed by db.
func NewStatsRepository(db *sqlx.DB) repository.StatsRepository {
	return &statsRepository{db: db, clock: time.Now}
}

func (r *statsRepository) GetWordStat(ctx context.Context, wordID int64, direction entity.Direction) (*entity.WordStat, error) {
	var row wordStatRow
	err := r.db.GetContext(ctx, &row,
		r.db.Rebind(`SELECT word_id, direction, correct_count, incorrect_count, last_seen, updated_at
			FROM word_stats WHERE word_id = ? AND direction = ?`),
		wordID, string(direction))
	if errors.Is(err, sql.ErrNoRows) {
		return &entity.WordStat{WordID: wordID, Direction: direction}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get word stat: %w", err)
	}
	return &entity.WordStat{
		WordID:         row.WordID,
		Direction:      entity.Direction(row.Direction),
		CorrectCount:   row.CorrectCount,
		IncorrectCount: row.IncorrectCount,
		LastSeen:       row.LastSeen,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

func (r *statsRepository) UpsertWordStat(ctx context.Context, wordID int64, direction entity.Direction, delta entity.StatDelta) error {
	seenAt := delta.SeenAt
	if seenAt.IsZero() {
		seenAt = r.clock()
	}
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO word_stats (word_id, direction, correct_count, incorrect_count, last_seen, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (word_id, direction) DO UPDATE SET
				correct_count = word_stats.correct_count + excluded.correct_count,
				incorrect_count = word_stats.incorrect_count + excluded.incorrect_count,
				last_seen = excluded.last_seen,
				updated_at = excluded.updated_at`),
		wordID, string(direction), delta.Correct, delta.Incorrect, seenAt, seenAt)
	if err != nil {
		return fmt.Errorf("upsert word stat: %w", err)
	}
	return nil
}

func (r *statsRepository) ListUserWordStats(ctx context.Context) ([]*entity.UserWordStat, error) {
	type joinedRow struct {
		Slovak         string    `db:"slovak"`
		English        string    `db:"english"`
		Category       string    `db:"category"`
		Direction      string    `db:"direction"`
		CorrectCount   int       `db:"correct_count"`
		IncorrectCount int       `db:"incorrect_count"`
		LastSeen       time.Time `db:"last_seen"`
	}
	var rows []joinedRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT w.slovak, w.english, w.category, s.direction, s.correct_count, s.incorrect_count, s.last_seen
		FROM word_stats s
		JOIN words w ON w.id = s.word_id
		ORDER BY s.last_seen DESC`)
	if err != nil {
		return nil, fmt.Errorf("list word stats: %w", err)
	}

	stats := make([]*entity.UserWordStat, len(rows))
	for i, row := range rows {
		stat := &entity.UserWordStat{
			Slovak:         row.Slovak,
			English:        row.English,
			Category:       row.Category,
			Direction:      entity.Direction(row.Direction),
			CorrectCount:   row.CorrectCount,
			IncorrectCount: row.IncorrectCount,
			LastSeen:       row.LastSeen,
		}
		if total := row.CorrectCount + row.IncorrectCount; total > 0 {
			stat.SuccessRate = float64(row.CorrectCount) * 100.0 / float64(total)
		}
		stats[i] = stat
	}
	return stats, nil
}

func (r *statsRepository) GetSessionStat(ctx context.Context, date string) (*entity.SessionStat, error) {
	// Summing tolerates duplicate same-date rows that may exist between
	// consolidation passes.
	var row sessionStatRow
	err := r.db.GetContext(ctx, &row,
		r.db.Rebind(`SELECT COALESCE(MAX(id), 0) AS id,
				COALESCE(SUM(correct_answers), 0) AS correct_answers,
				COALESCE(SUM(incorrect_answers), 0) AS incorrect_answers,
				COALESCE(SUM(total_time_minutes), 0) AS total_time_minutes,
				COALESCE(SUM(words_practiced), 0) AS words_practiced
			FROM session_stats WHERE session_date = ?`),
		date)
	if err != nil {
		return nil, fmt.Errorf("get session stat: %w", err)
	}
	row.Date = date
	return row.toEntity(), nil
}

func (r *statsRepository) UpsertSessionStat(ctx context.Context, date string, delta entity.SessionDelta) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE session_stats SET
				correct_answers = correct_answers + ?,
				incorrect_answers = incorrect_answers + ?,
				total_time_minutes = total_time_minutes + ?,
				words_practiced = words_practiced + 1
			WHERE id = (SELECT MIN(id) FROM session_stats WHERE session_date = ?)`),
		delta.Correct, delta.Incorrect, delta.TimeMinutes, date)
	if err != nil {
		return fmt.Errorf("update session stat: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		_, err = tx.ExecContext(ctx,
			tx.Rebind(`INSERT INTO session_stats (session_date, correct_answers, incorrect_answers, total_time_minutes, words_practiced)
				VALUES (?, ?, ?, ?, 1)`),
			date, delta.Correct, delta.Incorrect, delta.TimeMinutes)
		if err != nil {
			return fmt.Errorf("insert session stat: %w", err)
		}
	}
	return tx.Commit()
}

func (r *statsRepository) ListSessionHistory(ctx context.Context, days int) ([]*entity.SessionStat, error) {
	var rows []sessionStatRow
	err := r.db.SelectContext(ctx, &rows,
		r.db.Rebind(`SELECT MAX(id) AS id, session_date,
				SUM(correct_answers) AS correct_answers,
				SUM(incorrect_answers) AS incorrect_answers,
				SUM(total_time_minutes) AS total_time_minutes,
				SUM(words_practiced) AS words_practiced
			FROM session_stats
			GROUP BY session_date
			ORDER BY session_date DESC
			LIMIT ?`),
		days)
	if err != nil {
		return nil, fmt.Errorf("list session history: %w", err)
	}

	stats := make([]*entity.SessionStat, len(rows))
	for i, row := range rows {
		stats[i] = row.toEntity()
	}
	return stats, nil
}

func (r *statsRepository) ConsolidateSessionStats(ctx context.Context) ([]*entity.SessionStat, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var dates []string
	err = tx.SelectContext(ctx, &dates,
		`SELECT session_date FROM session_stats GROUP BY session_date HAVING COUNT(*) > 1 ORDER BY session_date`)
	if err != nil {
		return nil, fmt.Errorf("find duplicate dates: %w", err)
	}
	if len(dates) == 0 {
		return nil, tx.Commit()
	}

	collapsed := make([]*entity.SessionStat, 0, len(dates))
	for _, date := range dates {
		var row sessionStatRow
		err := tx.GetContext(ctx, &row,
			tx.Rebind(`SELECT COALESCE(SUM(correct_answers), 0) AS correct_answers,
					COALESCE(SUM(incorrect_answers), 0) AS incorrect_answers,
					COALESCE(SUM(total_time_minutes), 0) AS total_time_minutes,
					COALESCE(SUM(words_practiced), 0) AS words_practiced
				FROM session_stats WHERE session_date = ?`),
			date)
		if err != nil {
			return nil, fmt.Errorf("sum rows for %s: %w", date, err)
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM session_stats WHERE session_date = ?`), date); err != nil {
			return nil, fmt.Errorf("delete duplicates for %s: %w", date, err)
		}

		var id int64
		err = tx.GetContext(ctx, &id,
			tx.Rebind(`INSERT INTO session_stats (session_date, correct_answers, incorrect_answers, total_time_minutes, words_practiced)
				VALUES (?, ?, ?, ?, ?) RETURNING id`),
			date, row.CorrectAnswers, row.IncorrectAnswers, row.TotalTimeMinutes, row.WordsPracticed)
		if err != nil {
			return nil, fmt.Errorf("reinsert %s: %w", date, err)
		}

		row.ID = id
		row.Date = date
		collapsed = append(collapsed, row.toEntity())
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return collapsed, nil
}
