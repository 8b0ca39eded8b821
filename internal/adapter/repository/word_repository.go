// Package repository implements the data-access interfaces on sqlx.
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

type wordRow struct {
	ID        int64     `db:"id"`
	Slovak    string    `db:"slovak"`
	English   string    `db:"english"`
	Category  string    `db:"category"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r wordRow) toEntity() *entity.Word {
	return &entity.Word{
		ID:        r.ID,
		Slovak:    r.Slovak,
		English:   r.English,
		Category:  r.Category,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type synonymRow struct {
	WordID   int64  `db:"word_id"`
	Language string `db:"language"`
	Text     string `db:"text"`
}

type wordRepository struct {
	db    *sqlx.DB
	clock func() time.Time
}

// NewWordRepository returns a WordRepository backed by db.
func NewWordRepository(db *sqlx.DB) repository.WordRepository {
	return &wordRepository{db: db, clock: time.Now}
}

func (r *wordRepository) Create(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	var existing int64
	err := r.db.GetContext(ctx, &existing,
		r.db.Rebind(`SELECT id FROM words WHERE slovak = ? AND english = ?`),
		word.Slovak, word.English)
	if err == nil {
		return nil, entity.ErrDuplicateWord
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := r.clock()
	var id int64
	err = tx.GetContext(ctx, &id,
		tx.Rebind(`INSERT INTO words (slovak, english, category, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?) RETURNING id`),
		word.Slovak, word.English, word.Category, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert word: %w", err)
	}

	if err := insertSynonyms(ctx, tx, id, word.Synonyms, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	created := *word
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

func (r *wordRepository) Update(ctx context.Context, word *entity.Word, replaceSynonyms bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := r.clock()
	res, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE words SET slovak = ?, english = ?, category = ?, updated_at = ? WHERE id = ?`),
		word.Slovak, word.English, word.Category, now, word.ID)
	if err != nil {
		return fmt.Errorf("update word: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrWordNotFound
	}

	if replaceSynonyms {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM synonyms WHERE word_id = ?`), word.ID); err != nil {
			return fmt.Errorf("clear synonyms: %w", err)
		}
		if err := insertSynonyms(ctx, tx, word.ID, word.Synonyms, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *wordRepository) GetByID(ctx context.Context, id int64) (*entity.Word, error) {
	var row wordRow
	err := r.db.GetContext(ctx, &row,
		r.db.Rebind(`SELECT id, slovak, english, category, created_at, updated_at FROM words WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrWordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}

	word := row.toEntity()
	if err := r.attachSynonyms(ctx, []*entity.Word{word}); err != nil {
		return nil, err
	}
	return word, nil
}

func (r *wordRepository) List(ctx context.Context, categories []string) ([]*entity.Word, error) {
	query := `SELECT id, slovak, english, category, created_at, updated_at FROM words`
	args := []any{}
	if len(categories) > 0 {
		var err error
		query, args, err = sqlx.In(query+` WHERE category IN (?)`, categories)
		if err != nil {
			return nil, err
		}
	}
	query += ` ORDER BY id`

	var rows []wordRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	words := make([]*entity.Word, len(rows))
	for i, row := range rows {
		words[i] = row.toEntity()
	}
	if err := r.attachSynonyms(ctx, words); err != nil {
		return nil, err
	}
	return words, nil
}

func (r *wordRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM words WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrWordNotFound
	}
	return nil
}

func (r *wordRepository) GetSynonyms(ctx context.Context, wordID int64, lang entity.Language) ([]string, error) {
	var texts []string
	err := r.db.SelectContext(ctx, &texts,
		r.db.Rebind(`SELECT text FROM synonyms WHERE word_id = ? AND language = ? ORDER BY id`),
		wordID, string(lang))
	if err != nil {
		return nil, fmt.Errorf("get synonyms: %w", err)
	}
	return texts, nil
}

func (r *wordRepository) AddSynonym(ctx context.Context, wordID int64, lang entity.Language, text string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		r.db.Rebind(`SELECT COUNT(*) FROM synonyms WHERE word_id = ? AND language = ? AND LOWER(text) = LOWER(?)`),
		wordID, string(lang), text)
	if err != nil {
		return false, fmt.Errorf("check synonym: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO synonyms (word_id, language, text, created_at) VALUES (?, ?, ?, ?)`),
		wordID, string(lang), text, r.clock())
	if err != nil {
		return false, fmt.Errorf("insert synonym: %w", err)
	}
	return true, nil
}

func (r *wordRepository) CategoryStats(ctx context.Context) ([]*entity.CategoryStat, error) {
	type statRow struct {
		Category          string `db:"category"`
		WordCount         int    `db:"word_count"`
		WordsWithSynonyms int    `db:"words_with_synonyms"`
	}
	var rows []statRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT w.category AS category,
		       COUNT(*) AS word_count,
		       SUM(CASE WHEN EXISTS (SELECT 1 FROM synonyms s WHERE s.word_id = w.id) THEN 1 ELSE 0 END) AS words_with_synonyms
		FROM words w
		GROUP BY w.category
		ORDER BY w.category`)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}

	stats := make([]*entity.CategoryStat, len(rows))
	for i, row := range rows {
		stats[i] = &entity.CategoryStat{
			Category:          row.Category,
			WordCount:         row.WordCount,
			WordsWithSynonyms: row.WordsWithSynonyms,
		}
	}
	return stats, nil
}

func (r *wordRepository) attachSynonyms(ctx context.Context, words []*entity.Word) error {
	if len(words) == 0 {
		return nil
	}
	ids := make([]int64, len(words))
	index := make(map[int64]*entity.Word, len(words))
	for i, w := range words {
		ids[i] = w.ID
		index[w.ID] = w
	}

	query, args, err := sqlx.In(`SELECT word_id, language, text FROM synonyms WHERE word_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return err
	}
	var rows []synonymRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load synonyms: %w", err)
	}

	for _, row := range rows {
		word, ok := index[row.WordID]
		if !ok {
			continue
		}
		switch entity.Language(row.Language) {
		case entity.LanguageSlovak:
			word.Synonyms.Slovak = append(word.Synonyms.Slovak, row.Text)
		case entity.LanguageEnglish:
			word.Synonyms.English = append(word.Synonyms.English, row.Text)
		}
	}
	return nil
}

func insertSynonyms(ctx context.Context, tx *sqlx.Tx, wordID int64, set entity.SynonymSet, now time.Time) error {
	insert := tx.Rebind(`INSERT INTO synonyms (word_id, language, text, created_at) VALUES (?, ?, ?, ?)`)
	for lang, texts := range map[entity.Language][]string{
		entity.LanguageSlovak:  set.Slovak,
		entity.LanguageEnglish: set.English,
	} {
		for _, text := range texts {
			if _, err := tx.ExecContext(ctx, insert, wordID, string(lang), text, now); err != nil {
				return fmt.Errorf("insert synonym: %w", err)
			}
		}
	}
	return nil
}
