package repository

import (
	"context"

	"github.com/michalkratky/slovicka/internal/entity"
)

// WordRepository defines data access for words and their synonyms.
type WordRepository interface {
	Create(ctx context.Context, word *entity.Word) (*entity.Word, error)
	Update(ctx context.Context, word *entity.Word, replaceSynonyms bool) error
	GetByID(ctx context.Context, id int64) (*entity.Word, error)
	// List returns words with synonyms attached, optionally restricted to the
	// given categories. An empty category list means all categories.
	List(ctx context.Context, categories []string) ([]*entity.Word, error)
	Delete(ctx context.Context, id int64) error

	GetSynonyms(ctx context.Context, wordID int64, lang entity.Language) ([]string, error)
	// AddSynonym inserts unless an equal synonym (case-insensitive) already
	// exists; it reports whether a row was added.
	AddSynonym(ctx context.Context, wordID int64, lang entity.Language, text string) (bool, error)

	CategoryStats(ctx context.Context) ([]*entity.CategoryStat, error)
}
