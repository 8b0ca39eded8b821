package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/michalkratky/slovicka/internal/entity"
	"github.com/michalkratky/slovicka/internal/repository"
)

// importErrorLimit caps the per-row error details returned by a bulk import.
const importErrorLimit = 10

// WordUpdate carries a partial update; nil fields are left untouched.
type WordUpdate struct {
	Slovak   *string
	English  *string
	Category *string
	Synonyms *entity.SynonymSet
}

// ImportReport summarises a bulk JSON import.
type ImportReport struct {
	Imported int
	Errors   int
	Details  []string
}

// WordUsecase defines business logic for managing the vocabulary itself.
type WordUsecase interface {
	Create(ctx context.Context, word *entity.Word) (*entity.Word, error)
	Update(ctx context.Context, id int64, update WordUpdate) error
	Get(ctx context.Context, id int64) (*entity.Word, error)
	Delete(ctx context.Context, id int64) error
	// Groups returns all words keyed by category, shaped for the client's
	// group toggles.
	Groups(ctx context.Context) (map[string]*entity.WordGroup, error)
	CategoryStats(ctx context.Context) ([]*entity.CategoryStat, error)
	// BulkImport inserts a batch into one category, collecting per-row errors
	// instead of aborting.
	BulkImport(ctx context.Context, words []*entity.Word, category string) (*ImportReport, error)
}

// NewWordUsecase wires the repository with validation defaults.
func NewWordUsecase(repo repository.WordRepository) WordUsecase {
	return &wordUsecase{repo: repo}
}

type wordUsecase struct {
	repo repository.WordRepository
}

func (u *wordUsecase) Create(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	if word == nil {
		return nil, entity.ErrInvalidWordText
	}
	word.Normalize()
	if word.Slovak == "" || word.English == "" {
		return nil, entity.ErrInvalidWordText
	}
	if word.Category == "" {
		return nil, entity.ErrInvalidCategory
	}
	return u.repo.Create(ctx, word)
}

func (u *wordUsecase) Update(ctx context.Context, id int64, update WordUpdate) error {
	if id <= 0 {
		return entity.ErrInvalidWordID
	}

	word, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if update.Slovak != nil {
		word.Slovak = *update.Slovak
	}
	if update.English != nil {
		word.English = *update.English
	}
	if update.Category != nil {
		word.Category = *update.Category
	}
	replaceSynonyms := update.Synonyms != nil
	if replaceSynonyms {
		word.Synonyms = *update.Synonyms
	}

	word.Normalize()
	if word.Slovak == "" || word.English == "" {
		return entity.ErrInvalidWordText
	}
	if word.Category == "" {
		return entity.ErrInvalidCategory
	}
	return u.repo.Update(ctx, word, replaceSynonyms)
}

func (u *wordUsecase) Get(ctx context.Context, id int64) (*entity.Word, error) {
	if id <= 0 {
		return nil, entity.ErrInvalidWordID
	}
	return u.repo.GetByID(ctx, id)
}

func (u *wordUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return entity.ErrInvalidWordID
	}
	return u.repo.Delete(ctx, id)
}

func (u *wordUsecase) Groups(ctx context.Context) (map[string]*entity.WordGroup, error) {
	words, err := u.repo.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*entity.WordGroup)
	for _, w := range words {
		group, ok := groups[w.Category]
		if !ok {
			group = &entity.WordGroup{
				Name:    entity.FormatGroupName(w.Category),
				Enabled: w.Category == entity.DefaultEnabledCategory,
			}
			groups[w.Category] = group
		}
		group.Words = append(group.Words, w)
	}

	for _, group := range groups {
		sort.Slice(group.Words, func(i, j int) bool {
			return group.Words[i].Slovak < group.Words[j].Slovak
		})
	}
	return groups, nil
}

func (u *wordUsecase) CategoryStats(ctx context.Context) ([]*entity.CategoryStat, error) {
	return u.repo.CategoryStats(ctx)
}

func (u *wordUsecase) BulkImport(ctx context.Context, words []*entity.Word, category string) (*ImportReport, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, entity.ErrInvalidCategory
	}

	report := &ImportReport{}
	for _, w := range words {
		if w == nil || strings.TrimSpace(w.Slovak) == "" || strings.TrimSpace(w.English) == "" {
			report.Errors++
			report.appendDetail(fmt.Sprintf("invalid word entry: %+v", w))
			continue
		}
		w.Category = category
		if _, err := u.Create(ctx, w); err != nil {
			report.Errors++
			report.appendDetail(fmt.Sprintf("failed to import %s/%s: %v", w.Slovak, w.English, err))
			continue
		}
		report.Imported++
	}
	return report, nil
}

func (r *ImportReport) appendDetail(detail string) {
	if len(r.Details) < importErrorLimit {
		r.Details = append(r.Details, detail)
	}
}
