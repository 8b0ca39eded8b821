// Package backup exports the vocabulary to an xlsx workbook and loads such
// workbooks back into the store. The workbook carries one row per word with
// its synonyms flattened into delimiter-joined cells, so the file stays
// editable in a spreadsheet before re-import.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/michalkratky/slovicka/internal/entity"
	"github.com/michalkratky/slovicka/internal/repository"
)

const (
	defaultSheetName = "Words"
	// synonymSeparator joins synonym lists into a single cell.
	synonymSeparator = "; "
	errorLimit       = 25
)

var headerRow = []any{"Slovak", "English", "Category", "Slovak synonyms", "English synonyms"}

// Report summarises an import run.
type Report struct {
	Imported int
	Skipped  int
	Errors   []string
}

// Service moves vocabulary between the repository and xlsx workbooks.
type Service struct {
	words repository.WordRepository
	sheet string
}

type Option func(*Service)

// WithSheetName overrides the worksheet the service reads and writes.
func WithSheetName(name string) Option {
	return func(s *Service) {
		if strings.TrimSpace(name) != "" {
			s.sheet = name
		}
	}
}

func NewService(words repository.WordRepository, opts ...Option) (*Service, error) {
	if words == nil {
		return nil, errors.New("backup: word repository is required")
	}
	svc := &Service{words: words, sheet: defaultSheetName}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Export writes every word, ordered as the repository returns them, into an
// xlsx workbook on w.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	words, err := s.words.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("list words: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), s.sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(s.sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, word := range words {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			word.Slovak,
			word.English,
			word.Category,
			strings.Join(word.Synonyms.Slovak, synonymSeparator),
			strings.Join(word.Synonyms.English, synonymSeparator),
		}
		if err := f.SetSheetRow(s.sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Import reads a workbook produced by Export (or hand-edited in the same
// shape) and inserts each row. Duplicate pairs are counted as skipped rather
// than aborting the run.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", s.sheet, err)
	}

	report := &Report{}
	for i, row := range rows {
		if i == 0 {
			// Header row.
			continue
		}
		word := rowToWord(row)
		if word == nil {
			report.Skipped++
			continue
		}
		if _, err := s.words.Create(ctx, word); err != nil {
			if errors.Is(err, entity.ErrDuplicateWord) {
				report.Skipped++
				continue
			}
			report.appendError(fmt.Sprintf("row %d (%s/%s): %v", i+1, word.Slovak, word.English, err))
			continue
		}
		report.Imported++
	}
	return report, nil
}

func rowToWord(row []string) *entity.Word {
	word := &entity.Word{
		Slovak:   cellAt(row, 0),
		English:  cellAt(row, 1),
		Category: cellAt(row, 2),
		Synonyms: entity.SynonymSet{
			Slovak:  splitSynonyms(cellAt(row, 3)),
			English: splitSynonyms(cellAt(row, 4)),
		},
	}
	if word.Slovak == "" || word.English == "" {
		return nil
	}
	if word.Category == "" {
		word.Category = entity.DefaultEnabledCategory
	}
	return word
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitSynonyms(cell string) []string {
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (r *Report) appendError(msg string) {
	if len(r.Errors) < errorLimit {
		r.Errors = append(r.Errors, msg)
	}
}
