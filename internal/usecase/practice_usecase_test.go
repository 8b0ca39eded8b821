package usecase

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/michalkratky/slovicka/internal/entity"
)

type fakeWordRepo struct {
	mu    sync.RWMutex
	seq   int64
	words map[int64]*entity.Word
}

func newFakeWordRepo() *fakeWordRepo {
	return &fakeWordRepo{words: make(map[int64]*entity.Word)}
}

func (r *fakeWordRepo) add(slovak, english, category string, synonyms entity.SynonymSet) *entity.Word {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	w := &entity.Word{ID: r.seq, Slovak: slovak, English: english, Category: category, Synonyms: synonyms}
	r.words[w.ID] = w
	return w
}

func (r *fakeWordRepo) Create(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.words {
		if existing.Slovak == word.Slovak && existing.English == word.English {
			return nil, entity.ErrDuplicateWord
		}
	}
	r.seq++
	copied := cloneWord(word)
	copied.ID = r.seq
	r.words[copied.ID] = copied
	return cloneWord(copied), nil
}

func (r *fakeWordRepo) Update(ctx context.Context, word *entity.Word, replaceSynonyms bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.words[word.ID]
	if !ok {
		return entity.ErrWordNotFound
	}
	copied := cloneWord(word)
	if !replaceSynonyms {
		copied.Synonyms = existing.Synonyms
	}
	r.words[copied.ID] = copied
	return nil
}

func (r *fakeWordRepo) GetByID(ctx context.Context, id int64) (*entity.Word, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.words[id]
	if !ok {
		return nil, entity.ErrWordNotFound
	}
	return cloneWord(w), nil
}

func (r *fakeWordRepo) List(ctx context.Context, categories []string) ([]*entity.Word, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wanted := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}
	var out []*entity.Word
	for _, w := range r.words {
		if len(wanted) > 0 {
			if _, ok := wanted[w.Category]; !ok {
				continue
			}
		}
		out = append(out, cloneWord(w))
	}
	return out, nil
}

func (r *fakeWordRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.words[id]; !ok {
		return entity.ErrWordNotFound
	}
	delete(r.words, id)
	return nil
}

func (r *fakeWordRepo) GetSynonyms(ctx context.Context, wordID int64, lang entity.Language) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.words[wordID]
	if !ok {
		return nil, entity.ErrWordNotFound
	}
	return append([]string(nil), w.Synonyms.ForLanguage(lang)...), nil
}

func (r *fakeWordRepo) AddSynonym(ctx context.Context, wordID int64, lang entity.Language, text string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.words[wordID]
	if !ok {
		return false, entity.ErrWordNotFound
	}
	existing := w.Synonyms.ForLanguage(lang)
	for _, s := range existing {
		if strings.EqualFold(s, text) {
			return false, nil
		}
	}
	if lang == entity.LanguageSlovak {
		w.Synonyms.Slovak = append(w.Synonyms.Slovak, text)
	} else {
		w.Synonyms.English = append(w.Synonyms.English, text)
	}
	return true, nil
}

func (r *fakeWordRepo) CategoryStats(ctx context.Context) ([]*entity.CategoryStat, error) {
	return nil, errors.New("not implemented")
}

func cloneWord(w *entity.Word) *entity.Word {
	copied := *w
	copied.Synonyms.Slovak = append([]string(nil), w.Synonyms.Slovak...)
	copied.Synonyms.English = append([]string(nil), w.Synonyms.English...)
	return &copied
}

type statKey struct {
	wordID    int64
	direction entity.Direction
}

type fakeStatsRepo struct {
	mu       sync.Mutex
	stats    map[statKey]*entity.WordStat
	sessions map[string]*entity.SessionStat
	statErr  error
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{
		stats:    make(map[statKey]*entity.WordStat),
		sessions: make(map[string]*entity.SessionStat),
	}
}

func (r *fakeStatsRepo) seed(wordID int64, direction entity.Direction, correct, incorrect int, lastSeen time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats[statKey{wordID, direction}] = &entity.WordStat{
		WordID: wordID, Direction: direction,
		CorrectCount: correct, IncorrectCount: incorrect, LastSeen: lastSeen,
	}
}

func (r *fakeStatsRepo) GetWordStat(ctx context.Context, wordID int64, direction entity.Direction) (*entity.WordStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.statErr != nil {
		return nil, r.statErr
	}
	if s, ok := r.stats[statKey{wordID, direction}]; ok {
		copied := *s
		return &copied, nil
	}
	return &entity.WordStat{WordID: wordID, Direction: direction}, nil
}

func (r *fakeStatsRepo) UpsertWordStat(ctx context.Context, wordID int64, direction entity.Direction, delta entity.StatDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := statKey{wordID, direction}
	s, ok := r.stats[key]
	if !ok {
		s = &entity.WordStat{WordID: wordID, Direction: direction}
		r.stats[key] = s
	}
	s.CorrectCount += delta.Correct
	s.IncorrectCount += delta.Incorrect
	s.LastSeen = delta.SeenAt
	return nil
}

func (r *fakeStatsRepo) ListUserWordStats(ctx context.Context) ([]*entity.UserWordStat, error) {
	return nil, nil
}

func (r *fakeStatsRepo) GetSessionStat(ctx context.Context, date string) (*entity.SessionStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[date]; ok {
		copied := *s
		return &copied, nil
	}
	return &entity.SessionStat{Date: date}, nil
}

func (r *fakeStatsRepo) UpsertSessionStat(ctx context.Context, date string, delta entity.SessionDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[date]
	if !ok {
		s = &entity.SessionStat{Date: date}
		r.sessions[date] = s
	}
	s.CorrectAnswers += delta.Correct
	s.IncorrectAnswers += delta.Incorrect
	s.TotalTimeMinutes += delta.TimeMinutes
	s.WordsPracticed++
	return nil
}

func (r *fakeStatsRepo) ListSessionHistory(ctx context.Context, days int) ([]*entity.SessionStat, error) {
	return nil, nil
}

func (r *fakeStatsRepo) ConsolidateSessionStats(ctx context.Context) ([]*entity.SessionStat, error) {
	return nil, nil
}

type fakeOracle struct {
	verdict *OracleVerdict
	err     error
	called  int
}

func (o *fakeOracle) Validate(ctx context.Context, req *OracleRequest) (*OracleVerdict, error) {
	o.called++
	return o.verdict, o.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestPractice(words *fakeWordRepo, stats *fakeStatsRepo, oracle TranslationOracle) *practiceUsecase {
	return &practiceUsecase{
		words:  words,
		stats:  stats,
		oracle: oracle,
		logger: testLogger(),
		clock:  time.Now,
		rand:   rand.Float64,
	}
}

func TestNextWordEmptyInputs(t *testing.T) {
	words := newFakeWordRepo()
	words.add("mačka", "cat", "animals", entity.SynonymSet{})
	uc := newTestPractice(words, newFakeStatsRepo(), nil)

	card, err := uc.NextWord(context.Background(), NextWordQuery{
		Categories: nil,
		Directions: []entity.Direction{entity.DirectionSkToEn},
	})
	if err != nil || card != nil {
		t.Fatalf("no categories: card=%v err=%v, want nil/nil", card, err)
	}

	card, err = uc.NextWord(context.Background(), NextWordQuery{
		Categories: []string{"animals"},
		Directions: nil,
	})
	if err != nil || card != nil {
		t.Fatalf("no directions: card=%v err=%v, want nil/nil", card, err)
	}
}

func TestNextWordNoMatchingCategory(t *testing.T) {
	words := newFakeWordRepo()
	words.add("mačka", "cat", "animals", entity.SynonymSet{})
	uc := newTestPractice(words, newFakeStatsRepo(), nil)

	card, err := uc.NextWord(context.Background(), NextWordQuery{
		Categories: []string{"verbs"},
		Directions: []entity.Direction{entity.DirectionSkToEn},
	})
	if err != nil || card != nil {
		t.Fatalf("card=%v err=%v, want nil/nil", card, err)
	}
}

func TestNextWordRendersDirection(t *testing.T) {
	words := newFakeWordRepo()
	words.add("mačka", "cat", "animals", entity.SynonymSet{})
	uc := newTestPractice(words, newFakeStatsRepo(), nil)
	uc.rand = func() float64 { return 0 }

	card, err := uc.NextWord(context.Background(), NextWordQuery{
		Categories: []string{"animals"},
		Directions: []entity.Direction{entity.DirectionEnToSk},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if card.Question != "cat" || card.Answer != "mačka" {
		t.Fatalf("card = %q -> %q, want cat -> mačka", card.Question, card.Answer)
	}
	if card.TargetLanguage != entity.LanguageSlovak {
		t.Fatalf("target language = %q, want slovak", card.TargetLanguage)
	}
}

func TestNextWordStatErrorFallsBackToBaseline(t *testing.T) {
	words := newFakeWordRepo()
	words.add("pes", "dog", "animals", entity.SynonymSet{})
	stats := newFakeStatsRepo()
	stats.statErr = errors.New("boom")
	uc := newTestPractice(words, stats, nil)

	card, err := uc.NextWord(context.Background(), NextWordQuery{
		Categories: []string{"animals"},
		Directions: []entity.Direction{entity.DirectionSkToEn},
	})
	if err != nil {
		t.Fatalf("stat errors must not propagate: %v", err)
	}
	if card == nil || card.WordID == 0 {
		t.Fatalf("expected a card despite stat failure, got %v", card)
	}
}

// A pair with many mistakes carries four times the weight of an unseen pair
// (1 * (1+10*0.3) against 1.0, recency boost zero), so it should win roughly
// 80% of a large number of draws.
func TestNextWordWeightedDistribution(t *testing.T) {
	words := newFakeWordRepo()
	easy := words.add("mačka", "cat", "animals", entity.SynonymSet{})
	hard := words.add("pes", "dog", "animals", entity.SynonymSet{})

	stats := newFakeStatsRepo()
	now := time.Now()
	stats.seed(hard.ID, entity.DirectionSkToEn, 0, 10, now)

	uc := newTestPractice(words, stats, nil)
	uc.clock = func() time.Time { return now }
	rng := rand.New(rand.NewSource(42))
	uc.rand = rng.Float64

	const draws = 2000
	hardHits := 0
	for i := 0; i < draws; i++ {
		card, err := uc.NextWord(context.Background(), NextWordQuery{
			Categories: []string{"animals"},
			Directions: []entity.Direction{entity.DirectionSkToEn},
		})
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if card.WordID == hard.ID {
			hardHits++
		}
	}
	_ = easy

	fraction := float64(hardHits) / draws
	if fraction < 0.74 || fraction > 0.86 {
		t.Fatalf("hard pair drawn %.3f of the time, want ~0.80", fraction)
	}
}

func TestNextWordWalkTotality(t *testing.T) {
	words := newFakeWordRepo()
	words.add("mačka", "cat", "animals", entity.SynonymSet{})
	words.add("pes", "dog", "animals", entity.SynonymSet{})
	uc := newTestPractice(words, newFakeStatsRepo(), nil)
	// The largest value rand can produce still lands inside the last weight.
	uc.rand = func() float64 { return 0.999999999 }

	card, err := uc.NextWord(context.Background(), NextWordQuery{
		Categories: []string{"animals"},
		Directions: []entity.Direction{entity.DirectionSkToEn},
	})
	if err != nil || card == nil {
		t.Fatalf("card=%v err=%v, want a selection", card, err)
	}
}

func TestCheckAnswerAcceptsCaseWhitespaceAndDiacritics(t *testing.T) {
	words := newFakeWordRepo()
	w := words.add("mačka", "cat", "animals", entity.SynonymSet{Slovak: []string{"kocúr"}})
	uc := newTestPractice(words, newFakeStatsRepo(), nil)

	for _, answer := range []string{"Mačka", " mačka ", "macka", "MACKA", "kocúr", "kocur"} {
		check, err := uc.CheckAnswer(context.Background(), w.ID, answer, entity.LanguageSlovak)
		if err != nil {
			t.Fatalf("answer %q: %v", answer, err)
		}
		if !check.Correct {
			t.Errorf("answer %q not accepted", answer)
		}
		if check.NeedsValidation {
			t.Errorf("answer %q should not need validation", answer)
		}
	}
}

func TestCheckAnswerMismatchFlagsValidation(t *testing.T) {
	words := newFakeWordRepo()
	w := words.add("mačka", "cat", "animals", entity.SynonymSet{})
	uc := newTestPractice(words, newFakeStatsRepo(), nil)

	check, err := uc.CheckAnswer(context.Background(), w.ID, "dog", entity.LanguageEnglish)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if check.Correct || !check.NeedsValidation {
		t.Fatalf("check = %+v, want incorrect with needsValidation", check)
	}
}

func TestCheckAnswerReturnsBothCandidateForms(t *testing.T) {
	words := newFakeWordRepo()
	w := words.add("ľúbiť", "to love", "verbs", entity.SynonymSet{})
	uc := newTestPractice(words, newFakeStatsRepo(), nil)

	check, err := uc.CheckAnswer(context.Background(), w.ID, "whatever", entity.LanguageSlovak)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]bool{"ľúbiť": true, "lubit": true}
	for _, a := range check.CorrectAnswers {
		delete(want, a)
	}
	if len(want) != 0 {
		t.Fatalf("correct answers %v missing forms %v", check.CorrectAnswers, want)
	}
}

func TestCheckAnswerValidation(t *testing.T) {
	uc := newTestPractice(newFakeWordRepo(), newFakeStatsRepo(), nil)

	if _, err := uc.CheckAnswer(context.Background(), 0, "cat", entity.LanguageEnglish); !errors.Is(err, entity.ErrInvalidWordID) {
		t.Errorf("zero word id: err = %v", err)
	}
	if _, err := uc.CheckAnswer(context.Background(), 1, "  ", entity.LanguageEnglish); !errors.Is(err, entity.ErrInvalidAnswer) {
		t.Errorf("blank answer: err = %v", err)
	}
	if _, err := uc.CheckAnswer(context.Background(), 1, "cat", "german"); !errors.Is(err, entity.ErrInvalidLanguage) {
		t.Errorf("bad language: err = %v", err)
	}
}

func TestRecordAnswerAccumulatesDailyTotals(t *testing.T) {
	words := newFakeWordRepo()
	w := words.add("mačka", "cat", "animals", entity.SynonymSet{})
	stats := newFakeStatsRepo()
	uc := newTestPractice(words, stats, nil)
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.Local)
	uc.clock = func() time.Time { return now }

	if _, err := uc.RecordAnswer(context.Background(), w.ID, entity.DirectionSkToEn, true, time.Minute); err != nil {
		t.Fatalf("first record: %v", err)
	}
	outcome, err := uc.RecordAnswer(context.Background(), w.ID, entity.DirectionSkToEn, false, 2*time.Minute)
	if err != nil {
		t.Fatalf("second record: %v", err)
	}

	s := outcome.Session
	if s.CorrectAnswers != 1 || s.IncorrectAnswers != 1 || s.TotalTimeMinutes != 3 || s.WordsPracticed != 2 {
		t.Fatalf("session = %+v, want correct=1 incorrect=1 minutes=3 practiced=2", s)
	}

	stat, _ := stats.GetWordStat(context.Background(), w.ID, entity.DirectionSkToEn)
	if stat.CorrectCount != 1 || stat.IncorrectCount != 1 {
		t.Fatalf("word stat = %+v, want 1/1", stat)
	}
	if !stat.LastSeen.Equal(now) {
		t.Fatalf("last seen = %v, want %v", stat.LastSeen, now)
	}
}

func TestRecordAnswerRejectsBadDirection(t *testing.T) {
	uc := newTestPractice(newFakeWordRepo(), newFakeStatsRepo(), nil)
	if _, err := uc.RecordAnswer(context.Background(), 1, "en-de", true, 0); !errors.Is(err, entity.ErrInvalidDirection) {
		t.Fatalf("err = %v, want ErrInvalidDirection", err)
	}
}

func TestValidateTranslationLearnsSynonym(t *testing.T) {
	words := newFakeWordRepo()
	w := words.add("mačka", "cat", "animals", entity.SynonymSet{})
	oracle := &fakeOracle{verdict: &OracleVerdict{Valid: true, Confidence: 0.92, Explanation: "common synonym"}}
	uc := newTestPractice(words, newFakeStatsRepo(), oracle)

	outcome, err := uc.ValidateTranslation(context.Background(), w.ID, "kitty", entity.LanguageEnglish)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !outcome.Valid || !outcome.AddedAsSynonym {
		t.Fatalf("outcome = %+v, want accepted and persisted", outcome)
	}

	synonyms, _ := words.GetSynonyms(context.Background(), w.ID, entity.LanguageEnglish)
	if len(synonyms) != 1 || synonyms[0] != "kitty" {
		t.Fatalf("synonyms = %v, want [kitty]", synonyms)
	}

	found := false
	for _, a := range outcome.CorrectAnswers {
		if a == "kitty" {
			found = true
		}
	}
	if !found {
		t.Fatalf("refreshed answers %v missing learned synonym", outcome.CorrectAnswers)
	}
}

func TestValidateTranslationLowConfidenceRejected(t *testing.T) {
	words := newFakeWordRepo()
	w := words.add("mačka", "cat", "animals", entity.SynonymSet{})
	oracle := &fakeOracle{verdict: &OracleVerdict{Valid: true, Confidence: 0.5}}
	uc := newTestPractice(words, newFakeStatsRepo(), oracle)

	outcome, err := uc.ValidateTranslation(context.Background(), w.ID, "feline", entity.LanguageEnglish)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if outcome.Valid || outcome.AddedAsSynonym {
		t.Fatalf("outcome = %+v, want rejection below confidence threshold", outcome)
	}
}

func TestValidateTranslationOracleFailureFailsClosed(t *testing.T) {
	words := newFakeWordRepo()
	w := words.add("mačka", "cat", "animals", entity.SynonymSet{})
	oracle := &fakeOracle{err: errors.New("connection refused")}
	uc := newTestPractice(words, newFakeStatsRepo(), oracle)

	outcome, err := uc.ValidateTranslation(context.Background(), w.ID, "kitty", entity.LanguageEnglish)
	if err != nil {
		t.Fatalf("oracle failure must not propagate: %v", err)
	}
	if outcome.Valid || outcome.AddedAsSynonym {
		t.Fatalf("outcome = %+v, want fail-closed rejection", outcome)
	}

	synonyms, _ := words.GetSynonyms(context.Background(), w.ID, entity.LanguageEnglish)
	if len(synonyms) != 0 {
		t.Fatalf("no synonym should be stored on oracle failure, got %v", synonyms)
	}
}

func TestValidateTranslationNoOracleConfigured(t *testing.T) {
	words := newFakeWordRepo()
	w := words.add("mačka", "cat", "animals", entity.SynonymSet{})
	uc := newTestPractice(words, newFakeStatsRepo(), nil)

	outcome, err := uc.ValidateTranslation(context.Background(), w.ID, "kitty", entity.LanguageEnglish)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if outcome.Valid {
		t.Fatalf("outcome = %+v, want rejection when oracle missing", outcome)
	}
}

func TestValidateTranslationIsIdempotent(t *testing.T) {
	words := newFakeWordRepo()
	w := words.add("mačka", "cat", "animals", entity.SynonymSet{English: []string{"Kitty"}})
	oracle := &fakeOracle{verdict: &OracleVerdict{Valid: true, Confidence: 0.9}}
	uc := newTestPractice(words, newFakeStatsRepo(), oracle)

	if _, err := uc.ValidateTranslation(context.Background(), w.ID, "kitty", entity.LanguageEnglish); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	synonyms, _ := words.GetSynonyms(context.Background(), w.ID, entity.LanguageEnglish)
	if len(synonyms) != 1 {
		t.Fatalf("case-insensitive duplicate stored: %v", synonyms)
	}
}

func TestWordDifficultyBaseline(t *testing.T) {
	words := newFakeWordRepo()
	w := words.add("mačka", "cat", "animals", entity.SynonymSet{})
	uc := newTestPractice(words, newFakeStatsRepo(), nil)

	weight, err := uc.WordDifficulty(context.Background(), w.ID, entity.DirectionSkToEn)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if weight != 1.0 {
		t.Fatalf("weight = %v, want 1.0 for unseen pair", weight)
	}
}
