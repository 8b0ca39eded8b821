package usecase

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/michalkratky/slovicka/internal/entity"
	"github.com/michalkratky/slovicka/internal/repository"
	"github.com/michalkratky/slovicka/pkg/textnorm"
)

// oracleConfidenceThreshold gates synonym learning: the oracle must judge the
// candidate valid with at least this confidence before it is persisted.
const oracleConfidenceThreshold = 0.7

// OracleRequest carries the context the validation oracle needs to judge a
// free-text answer.
type OracleRequest struct {
	SourceWord       string
	TargetLanguage   entity.Language
	KnownTranslation string
	Candidate        string
	ExistingSynonyms []string
}

// OracleVerdict is the oracle's judgment of one candidate translation.
type OracleVerdict struct {
	Valid       bool
	Confidence  float64
	Explanation string
}

// TranslationOracle judges whether a user phrase is a valid translation.
// Implementations are treated as unreliable: any error is converted into a
// negative verdict by the caller.
type TranslationOracle interface {
	Validate(ctx context.Context, req *OracleRequest) (*OracleVerdict, error)
}

// NextWordQuery names the enabled categories and drill directions.
type NextWordQuery struct {
	Categories []string
	Directions []entity.Direction
}

// DrillCard is one selected (word, direction) pair rendered for the client.
type DrillCard struct {
	WordID         int64
	Question       string
	Answer         string
	Direction      entity.Direction
	Category       string
	TargetLanguage entity.Language
	Slovak         string
	English        string
}

// AnswerCheck is the outcome of matching a user answer against the known
// translations.
type AnswerCheck struct {
	Correct        bool
	CorrectAnswers []string
	UserAnswer     string
	// NeedsValidation tells the client the oracle may still accept the answer.
	NeedsValidation bool
}

// ValidationOutcome reports an oracle round trip and whether the candidate
// was learned as a synonym.
type ValidationOutcome struct {
	Valid          bool
	AddedAsSynonym bool
	Explanation    string
	CorrectAnswers []string
}

// RecordOutcome echoes the daily aggregate after an answer is recorded.
type RecordOutcome struct {
	WordID    int64
	Direction entity.Direction
	Correct   bool
	Session   *entity.SessionStat
}

// PracticeUsecase drives a drill session: pick the next word, check answers,
// record outcomes and learn synonyms through the oracle.
type PracticeUsecase interface {
	NextWord(ctx context.Context, query NextWordQuery) (*DrillCard, error)
	CheckAnswer(ctx context.Context, wordID int64, userAnswer string, target entity.Language) (*AnswerCheck, error)
	RecordAnswer(ctx context.Context, wordID int64, direction entity.Direction, correct bool, elapsed time.Duration) (*RecordOutcome, error)
	ValidateTranslation(ctx context.Context, wordID int64, userAnswer string, target entity.Language) (*ValidationOutcome, error)
	WordDifficulty(ctx context.Context, wordID int64, direction entity.Direction) (float64, error)
}

// NewPracticeUsecase wires the repositories and oracle with default clock and
// randomness.
func NewPracticeUsecase(words repository.WordRepository, stats repository.StatsRepository, oracle TranslationOracle, logger *logrus.Logger) PracticeUsecase {
	return &practiceUsecase{
		words:  words,
		stats:  stats,
		oracle: oracle,
		logger: logger,
		clock:  time.Now,
		rand:   rand.Float64,
	}
}

type practiceUsecase struct {
	words  repository.WordRepository
	stats  repository.StatsRepository
	oracle TranslationOracle
	logger *logrus.Logger
	clock  func() time.Time
	rand   func() float64
}

type candidate struct {
	word      *entity.Word
	direction entity.Direction
	weight    float64
}

func (u *practiceUsecase) NextWord(ctx context.Context, query NextWordQuery) (*DrillCard, error) {
	categories := lo.Filter(query.Categories, func(c string, _ int) bool {
		return strings.TrimSpace(c) != ""
	})
	directions := lo.Uniq(lo.Filter(query.Directions, func(d entity.Direction, _ int) bool {
		return d == entity.DirectionSkToEn || d == entity.DirectionEnToSk
	}))
	if len(categories) == 0 || len(directions) == 0 {
		return nil, nil
	}

	words, err := u.words.List(ctx, categories)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, nil
	}

	now := u.clock()
	candidates := make([]candidate, 0, len(words)*len(directions))
	total := 0.0
	for _, w := range words {
		for _, d := range directions {
			weight := u.pairWeight(ctx, w.ID, d, now)
			candidates = append(candidates, candidate{word: w, direction: d, weight: weight})
			total += weight
		}
	}

	// Roulette-wheel draw over the summed weights.
	r := u.rand() * total
	for _, c := range candidates {
		r -= c.weight
		if r <= 0 {
			return cardFor(c.word, c.direction), nil
		}
	}

	// Floating-point drift exhausted the walk; fall back deterministically.
	first := candidates[0]
	return cardFor(first.word, first.direction), nil
}

// pairWeight scores one (word, direction) pair, substituting the baseline
// when the stat row cannot be read.
func (u *practiceUsecase) pairWeight(ctx context.Context, wordID int64, direction entity.Direction, now time.Time) float64 {
	stat, err := u.stats.GetWordStat(ctx, wordID, direction)
	if err != nil {
		u.logger.WithError(err).WithField("word_id", wordID).Debug("word stat unavailable, using baseline weight")
		return 1.0
	}
	return StatWeight(stat, now)
}

func (u *practiceUsecase) CheckAnswer(ctx context.Context, wordID int64, userAnswer string, target entity.Language) (*AnswerCheck, error) {
	if wordID <= 0 {
		return nil, entity.ErrInvalidWordID
	}
	if strings.TrimSpace(userAnswer) == "" {
		return nil, entity.ErrInvalidAnswer
	}
	if target != entity.LanguageSlovak && target != entity.LanguageEnglish {
		return nil, entity.ErrInvalidLanguage
	}

	word, err := u.words.GetByID(ctx, wordID)
	if err != nil {
		return nil, err
	}

	answers := acceptableAnswers(word, target)
	normalized := textnorm.Normalize(userAnswer)
	correct := lo.SomeBy(answers, func(a string) bool {
		return textnorm.Normalize(a) == normalized
	})

	return &AnswerCheck{
		Correct:         correct,
		CorrectAnswers:  answers,
		UserAnswer:      userAnswer,
		NeedsValidation: !correct,
	}, nil
}

func (u *practiceUsecase) RecordAnswer(ctx context.Context, wordID int64, direction entity.Direction, correct bool, elapsed time.Duration) (*RecordOutcome, error) {
	if wordID <= 0 {
		return nil, entity.ErrInvalidWordID
	}
	if direction != entity.DirectionSkToEn && direction != entity.DirectionEnToSk {
		return nil, entity.ErrInvalidDirection
	}

	now := u.clock()
	delta := entity.StatDelta{SeenAt: now}
	session := entity.SessionDelta{TimeMinutes: elapsedMinutes(elapsed)}
	if correct {
		delta.Correct = 1
		session.Correct = 1
	} else {
		delta.Incorrect = 1
		session.Incorrect = 1
	}

	if err := u.stats.UpsertWordStat(ctx, wordID, direction, delta); err != nil {
		return nil, err
	}

	date := entity.DateKey(now)
	if err := u.stats.UpsertSessionStat(ctx, date, session); err != nil {
		return nil, err
	}

	today, err := u.stats.GetSessionStat(ctx, date)
	if err != nil {
		return nil, err
	}

	return &RecordOutcome{WordID: wordID, Direction: direction, Correct: correct, Session: today}, nil
}

func (u *practiceUsecase) ValidateTranslation(ctx context.Context, wordID int64, userAnswer string, target entity.Language) (*ValidationOutcome, error) {
	if wordID <= 0 {
		return nil, entity.ErrInvalidWordID
	}
	if strings.TrimSpace(userAnswer) == "" {
		return nil, entity.ErrInvalidAnswer
	}
	if target != entity.LanguageSlovak && target != entity.LanguageEnglish {
		return nil, entity.ErrInvalidLanguage
	}

	word, err := u.words.GetByID(ctx, wordID)
	if err != nil {
		return nil, err
	}

	existing, err := u.words.GetSynonyms(ctx, wordID, target)
	if err != nil {
		return nil, err
	}

	verdict := u.consultOracle(ctx, &OracleRequest{
		SourceWord:       word.Text(target.Opposite()),
		TargetLanguage:   target,
		KnownTranslation: word.Text(target),
		Candidate:        userAnswer,
		ExistingSynonyms: existing,
	})

	if !verdict.Valid || verdict.Confidence < oracleConfidenceThreshold {
		return &ValidationOutcome{Valid: false, Explanation: verdict.Explanation}, nil
	}

	if _, err := u.words.AddSynonym(ctx, wordID, target, strings.TrimSpace(userAnswer)); err != nil {
		return nil, err
	}

	// Re-read so the client sees the freshly learned synonym.
	updated, err := u.words.GetByID(ctx, wordID)
	if err != nil {
		return nil, err
	}

	return &ValidationOutcome{
		Valid:          true,
		AddedAsSynonym: true,
		Explanation:    verdict.Explanation,
		CorrectAnswers: acceptableAnswers(updated, target),
	}, nil
}

// consultOracle fails closed: any transport or decoding error becomes a
// negative verdict so a broken oracle never blocks the drill.
func (u *practiceUsecase) consultOracle(ctx context.Context, req *OracleRequest) *OracleVerdict {
	if u.oracle == nil {
		return &OracleVerdict{Valid: false, Explanation: "translation validation is not configured"}
	}
	verdict, err := u.oracle.Validate(ctx, req)
	if err != nil || verdict == nil {
		u.logger.WithError(err).Warn("translation oracle failed, treating answer as invalid")
		return &OracleVerdict{Valid: false, Explanation: "validation service unavailable"}
	}
	return verdict
}

func (u *practiceUsecase) WordDifficulty(ctx context.Context, wordID int64, direction entity.Direction) (float64, error) {
	if wordID <= 0 {
		return 0, entity.ErrInvalidWordID
	}
	if direction != entity.DirectionSkToEn && direction != entity.DirectionEnToSk {
		return 0, entity.ErrInvalidDirection
	}
	return u.pairWeight(ctx, wordID, direction, u.clock()), nil
}

// acceptableAnswers lists every accepted spelling for a word in the target
// language: the main translation plus synonyms, each in both its lower-cased
// and diacritic-stripped form, deduped in insertion order.
func acceptableAnswers(word *entity.Word, target entity.Language) []string {
	texts := append([]string{word.Text(target)}, word.Synonyms.ForLanguage(target)...)
	answers := lo.FlatMap(texts, func(t string, _ int) []string {
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return []string{textnorm.Fold(t), textnorm.Normalize(t)}
	})
	return lo.Uniq(answers)
}

// elapsedMinutes rounds the answer's wall time to whole minutes, never
// negative.
func elapsedMinutes(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	return int(math.Round(float64(elapsed.Milliseconds()) / 60000.0))
}

func cardFor(word *entity.Word, direction entity.Direction) *DrillCard {
	card := &DrillCard{
		WordID:         word.ID,
		Direction:      direction,
		Category:       word.Category,
		TargetLanguage: direction.TargetLanguage(),
		Slovak:         word.Slovak,
		English:        word.English,
	}
	if direction == entity.DirectionSkToEn {
		card.Question = word.Slovak
		card.Answer = word.English
	} else {
		card.Question = word.English
		card.Answer = word.Slovak
	}
	return card
}
