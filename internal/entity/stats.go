package entity

import "time"

// WordStat accumulates drill outcomes for one (word, direction) pair.
// It is created lazily on the first recorded answer.
type WordStat struct {
	WordID         int64
	Direction      Direction
	CorrectCount   int
	IncorrectCount int
	LastSeen       time.Time
	UpdatedAt      time.Time
}

// Seen reports whether the pair has been practiced at least once.
func (s *WordStat) Seen() bool {
	return s.CorrectCount+s.IncorrectCount > 0
}

// SuccessRate returns the percentage of correct answers, 0 for unseen pairs.
func (s *WordStat) SuccessRate() float64 {
	total := s.CorrectCount + s.IncorrectCount
	if total == 0 {
		return 0
	}
	return float64(s.CorrectCount) * 100.0 / float64(total)
}

// StatDelta is one recorded answer applied to a WordStat.
type StatDelta struct {
	Correct   int
	Incorrect int
	SeenAt    time.Time
}

// SessionStat aggregates one calendar day of practice.
// At most one row per date is intended; duplicates created by racing writers
// are collapsed by the consolidation operation.
type SessionStat struct {
	ID               int64
	Date             string // YYYY-MM-DD, server-local
	CorrectAnswers   int
	IncorrectAnswers int
	TotalTimeMinutes int
	WordsPracticed   int
}

// SuccessRate returns the percentage of correct answers for the day.
func (s *SessionStat) SuccessRate() float64 {
	total := s.CorrectAnswers + s.IncorrectAnswers
	if total == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) * 100.0 / float64(total)
}

// SessionDelta is one answer's contribution to the daily aggregate.
type SessionDelta struct {
	Correct     int
	Incorrect   int
	TimeMinutes int
}

// UserWordStat joins a WordStat with its word for reporting.
type UserWordStat struct {
	Slovak         string
	English        string
	Category       string
	Direction      Direction
	CorrectCount   int
	IncorrectCount int
	LastSeen       time.Time
	SuccessRate    float64
}

// CategoryStat summarises stored words per category.
type CategoryStat struct {
	Category          string
	WordCount         int
	WordsWithSynonyms int
}

// DateKey renders t as a session_stats date in the server's local timezone.
func DateKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}
