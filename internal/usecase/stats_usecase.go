package usecase

import (
	"context"
	"math"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/michalkratky/slovicka/internal/entity"
	"github.com/michalkratky/slovicka/internal/repository"
)

const defaultHistoryDays = 7

// SessionOverview bundles today's aggregate with recent history for the
// statistics view.
type SessionOverview struct {
	Today   *entity.SessionStat
	History []*entity.SessionStat
	Summary SessionSummary
}

// SessionSummary condenses the history window.
type SessionSummary struct {
	TotalDays        int
	AverageCorrect   int
	AverageIncorrect int
	TotalTimeMinutes int
}

// ConsolidationReport lists the dates whose duplicate rows were collapsed.
type ConsolidationReport struct {
	ConsolidatedDates int
	Details           []*entity.SessionStat
}

// StatsUsecase exposes aggregated practice statistics and the session-stats
// repair pass.
type StatsUsecase interface {
	SessionOverview(ctx context.Context, historyDays int) (*SessionOverview, error)
	UserWordStats(ctx context.Context) ([]*entity.UserWordStat, error)
	Consolidate(ctx context.Context) (*ConsolidationReport, error)
}

// NewStatsUsecase wires the stats repository with the default clock.
func NewStatsUsecase(stats repository.StatsRepository, logger *logrus.Logger) StatsUsecase {
	return &statsUsecase{stats: stats, logger: logger, clock: time.Now}
}

type statsUsecase struct {
	stats  repository.StatsRepository
	logger *logrus.Logger
	clock  func() time.Time
}

func (u *statsUsecase) SessionOverview(ctx context.Context, historyDays int) (*SessionOverview, error) {
	if historyDays <= 0 {
		historyDays = defaultHistoryDays
	}

	today, err := u.stats.GetSessionStat(ctx, entity.DateKey(u.clock()))
	if err != nil {
		return nil, err
	}

	history, err := u.stats.ListSessionHistory(ctx, historyDays)
	if err != nil {
		return nil, err
	}

	return &SessionOverview{Today: today, History: history, Summary: summarize(history)}, nil
}

func (u *statsUsecase) UserWordStats(ctx context.Context) ([]*entity.UserWordStat, error) {
	return u.stats.ListUserWordStats(ctx)
}

func (u *statsUsecase) Consolidate(ctx context.Context) (*ConsolidationReport, error) {
	collapsed, err := u.stats.ConsolidateSessionStats(ctx)
	if err != nil {
		return nil, err
	}
	if len(collapsed) > 0 {
		u.logger.WithField("dates", len(collapsed)).Info("consolidated duplicate session stats")
	}
	return &ConsolidationReport{ConsolidatedDates: len(collapsed), Details: collapsed}, nil
}

func summarize(history []*entity.SessionStat) SessionSummary {
	summary := SessionSummary{TotalDays: len(history)}
	if len(history) == 0 {
		return summary
	}

	correct := lo.SumBy(history, func(s *entity.SessionStat) int { return s.CorrectAnswers })
	incorrect := lo.SumBy(history, func(s *entity.SessionStat) int { return s.IncorrectAnswers })
	summary.AverageCorrect = int(math.Round(float64(correct) / float64(len(history))))
	summary.AverageIncorrect = int(math.Round(float64(incorrect) / float64(len(history))))
	summary.TotalTimeMinutes = lo.SumBy(history, func(s *entity.SessionStat) int { return s.TotalTimeMinutes })
	return summary
}
