package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ivanpodgorny/clubhost/internal/entity"
	inerr "github.com/ivanpodgorny/clubhost/internal/errors"
	"github.com/ivanpodgorny/clubhost/internal/schedule"
)

// Schedule отвечает за два независимых набора событий календаря: узкое окно
// видимого месяца, которое читается через локальный кеш, и широкое окно
// меню перехода, загружаемое лениво через schedule.Guard. Наборы никогда
// не пишут друг в друга.
type Schedule struct {
	fetcher EventFetcher
	guard   JumpGuard
	cache   SnapshotCache
	mu      sync.Mutex
}

type EventFetcher interface {
	GetEvents(ctx context.Context, from, to time.Time) ([]entity.ScheduleEvent, error)
}

type JumpGuard interface {
	EnsureFetched(ctx context.Context) error
	Retry(ctx context.Context) error
	State() schedule.GuardState
	Upcoming() []entity.ScheduleEvent
	Past() []entity.ScheduleEvent
}

const dayLayout = "2006-01-02"

func NewSchedule(f EventFetcher, g JumpGuard, c SnapshotCache) *Schedule {
	return &Schedule{
		fetcher: f,
		guard:   g,
		cache:   c,
	}
}

// EventsOnDay возвращает события календарного дня day (YYYY-MM-DD). Узкое
// окно (месяц дня с буфером в месяц с обеих сторон) читается из кеша;
// при промахе выполняется один запрос к API расписания. Одновременные
// запросы одного окна сериализуются, чтобы не дублировать загрузку.
func (s *Schedule) EventsOnDay(ctx context.Context, day string) ([]entity.ScheduleEvent, error) {
	target, err := time.Parse(dayLayout, day)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		events []entity.ScheduleEvent
		key    = "events/" + target.Format("2006-01")
	)
	if err := s.cache.Get(key, &events); err != nil {
		if !errors.Is(err, inerr.ErrCacheMiss) {
			return nil, err
		}

		first := time.Date(target.Year(), target.Month(), 1, 0, 0, 0, 0, time.UTC)
		events, err = s.fetcher.GetEvents(ctx, first.AddDate(0, -1, 0), first.AddDate(0, 2, -1))
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(key, events); err != nil {
			return nil, err
		}
	}

	return schedule.EventsOnDay(day, events), nil
}

// JumpOpen лениво загружает широкое окно при открытии меню перехода.
// Повторные открытия не приводят к новым запросам.
func (s *Schedule) JumpOpen(ctx context.Context) error {
	return s.guard.EnsureFetched(ctx)
}

// JumpRetry повторяет загрузку широкого окна после ошибки.
func (s *Schedule) JumpRetry(ctx context.Context) error {
	return s.guard.Retry(ctx)
}

// JumpLists возвращает списки ближайших и прошедших событий широкого окна.
// Пока окно не загружено, возвращает ошибку errors.ErrFetchPending.
func (s *Schedule) JumpLists() (upcoming, past []entity.ScheduleEvent, err error) {
	if s.guard.State() != schedule.GuardStateDone {
		return nil, nil, inerr.ErrFetchPending
	}

	return s.guard.Upcoming(), s.guard.Past(), nil
}
