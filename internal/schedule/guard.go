package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/ivanpodgorny/clubhost/internal/entity"
)

type GuardState string

const (
	GuardStateIdle    GuardState = "idle"
	GuardStateLoading GuardState = "loading"
	GuardStateDone    GuardState = "done"
)

const (
	wideMonthsBack  = 6
	wideMonthsAhead = 12
)

type WideFetcher interface {
	GetEvents(ctx context.Context, from, to time.Time) ([]entity.ScheduleEvent, error)
}

// Guard выполняет дорогую загрузку широкого окна календаря не более одного
// раза за время жизни поверхности. Состояние меняется только по ребрам
// idle → loading → done и loading → idle при ошибке; из done повторная
// загрузка возможна только явным Retry. Единственные пишущие операции —
// EnsureFetched и Retry.
type Guard struct {
	fetcher WideFetcher
	now     func() time.Time

	mu     sync.Mutex
	state  GuardState
	events []entity.ScheduleEvent
}

func NewGuard(f WideFetcher) *Guard {
	return &Guard{
		fetcher: f,
		now:     time.Now,
		state:   GuardStateIdle,
	}
}

// EnsureFetched загружает широкое окно (-6/+12 месяцев от текущего дня),
// если оно еще не загружено. Повторные вызовы во время загрузки и после
// ее завершения ничего не делают и не порождают дублирующих запросов.
// При ошибке состояние возвращается в idle, чтобы позволить Retry.
func (g *Guard) EnsureFetched(ctx context.Context) error {
	g.mu.Lock()
	if g.state != GuardStateIdle {
		g.mu.Unlock()

		return nil
	}

	g.state = GuardStateLoading
	g.mu.Unlock()

	now := g.now()
	events, err := g.fetcher.GetEvents(ctx, now.AddDate(0, -wideMonthsBack, 0), now.AddDate(0, wideMonthsAhead, 0))

	g.mu.Lock()
	defer g.mu.Unlock()

	if err != nil {
		g.state = GuardStateIdle

		return err
	}

	g.state = GuardStateDone
	g.events = events

	return nil
}

// Retry явно повторяет загрузку после ошибки. Если загрузка уже идет,
// ничего не делает.
func (g *Guard) Retry(ctx context.Context) error {
	g.mu.Lock()
	if g.state == GuardStateLoading {
		g.mu.Unlock()

		return nil
	}

	g.state = GuardStateIdle
	g.mu.Unlock()

	return g.EnsureFetched(ctx)
}

func (g *Guard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

// Events возвращает копию загруженного широкого набора событий.
func (g *Guard) Events() []entity.ScheduleEvent {
	g.mu.Lock()
	defer g.mu.Unlock()

	events := make([]entity.ScheduleEvent, len(g.events))
	copy(events, g.events)

	return events
}

// Upcoming возвращает ближайшие события широкого набора. Списки считаются
// по требованию: пока меню закрыто, вычислений не происходит.
func (g *Guard) Upcoming() []entity.ScheduleEvent {
	return Upcoming(g.Events(), g.now())
}

// Past возвращает недавние прошедшие события широкого набора.
func (g *Guard) Past() []entity.ScheduleEvent {
	return Past(g.Events(), g.now())
}
