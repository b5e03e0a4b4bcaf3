package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/ivanpodgorny/clubhost/internal/entity"
	inerr "github.com/ivanpodgorny/clubhost/internal/errors"
)

type Schedule struct {
	provider  ScheduleProvider
	validator Validator
}

type ScheduleProvider interface {
	EventsOnDay(ctx context.Context, day string) ([]entity.ScheduleEvent, error)
	JumpOpen(ctx context.Context) error
	JumpRetry(ctx context.Context) error
	JumpLists() (upcoming, past []entity.ScheduleEvent, err error)
}

type JumpListsResponse struct {
	Upcoming []entity.ScheduleEvent `json:"upcoming"`
	Past     []entity.ScheduleEvent `json:"past"`
}

func NewSchedule(p ScheduleProvider, v Validator) *Schedule {
	return &Schedule{
		provider:  p,
		validator: v,
	}
}

// GetEvents возвращает события календарного дня из параметра day. Если
// событий нет, возвращает ответ с кодом 204, при ошибке загрузки окна - 502.
func (h *Schedule) GetEvents(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if err := h.validator.Var(r.Context(), day, "required,dayslice"); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)

		return
	}

	events, err := h.provider.EventsOnDay(r.Context(), day)
	if errors.Is(err, inerr.ErrFetchFailed) {
		w.WriteHeader(http.StatusBadGateway)

		return
	} else if err != nil {
		serverError(w)

		return
	}

	if len(events) == 0 {
		w.WriteHeader(http.StatusNoContent)

		return
	}

	responseAsJSON(w, events, http.StatusOK)
}

// OpenJump лениво загружает широкое окно календаря при открытии меню
// перехода. Повторные открытия не приводят к новым загрузкам. При ошибке
// загрузки возвращает ответ с кодом 502, позволяя повтор.
func (h *Schedule) OpenJump(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.JumpOpen(r.Context()); err != nil {
		w.WriteHeader(http.StatusBadGateway)

		return
	}

	w.WriteHeader(http.StatusOK)
}

// RetryJump явно повторяет загрузку широкого окна после ошибки.
func (h *Schedule) RetryJump(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.JumpRetry(r.Context()); err != nil {
		w.WriteHeader(http.StatusBadGateway)

		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetJumpLists возвращает списки ближайших и прошедших событий широкого
// окна. Пока окно не загружено, возвращает ответ с кодом 409.
func (h *Schedule) GetJumpLists(w http.ResponseWriter, _ *http.Request) {
	upcoming, past, err := h.provider.JumpLists()
	if errors.Is(err, inerr.ErrFetchPending) {
		w.WriteHeader(http.StatusConflict)

		return
	} else if err != nil {
		serverError(w)

		return
	}

	responseAsJSON(w, JumpListsResponse{
		Upcoming: upcoming,
		Past:     past,
	}, http.StatusOK)
}
