package client

import (
	"context"
	"fmt"
	"time"

	"github.com/imroc/req/v3"
	"github.com/ivanpodgorny/clubhost/internal/entity"
	inerr "github.com/ivanpodgorny/clubhost/internal/errors"
	"github.com/ivanpodgorny/clubhost/internal/security"
)

type Schedule struct {
	req *req.Client
}

const dayLayout = "2006-01-02"

func NewSchedule(addr string) *Schedule {
	return &Schedule{
		req: req.C().
			SetBaseURL(addr).
			SetTimeout(10 * time.Second),
	}
}

// GetEvents возвращает события календаря в интервале [from, to]. Границы
// передаются календарными днями UTC. Чтение идемпотентно, его можно
// безопасно повторять. Любая ошибка оборачивается в errors.ErrFetchFailed.
func (c *Schedule) GetEvents(ctx context.Context, from, to time.Time) ([]entity.ScheduleEvent, error) {
	var events []entity.ScheduleEvent
	r := c.req.R().SetContext(ctx)
	if token, ok := security.TokenFromContext(ctx); ok {
		r.SetHeader("Authorization", token)
	}

	resp, err := r.
		SetQueryParam("from", from.UTC().Format(dayLayout)).
		SetQueryParam("to", to.UTC().Format(dayLayout)).
		SetSuccessResult(&events).
		Get("/api/events")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", inerr.ErrFetchFailed, err)
	}

	if resp.IsErrorState() {
		return nil, fmt.Errorf("%w: server responded with status code %d", inerr.ErrFetchFailed, resp.StatusCode)
	}

	return events, nil
}
