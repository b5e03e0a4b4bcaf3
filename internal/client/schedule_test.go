package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/imroc/req/v3"
	"github.com/ivanpodgorny/clubhost/internal/entity"
	inerr "github.com/ivanpodgorny/clubhost/internal/errors"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_GetEvents(t *testing.T) {
	var (
		ctx    = context.Background()
		addr   = "https://schedule.loc"
		from   = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		to     = time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
		events = []entity.ScheduleEvent{
			{
				ID:        "ev-1",
				Title:     "Весенний контест",
				DateStart: "2025-03-10",
				Deadline:  "2025-03-12",
				Organizer: "club",
				Tags:      []string{"rated"},
				Status:    "published",
				Type:      entity.EventTypeContest,
			},
		}
		r = req.C().SetBaseURL(addr)
	)

	httpmock.ActivateNonDefault(r.GetClient())
	defer httpmock.DeactivateAndReset()

	b, err := json.Marshal(events)
	require.NoError(t, err)
	httpmock.RegisterResponderWithQuery(
		"GET",
		addr+"/api/events",
		url.Values{
			"from": []string{"2025-03-01"},
			"to":   []string{"2025-04-30"},
		},
		httpmock.NewBytesResponder(http.StatusOK, b),
	)
	client := Schedule{
		req: r,
	}

	got, err := client.GetEvents(ctx, from, to)
	assert.NoError(t, err, "успешное получение событий")
	assert.Equal(t, events, got, "успешное получение событий")
}

func TestSchedule_GetEventsError(t *testing.T) {
	var (
		ctx  = context.Background()
		addr = "https://schedule.loc"
		r    = req.C().SetBaseURL(addr)
	)

	httpmock.ActivateNonDefault(r.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(
		"GET",
		addr+"/api/events",
		httpmock.NewStringResponder(http.StatusBadGateway, ""),
	)
	client := Schedule{
		req: r,
	}

	_, err := client.GetEvents(ctx, time.Now(), time.Now())
	assert.ErrorIs(t, err, inerr.ErrFetchFailed, "ошибка загрузки оборачивается в ErrFetchFailed")
}
