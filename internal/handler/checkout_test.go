package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/ivanpodgorny/clubhost/internal/entity"
	inerr "github.com/ivanpodgorny/clubhost/internal/errors"
	"github.com/ivanpodgorny/clubhost/internal/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type CheckoutProcessorMock struct {
	mock.Mock
}

func (m *CheckoutProcessorMock) Start(_ context.Context, planID string) (entity.Order, error) {
	args := m.Called(planID)

	return args.Get(0).(entity.Order), args.Error(1)
}

func (m *CheckoutProcessorMock) Cancel() {
	m.Called()
}

func (m *CheckoutProcessorMock) State(_ time.Time) (reconcile.Snapshot, bool) {
	args := m.Called()

	return args.Get(0).(reconcile.Snapshot), args.Bool(1)
}

func (m *CheckoutProcessorMock) Plans(_ context.Context) ([]entity.Plan, error) {
	args := m.Called()

	return args.Get(0).([]entity.Plan), args.Error(1)
}

func TestCheckout_CreateSuccess(t *testing.T) {
	var (
		planID = "plan-pro"
		order  = entity.Order{
			ID:        "ord-1",
			PlanID:    planID,
			Status:    entity.OrderStatusPending,
			Amount:    49900,
			ExpiresAt: time.Now().Add(15 * time.Minute).UTC(),
		}
		processor = &CheckoutProcessorMock{}
		val       = &ValidatorMock{}
	)

	val.On("Struct", mock.AnythingOfType("*handler.CheckoutRequest")).Return(nil).Once()
	processor.On("Start", planID).Return(order, nil).Once()
	handler := Checkout{
		processor: processor,
		validator: val,
	}

	result := sendTestRequest(
		http.MethodPost,
		"/api/checkout",
		bytes.NewBufferString(`{"plan_id":"plan-pro"}`),
		handler.Create,
	)
	assert.Equal(t, http.StatusCreated, result.StatusCode)

	b, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	orderJSON, err := json.Marshal(order)
	require.NoError(t, err)
	assert.JSONEq(t, string(orderJSON), string(b))
	require.NoError(t, result.Body.Close())
	val.AssertExpectations(t)
	processor.AssertExpectations(t)
}

func TestCheckout_CreateErrors(t *testing.T) {
	var (
		processorRejected = &CheckoutProcessorMock{}
		processorError    = &CheckoutProcessorMock{}
		val               = &ValidatorMock{}
	)

	val.On("Struct", mock.AnythingOfType("*handler.CheckoutRequest")).Return(nil).Twice()
	processorRejected.
		On("Start", "plan-unknown").
		Return(entity.Order{}, inerr.ErrCheckoutRejected).
		Once()
	processorError.
		On("Start", "plan-unknown").
		Return(entity.Order{}, errors.New("")).
		Once()

	tests := []struct {
		name           string
		processor      CheckoutProcessor
		wantStatusCode int
	}{
		{
			name:           "биллинг отклонил заказ",
			processor:      processorRejected,
			wantStatusCode: http.StatusConflict,
		},
		{
			name:           "ошибка при создании заказа",
			processor:      processorError,
			wantStatusCode: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Checkout{
				processor: tt.processor,
				validator: val,
			}
			result := sendTestRequest(
				http.MethodPost,
				"/api/checkout",
				bytes.NewBufferString(`{"plan_id":"plan-unknown"}`),
				handler.Create,
			)
			assert.Equal(t, tt.wantStatusCode, result.StatusCode)
			require.NoError(t, result.Body.Close())
		})
	}
	val.AssertExpectations(t)
	processorRejected.AssertExpectations(t)
	processorError.AssertExpectations(t)
}

func TestCheckout_CreateValidationError(t *testing.T) {
	var (
		processor = &CheckoutProcessorMock{}
		val       = &ValidatorMock{}
	)

	val.On("Struct", mock.AnythingOfType("*handler.CheckoutRequest")).Return(errors.New("")).Once()
	handler := Checkout{
		processor: processor,
		validator: val,
	}

	result := sendTestRequest(
		http.MethodPost,
		"/api/checkout",
		bytes.NewBufferString(`{"plan_id":""}`),
		handler.Create,
	)
	assert.Equal(t, http.StatusBadRequest, result.StatusCode)
	require.NoError(t, result.Body.Close())
	processor.AssertNotCalled(t, "Start", mock.Anything)
}

func TestCheckout_State(t *testing.T) {
	var (
		processor = &CheckoutProcessorMock{}
		presenter = &NoticeSourceMock{}
		snapshot  = reconcile.Snapshot{
			OrderID:    "ord-1",
			Phase:      reconcile.PhasePaid,
			LastStatus: entity.OrderStatusPaid,
		}
		state = entity.PresenterState{
			Notices: []entity.Notice{
				{
					Kind:    "success",
					Message: "заказ оплачен",
				},
			},
			Celebrate:     true,
			CloseCheckout: true,
		}
	)

	processor.On("State").Return(snapshot, true).Once()
	presenter.On("Drain").Return(state).Once()
	handler := Checkout{
		processor: processor,
		presenter: presenter,
	}

	result := sendTestRequest(
		http.MethodGet,
		"/api/checkout/state",
		nil,
		handler.State,
	)
	assert.Equal(t, http.StatusOK, result.StatusCode)

	response := StateResponse{}
	require.NoError(t, json.NewDecoder(result.Body).Decode(&response))
	require.NotNil(t, response.Session)
	assert.Equal(t, snapshot, *response.Session)
	assert.Equal(t, state.Notices, response.Notices)
	assert.True(t, response.Celebrate)
	assert.True(t, response.CloseCheckout)
	require.NoError(t, result.Body.Close())
	processor.AssertExpectations(t)
	presenter.AssertExpectations(t)
}

func TestCheckout_StateEmpty(t *testing.T) {
	var (
		processor = &CheckoutProcessorMock{}
		presenter = &NoticeSourceMock{}
	)

	processor.On("State").Return(reconcile.Snapshot{}, false).Once()
	presenter.On("Drain").Return(entity.PresenterState{}).Once()
	handler := Checkout{
		processor: processor,
		presenter: presenter,
	}

	result := sendTestRequest(
		http.MethodGet,
		"/api/checkout/state",
		nil,
		handler.State,
	)
	assert.Equal(t, http.StatusNoContent, result.StatusCode)
	require.NoError(t, result.Body.Close())
}

func TestCheckout_CancelSession(t *testing.T) {
	processor := &CheckoutProcessorMock{}
	processor.On("Cancel").Once()
	handler := Checkout{
		processor: processor,
	}

	result := sendTestRequest(
		http.MethodPost,
		"/api/checkout/cancel",
		nil,
		handler.CancelSession,
	)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	require.NoError(t, result.Body.Close())
	processor.AssertExpectations(t)
}

func TestCheckout_GetPlans(t *testing.T) {
	var (
		plans = []entity.Plan{
			{
				ID:     "plan-basic",
				Title:  "Базовый",
				Amount: 19900,
				Months: 1,
			},
		}
		processorPlans = &CheckoutProcessorMock{}
		processorEmpty = &CheckoutProcessorMock{}
	)

	processorPlans.On("Plans").Return(plans, nil).Once()
	processorEmpty.On("Plans").Return([]entity.Plan{}, nil).Once()

	result := sendTestRequest(
		http.MethodGet,
		"/api/plans",
		nil,
		(&Checkout{processor: processorPlans}).GetPlans,
	)
	assert.Equal(t, http.StatusOK, result.StatusCode)

	b, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	plansJSON, err := json.Marshal(plans)
	require.NoError(t, err)
	assert.JSONEq(t, string(plansJSON), string(b))
	require.NoError(t, result.Body.Close())

	result = sendTestRequest(
		http.MethodGet,
		"/api/plans",
		nil,
		(&Checkout{processor: processorEmpty}).GetPlans,
	)
	assert.Equal(t, http.StatusNoContent, result.StatusCode, "пустой список тарифов")
	require.NoError(t, result.Body.Close())
}
