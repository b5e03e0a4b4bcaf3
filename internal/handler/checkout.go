package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ivanpodgorny/clubhost/internal/entity"
	inerr "github.com/ivanpodgorny/clubhost/internal/errors"
	"github.com/ivanpodgorny/clubhost/internal/reconcile"
)

type Checkout struct {
	processor CheckoutProcessor
	presenter NoticeSource
	validator Validator
}

type CheckoutProcessor interface {
	Start(ctx context.Context, planID string) (entity.Order, error)
	Cancel()
	State(now time.Time) (reconcile.Snapshot, bool)
	Plans(ctx context.Context) ([]entity.Plan, error)
}

type NoticeSource interface {
	Drain() entity.PresenterState
}

type StateResponse struct {
	Session       *reconcile.Snapshot `json:"session,omitempty"`
	Notices       []entity.Notice     `json:"notices"`
	Celebrate     bool                `json:"celebrate"`
	CloseCheckout bool                `json:"close_checkout"`
}

func NewCheckout(p CheckoutProcessor, n NoticeSource, v Validator) *Checkout {
	return &Checkout{
		processor: p,
		presenter: n,
		validator: v,
	}
}

// Create обрабатывает запрос на оплату тарифа: создает заказ и запускает
// опрос его статуса. Возвращает ответ с кодом 201 и данными заказа, 409 -
// если биллинг отклонил заказ.
func (h *Checkout) Create(w http.ResponseWriter, r *http.Request) {
	request := CheckoutRequest{}
	if err := readJSONBodyAndValidate(r.Context(), &request, r, h.validator); err != nil {
		badRequest(w)

		return
	}

	order, err := h.processor.Start(r.Context(), request.PlanID)
	if errors.Is(err, inerr.ErrCheckoutRejected) {
		w.WriteHeader(http.StatusConflict)

		return
	} else if err != nil {
		serverError(w)

		return
	}

	responseAsJSON(w, order, http.StatusCreated)
}

// State возвращает состояние текущей сессии оплаты вместе с накопленными
// уведомлениями. Если сессий еще не было и уведомлений нет, возвращает
// ответ с кодом 204.
func (h *Checkout) State(w http.ResponseWriter, r *http.Request) {
	var (
		response      = StateResponse{}
		snapshot, ok  = h.processor.State(time.Now())
		presenterData = h.presenter.Drain()
	)
	if ok {
		response.Session = &snapshot
	}
	response.Notices = presenterData.Notices
	response.Celebrate = presenterData.Celebrate
	response.CloseCheckout = presenterData.CloseCheckout

	if !ok && len(response.Notices) == 0 && !response.Celebrate && !response.CloseCheckout {
		w.WriteHeader(http.StatusNoContent)

		return
	}

	responseAsJSON(w, response, http.StatusOK)
}

// CancelSession останавливает опрос статуса заказа, когда пользователь
// закрывает окно оплаты. Идемпотентен.
func (h *Checkout) CancelSession(w http.ResponseWriter, _ *http.Request) {
	h.processor.Cancel()
	w.WriteHeader(http.StatusOK)
}

// GetPlans возвращает список доступных тарифов. Если тарифов нет,
// возвращает ответ с кодом 204.
func (h *Checkout) GetPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.processor.Plans(r.Context())
	if err != nil {
		serverError(w)

		return
	}

	if len(plans) == 0 {
		w.WriteHeader(http.StatusNoContent)

		return
	}

	responseAsJSON(w, plans, http.StatusOK)
}
