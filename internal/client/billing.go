package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/imroc/req/v3"
	"github.com/ivanpodgorny/clubhost/internal/entity"
	inerr "github.com/ivanpodgorny/clubhost/internal/errors"
	"github.com/ivanpodgorny/clubhost/internal/security"
)

type Billing struct {
	req *req.Client
}

func NewBilling(addr string) *Billing {
	return &Billing{
		req: req.C().
			SetBaseURL(addr).
			SetTimeout(5 * time.Second),
	}
}

// CreateOrder отправляет запрос на создание заказа на оплату тарифа planID.
// Запрос выполняется с ключом идемпотентности, поэтому его повтор после
// сетевой ошибки не приводит к двойному списанию. Если биллинг отклонил
// заказ (неизвестный тариф, нет прав), возвращает ошибку
// errors.ErrCheckoutRejected; прочие ошибки считаются временными.
func (c *Billing) CreateOrder(ctx context.Context, planID string) (entity.Order, error) {
	order := entity.Order{}
	key, err := security.IdempotencyKey()
	if err != nil {
		return order, err
	}

	resp, err := c.request(ctx).
		SetHeader("Idempotency-Key", key).
		SetBodyJsonMarshal(&struct {
			PlanID string `json:"plan_id"`
		}{
			PlanID: planID,
		}).
		SetSuccessResult(&order).
		Post("/api/orders")
	if err != nil {
		return order, err
	}

	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError {
		return order, inerr.ErrCheckoutRejected
	}

	if resp.IsErrorState() {
		return order, fmt.Errorf("server responded with status code %d", resp.StatusCode)
	}

	return order, nil
}

// GetOrderStatus возвращает текущий статус заказа. Чтение не имеет побочных
// эффектов на стороне биллинга, его можно безопасно повторять. Неизвестные
// значения статуса возвращаются как есть: решение о том, завершать ли опрос,
// принимает вызывающая сторона.
func (c *Billing) GetOrderStatus(ctx context.Context, orderID string) (entity.OrderStatus, *time.Time, error) {
	respBody := struct {
		Status string     `json:"status"`
		PaidAt *time.Time `json:"paid_at"`
	}{}
	resp, err := c.request(ctx).
		SetSuccessResult(&respBody).
		SetPathParam("id", orderID).
		Get("/api/orders/{id}/status")
	if err != nil {
		return "", nil, err
	}

	if resp.IsErrorState() {
		return "", nil, fmt.Errorf("server responded with status code %d", resp.StatusCode)
	}

	return entity.OrderStatus(respBody.Status), respBody.PaidAt, nil
}

// GetPlans возвращает список доступных тарифов.
func (c *Billing) GetPlans(ctx context.Context) ([]entity.Plan, error) {
	var plans []entity.Plan
	resp, err := c.request(ctx).
		SetSuccessResult(&plans).
		Get("/api/plans")
	if err != nil {
		return nil, err
	}

	if resp.IsErrorState() {
		return nil, fmt.Errorf("server responded with status code %d", resp.StatusCode)
	}

	return plans, nil
}

// GetProfile возвращает актуальный снимок профиля пользователя.
func (c *Billing) GetProfile(ctx context.Context) (entity.Profile, error) {
	profile := entity.Profile{}
	resp, err := c.request(ctx).
		SetSuccessResult(&profile).
		Get("/api/me")
	if err != nil {
		return profile, err
	}

	if resp.IsErrorState() {
		return profile, fmt.Errorf("server responded with status code %d", resp.StatusCode)
	}

	return profile, nil
}

// GetSummary возвращает сводку по подписке пользователя.
func (c *Billing) GetSummary(ctx context.Context) (entity.Summary, error) {
	summary := entity.Summary{}
	resp, err := c.request(ctx).
		SetSuccessResult(&summary).
		Get("/api/me/summary")
	if err != nil {
		return summary, err
	}

	if resp.IsErrorState() {
		return summary, fmt.Errorf("server responded with status code %d", resp.StatusCode)
	}

	return summary, nil
}

func (c *Billing) request(ctx context.Context) *req.Request {
	r := c.req.R().SetContext(ctx)
	if token, ok := security.TokenFromContext(ctx); ok {
		r.SetHeader("Authorization", token)
	}

	return r
}
