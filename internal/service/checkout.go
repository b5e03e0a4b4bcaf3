package service

import (
	"context"
	"time"

	"github.com/ivanpodgorny/clubhost/internal/entity"
	"github.com/ivanpodgorny/clubhost/internal/reconcile"
	"github.com/ivanpodgorny/clubhost/internal/security"
)

type Checkout struct {
	billing    CheckoutBilling
	reconciler SessionReconciler
}

type CheckoutBilling interface {
	CreateOrder(ctx context.Context, planID string) (entity.Order, error)
	GetPlans(ctx context.Context) ([]entity.Plan, error)
}

type SessionReconciler interface {
	Start(ctx context.Context, orderID string, expiresAt time.Time)
	Cancel()
	Snapshot(now time.Time) (reconcile.Snapshot, bool)
}

func NewCheckout(b CheckoutBilling, r SessionReconciler) *Checkout {
	return &Checkout{
		billing:    b,
		reconciler: r,
	}
}

// Start создает заказ на оплату тарифа planID и запускает сессию опроса его
// статуса. Если биллинг отклонил заказ, сессия не запускается и ошибка
// возвращается как есть. Контекст опроса отвязывается от контекста запроса:
// сессия должна переживать HTTP-запрос, в котором была создана.
func (s *Checkout) Start(ctx context.Context, planID string) (entity.Order, error) {
	order, err := s.billing.CreateOrder(ctx, planID)
	if err != nil {
		return order, err
	}

	pollCtx := context.Background()
	if token, ok := security.TokenFromContext(ctx); ok {
		pollCtx = security.WithToken(pollCtx, token)
	}
	s.reconciler.Start(pollCtx, order.ID, order.ExpiresAt)

	return order, nil
}

// Cancel останавливает текущую сессию опроса. Безопасен без активной сессии.
func (s *Checkout) Cancel() {
	s.reconciler.Cancel()
}

// State возвращает состояние последней сессии опроса.
func (s *Checkout) State(now time.Time) (reconcile.Snapshot, bool) {
	return s.reconciler.Snapshot(now)
}

// Plans возвращает список доступных тарифов.
func (s *Checkout) Plans(ctx context.Context) ([]entity.Plan, error) {
	return s.billing.GetPlans(ctx)
}
