package reconcile

import (
	"time"

	"github.com/ivanpodgorny/clubhost/internal/entity"
)

type Phase string

const (
	PhasePolling  Phase = "polling"
	PhasePaid     Phase = "paid"
	PhaseReview   Phase = "needs_review"
	PhaseCanceled Phase = "canceled"
)

type State struct {
	Phase      Phase
	LastStatus entity.OrderStatus
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeReview
)

// Advance применяет очередной ответ биллинга к состоянию сессии и возвращает
// новое состояние и исход. Ответы могут приходить не в порядке отправки
// запросов: после выхода из PhasePolling любой ответ игнорируется, поэтому
// запоздавший pending после paid не имеет эффекта. Терминальными являются
// только статусы paid и needs_review, все остальные значения означают
// продолжение опроса.
func Advance(s State, status entity.OrderStatus) (State, Outcome) {
	if s.Phase != PhasePolling {
		return s, OutcomeNone
	}

	s.LastStatus = status
	switch status {
	case entity.OrderStatusPaid:
		s.Phase = PhasePaid

		return s, OutcomeSuccess
	case entity.OrderStatusNeedsReview:
		s.Phase = PhaseReview

		return s, OutcomeReview
	}

	return s, OutcomeNone
}

// Expired сообщает, истек ли срок оплаты заказа к моменту now. Используется
// только для отображения: опрос останавливает терминальный статус биллинга,
// а не локальные часы.
func Expired(o entity.Order, now time.Time) bool {
	return !o.ExpiresAt.IsZero() && now.After(o.ExpiresAt)
}
