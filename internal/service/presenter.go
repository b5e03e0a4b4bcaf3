package service

import (
	"sync"

	"github.com/ivanpodgorny/clubhost/internal/entity"
)

// Notices реализует презентационные хуки реконсилера. Уведомления, сигнал
// праздничной анимации и запрос на закрытие окна оплаты накапливаются
// и забираются веб-клиентом при следующем опросе состояния. Ошибок здесь
// не бывает, на ход реконсиляции показ уведомлений не влияет.
type Notices struct {
	mu      sync.Mutex
	pending []entity.Notice
	state   entity.PresenterState
}

func NewNotices() *Notices {
	return &Notices{}
}

func (n *Notices) Notify(kind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pending = append(n.pending, entity.Notice{
		Kind:    kind,
		Message: message,
	})
}

func (n *Notices) Celebrate() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.state.Celebrate = true
}

func (n *Notices) CloseCheckout() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.state.CloseCheckout = true
}

// Drain возвращает накопленное состояние и очищает буфер. Повторный вызов
// без новых событий возвращает пустое состояние.
func (n *Notices) Drain() entity.PresenterState {
	n.mu.Lock()
	defer n.mu.Unlock()

	state := n.state
	state.Notices = n.pending
	n.pending = nil
	n.state = entity.PresenterState{}

	return state
}
