package reconcile

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ivanpodgorny/clubhost/internal/entity"
)

// Reconciler доводит созданный заказ до терминального состояния, опрашивая
// биллинг с фиксированным интервалом. Одновременно активна не более одной
// сессии: запуск новой сначала отменяет предыдущую. Побочные эффекты
// успешной оплаты выполняются ровно один раз.
type Reconciler struct {
	reader    StatusReader
	presenter Presenter
	identity  IdentitySyncer
	summary   SummaryReloader
	interval  time.Duration

	mu      sync.Mutex
	session *session
}

type StatusReader interface {
	GetOrderStatus(ctx context.Context, orderID string) (entity.OrderStatus, *time.Time, error)
}

type Presenter interface {
	Notify(kind, message string)
	Celebrate()
	CloseCheckout()
}

type IdentitySyncer interface {
	Resync(ctx context.Context) error
}

type SummaryReloader interface {
	Reload(ctx context.Context) error
}

type session struct {
	orderID   string
	expiresAt time.Time
	state     State
	cancel    context.CancelFunc
	done      chan struct{}
}

// Snapshot описывает состояние текущей сессии для отображения.
// Признак Expired носит справочный характер и не влияет на опрос.
type Snapshot struct {
	OrderID    string             `json:"order_id"`
	Phase      Phase              `json:"phase"`
	LastStatus entity.OrderStatus `json:"last_status,omitempty"`
	ExpiresAt  time.Time          `json:"expires_at"`
	Expired    bool               `json:"expired"`
}

func New(r StatusReader, p Presenter, i IdentitySyncer, s SummaryReloader, interval time.Duration) *Reconciler {
	return &Reconciler{
		reader:    r,
		presenter: p,
		identity:  i,
		summary:   s,
		interval:  interval,
	}
}

// Start начинает опрос статуса заказа orderID. Если другая сессия еще
// активна, она синхронно отменяется до запуска новой. Переданный контекст
// должен переживать запрос, в котором создан заказ.
func (r *Reconciler) Start(ctx context.Context, orderID string, expiresAt time.Time) {
	r.mu.Lock()
	if r.session != nil {
		r.session.stop()
	}

	pollCtx, cancel := context.WithCancel(ctx)
	s := &session{
		orderID:   orderID,
		expiresAt: expiresAt,
		state:     State{Phase: PhasePolling},
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	r.session = s
	r.mu.Unlock()

	go r.poll(pollCtx, s)
}

// Cancel останавливает опрос текущей сессии. Идемпотентен: повторные вызовы
// и вызов без активной сессии безопасны. Побочные эффекты оплаты после
// отмены не выполняются.
func (r *Reconciler) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		r.session.stop()
	}
}

// Snapshot возвращает состояние последней сессии. Второе значение равно
// false, если сессий еще не было.
func (r *Reconciler) Snapshot(now time.Time) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return Snapshot{}, false
	}

	return Snapshot{
		OrderID:    r.session.orderID,
		Phase:      r.session.state.Phase,
		LastStatus: r.session.state.LastStatus,
		ExpiresAt:  r.session.expiresAt,
		Expired:    Expired(entity.Order{ExpiresAt: r.session.expiresAt}, now),
	}, true
}

func (r *Reconciler) poll(ctx context.Context, s *session) {
	defer close(s.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status, _, err := r.reader.GetOrderStatus(ctx, s.orderID)
			if err != nil {
				log.Printf("ошибка получения статуса заказа %s: %v", s.orderID, err)

				continue
			}

			if r.apply(ctx, s, status) {
				return
			}
		}
	}
}

// stop синхронно переводит сессию в PhaseCanceled и отменяет таймер опроса.
// Вызывается только под r.mu.
func (s *session) stop() {
	s.cancel()
	if s.state.Phase == PhasePolling {
		s.state.Phase = PhaseCanceled
	}
}

func (r *Reconciler) apply(ctx context.Context, s *session, status entity.OrderStatus) bool {
	r.mu.Lock()
	next, outcome := Advance(s.state, status)
	s.state = next
	r.mu.Unlock()

	switch outcome {
	case OutcomeSuccess:
		r.succeed(ctx, s)
	case OutcomeReview:
		r.presenter.Notify("warning", "оплата заказа "+s.orderID+" проходит ручную проверку, это может занять время")
	case OutcomeNone:
		return false
	}

	return true
}

// succeed выполняет конвейер успешной оплаты. Шаги идут строго по порядку,
// ошибка позднего шага не откатывает и не повторяет ранние: опрос к этому
// моменту уже остановлен, терминальное состояние зафиксировано.
func (r *Reconciler) succeed(ctx context.Context, s *session) {
	r.presenter.Notify("success", "заказ "+s.orderID+" оплачен")
	r.presenter.Celebrate()
	if err := r.identity.Resync(ctx); err != nil {
		log.Printf("ошибка обновления профиля после оплаты заказа %s: %v", s.orderID, err)
	}
	if err := r.summary.Reload(ctx); err != nil {
		log.Printf("ошибка обновления сводки после оплаты заказа %s: %v", s.orderID, err)
	}
	r.presenter.CloseCheckout()
}
