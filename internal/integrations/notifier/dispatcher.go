package notifier

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Sender синхронная отправка (Client)
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// DispatcherConfig параметры асинхронной отправки
type DispatcherConfig struct {
	QueueSize   int
	RatePerSec  float64
	Burst       int
	SendTimeout time.Duration
}

// Dispatcher отправляет уведомления в фоне (fire-and-forget)
// Ошибки доставки только логируются и никогда не возвращаются вызывающему.
type Dispatcher struct {
	sender  Sender
	limiter *rate.Limiter
	timeout time.Duration
	log     Logger

	queue     chan Notification
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewDispatcher создает диспетчер и запускает фоновую отправку
func NewDispatcher(sender Sender, cfg DispatcherConfig, log Logger) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 5 * time.Second
	}

	d := &Dispatcher{
		sender:  sender,
		limiter: rate.NewLimiter(limit, cfg.Burst),
		timeout: cfg.SendTimeout,
		log:     log,
		queue:   make(chan Notification, cfg.QueueSize),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// Notify ставит уведомление в очередь; при переполненной очереди уведомление отбрасывается
func (d *Dispatcher) Notify(n Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Notifier: dispatcher closed, dropped notification for recipient=%d", n.RecipientID)
		return
	}

	select {
	case d.queue <- n:
	default:
		d.log.Warn("Notifier: queue is full, dropped notification for recipient=%d", n.RecipientID)
	}
}

// Close перестаёт принимать уведомления и ждёт отправки уже поставленных в очередь
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for n := range d.queue {
		d.send(n)
	}
}

func (d *Dispatcher) send(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.limiter.Wait(ctx); err != nil {
		d.log.Warn("Notifier: rate limit wait failed for recipient=%d: %v", n.RecipientID, err)
		return
	}

	if err := d.sender.Send(ctx, n); err != nil {
		d.log.Error("Notifier: failed to send notification to recipient=%d: %v", n.RecipientID, err)
		return
	}

	d.log.Info("Notifier: sent %q to recipient=%d", n.Title, n.RecipientID)
}

// Noop уведомления отключены
type Noop struct{}

func (Noop) Notify(Notification) {}
