package worker

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
	"github.com/m04kA/SMC-TelegramMonitor/pkg/metrics"
)

// ForwardQueue асинхронная доставка пересылок.
// Forward не блокирует диспетчер: сообщение кладётся в буфер, отправка идёт в отдельной goroutine.
type ForwardQueue struct {
	sender  MessageSender
	logger  Logger
	metrics Metrics
	timeout time.Duration // Таймаут одной отправки
	queue   chan *domain.ForwardMessage
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewForwardQueue создает очередь пересылки заданного размера
func NewForwardQueue(sender MessageSender, logger Logger, m Metrics, size int, timeout time.Duration) *ForwardQueue {
	ctx, cancel := context.WithCancel(context.Background())

	return &ForwardQueue{
		sender:  sender,
		logger:  logger,
		metrics: m,
		timeout: timeout,
		queue:   make(chan *domain.ForwardMessage, size),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start запускает обработчик в отдельной goroutine
func (q *ForwardQueue) Start() {
	q.logger.Info("Starting forward queue (size: %d, timeout: %s)", cap(q.queue), q.timeout)

	q.wg.Add(1)
	go q.run()
}

// Stop останавливает обработчик; сообщения, оставшиеся в буфере, отбрасываются
func (q *ForwardQueue) Stop() {
	q.logger.Info("Stopping forward queue")
	q.cancel()
	q.wg.Wait()

	if dropped := len(q.queue); dropped > 0 {
		q.logger.Warn("Forward queue stopped with %d undelivered message(s)", dropped)
	}
	q.logger.Info("Forward queue stopped")
}

// Forward ставит сообщение в очередь без ожидания
func (q *ForwardQueue) Forward(_ context.Context, msg *domain.ForwardMessage) error {
	if !msg.IsValid() {
		return ErrInvalidForward
	}

	if q.ctx.Err() != nil {
		q.metrics.IncForward(metrics.ForwardResultRejected)
		return ErrForwardQueueStopped
	}

	select {
	case q.queue <- msg:
		return nil
	default:
		q.metrics.IncForward(metrics.ForwardResultRejected)
		return ErrForwardQueueFull
	}
}

// run основной цикл доставки
func (q *ForwardQueue) run() {
	defer q.wg.Done()

	for {
		select {
		case msg := <-q.queue:
			q.deliver(msg)
		case <-q.ctx.Done():
			return
		}
	}
}

// deliver отправляет одно сообщение; ошибка логируется, повторов нет
func (q *ForwardQueue) deliver(msg *domain.ForwardMessage) {
	ctx, cancel := context.WithTimeout(q.ctx, q.timeout)
	defer cancel()

	if err := q.sender.SendMessage(ctx, msg); err != nil {
		q.logger.Error("Failed to forward message from %s to chat %d: %v", msg.SourceTitle, msg.TargetChatID, err)
		q.metrics.IncForward(metrics.ForwardResultFailed)
		return
	}

	q.metrics.IncForward(metrics.ForwardResultSent)
	q.logger.Debug("Forwarded message from %s to chat %d", msg.SourceTitle, msg.TargetChatID)
}
