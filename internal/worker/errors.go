package worker

import "errors"

var (
	// ErrForwardQueueFull возвращается, когда очередь пересылки переполнена
	ErrForwardQueueFull = errors.New("worker: forward queue is full")

	// ErrForwardQueueStopped возвращается, когда очередь пересылки остановлена
	ErrForwardQueueStopped = errors.New("worker: forward queue is stopped")

	// ErrInvalidForward возвращается для пересылки без цели или текста
	ErrInvalidForward = errors.New("worker: invalid forward message")
)
