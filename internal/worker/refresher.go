package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// DirectoryRefresher периодически перечитывает диалоги, пока идёт мониторинг
type DirectoryRefresher struct {
	fetcher   DialogFetcher
	logger    Logger
	interval  time.Duration
	timeout   time.Duration
	scheduler *gocron.Scheduler
	job       *gocron.Job
	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewDirectoryRefresher создает планировщик обновления справочника
func NewDirectoryRefresher(fetcher DialogFetcher, logger Logger, interval time.Duration) *DirectoryRefresher {
	ctx, cancel := context.WithCancel(context.Background())

	return &DirectoryRefresher{
		fetcher:   fetcher,
		logger:    logger,
		interval:  interval,
		timeout:   2 * time.Minute,
		scheduler: gocron.NewScheduler(time.UTC),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start запускает планировщик
func (r *DirectoryRefresher) Start() {
	r.logger.Info("Starting directory refresher (interval: %s)", r.interval)
	r.scheduler.StartAsync()
}

// Stop останавливает планировщик
func (r *DirectoryRefresher) Stop() {
	r.logger.Info("Stopping directory refresher")
	r.cancel()
	r.scheduler.Stop()
	r.logger.Info("Directory refresher stopped")
}

// Schedule добавляет периодическую задачу; первый запуск через один интервал.
// Повторный вызов ничего не меняет.
func (r *DirectoryRefresher) Schedule() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.job != nil {
		return nil
	}

	job, err := r.scheduler.Every(r.interval).WaitForSchedule().Do(r.refresh)
	if err != nil {
		return fmt.Errorf("failed to schedule directory refresh: %w", err)
	}

	r.job = job
	r.logger.Debug("Directory refresh scheduled every %s", r.interval)
	return nil
}

// Cancel снимает периодическую задачу, если она есть
func (r *DirectoryRefresher) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.job == nil {
		return
	}

	r.scheduler.RemoveByReference(r.job)
	r.job = nil
	r.logger.Debug("Directory refresh cancelled")
}

// refresh вызывается планировщиком gocron
func (r *DirectoryRefresher) refresh() {
	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	stats, err := r.fetcher.FetchDialogs(ctx)
	if err != nil {
		r.logger.Error("Failed to refresh dialogs: %v", err)
		return
	}

	r.logger.Debug("Dialogs refreshed (users: %d, chats: %d, channels: %d)", stats.Users, stats.Chats, stats.Channels)
}
