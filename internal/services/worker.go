package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/config"
	"alfredoptarigan/talent-ats/internal/logger"
	"alfredoptarigan/talent-ats/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueRun(ref RunRef) bool
}

type worker struct {
	runRepo      repositories.AnalysisRunRepository
	processor    RunProcessor
	queue        chan RunRef
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
	logger       *zap.Logger

	mu      sync.Mutex
	pending map[RunRef]struct{}
}

func NewWorker(
	runRepo repositories.AnalysisRunRepository,
	processor RunProcessor,
	cfg config.WorkerConfig,
	log *zap.Logger,
) Worker {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}

	return &worker{
		runRepo:      runRepo,
		processor:    processor,
		queue:        make(chan RunRef, queueSize),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
		logger:       logger.OrNop(log),
		pending:      make(map[RunRef]struct{}),
	}
}

func (w *worker) Start(ctx context.Context) {
	w.logger.Info("🚀 starting worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processRuns(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollQueuedRuns(ctx)
}

func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("🛑 stopping worker")
		close(w.stopChan)
		w.wg.Wait()
		w.logger.Info("✅ worker stopped")
	})
}

// EnqueueRun never blocks. It reports false when the run is already waiting,
// the queue is full or the worker has stopped; such runs stay queued in the
// database for the poller.
func (w *worker) EnqueueRun(ref RunRef) bool {
	select {
	case <-w.stopChan:
		w.logger.Warn("worker stopped, cannot enqueue run", zap.String("run_id", ref.ID.String()))
		return false
	default:
	}

	w.mu.Lock()
	if _, ok := w.pending[ref]; ok {
		w.mu.Unlock()
		return false
	}
	w.pending[ref] = struct{}{}
	w.mu.Unlock()

	select {
	case w.queue <- ref:
		w.logger.Debug("📥 run enqueued", zap.String("run_id", ref.ID.String()))
		return true
	case <-w.stopChan:
		w.release(ref)
		w.logger.Warn("worker stopped, cannot enqueue run", zap.String("run_id", ref.ID.String()))
		return false
	default:
		w.release(ref)
		w.logger.Debug("queue full, run left for the poller", zap.String("run_id", ref.ID.String()))
		return false
	}
}

func (w *worker) release(ref RunRef) {
	w.mu.Lock()
	delete(w.pending, ref)
	w.mu.Unlock()
}

func (w *worker) processRuns(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log := w.logger.With(zap.Int("worker", workerID))

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case ref := <-w.queue:
			log.Debug("👷 processing run", zap.String("run_id", ref.ID.String()))
			if err := w.processor.Process(ctx, ref); err != nil {
				log.Error("❌ analysis run failed", zap.String("run_id", ref.ID.String()), zap.Error(err))
			}
			w.release(ref)
		}
	}
}

// pollQueuedRuns picks up runs left queued by a restart.
func (w *worker) pollQueuedRuns(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			runs, err := w.runRepo.FindQueued(ctx, cap(w.queue))
			if err != nil {
				w.logger.Warn("failed to fetch queued runs", zap.Error(err))
				continue
			}

			enqueued := 0
			for _, run := range runs {
				if w.EnqueueRun(RunRef{ID: run.ID, CompanyID: run.CompanyID}) {
					enqueued++
				}
			}
			if enqueued > 0 {
				w.logger.Info("📋 re-enqueued queued runs", zap.Int("count", enqueued))
			}
		}
	}
}
