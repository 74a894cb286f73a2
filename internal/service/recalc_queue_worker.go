package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"sellbridge/internal/domain"
	"sellbridge/internal/port"
)

// RecalcQueueConfig holds settings for the recalculation queue worker.
type RecalcQueueConfig struct {
	PollInterval time.Duration
	Concurrency  int
	BatchSize    int
}

// RecalcQueueWorker polls for queued price recalculations (enqueued when a
// product's sourcing cost changes) and reprices them.
type RecalcQueueWorker struct {
	queueRepo      port.RecalcQueueRepository
	pricingService PricingService
	cfg            RecalcQueueConfig
	wg             sync.WaitGroup
}

// NewRecalcQueueWorker creates a new RecalcQueueWorker.
func NewRecalcQueueWorker(queueRepo port.RecalcQueueRepository, pricingService PricingService, cfg RecalcQueueConfig) *RecalcQueueWorker {
	return &RecalcQueueWorker{
		queueRepo:      queueRepo,
		pricingService: pricingService,
		cfg:            cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight recalculations have finished.
func (w *RecalcQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("recalcQueueWorker: started (poll=%s, concurrency=%d, batch=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.BatchSize)

	for {
		select {
		case <-ctx.Done():
			log.Printf("recalcQueueWorker: shutting down, waiting for in-flight jobs...")
			w.wg.Wait()
			log.Printf("recalcQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			batch := w.cfg.BatchSize
			if available := w.cfg.Concurrency - len(sem); available < batch {
				batch = available
			}
			if batch <= 0 {
				continue
			}

			jobs, err := w.queueRepo.ClaimPending(ctx, batch)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("recalcQueueWorker: ClaimPending error: %v", err)
				continue
			}

			for i := range jobs {
				job := jobs[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Fresh context so in-flight jobs complete even during
					// shutdown.
					jobCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
					defer cancel()

					w.process(jobCtx, job)
				}()
			}
		}
	}
}

func (w *RecalcQueueWorker) process(ctx context.Context, job domain.RecalcJob) {
	var input domain.CalculationInput
	if err := json.Unmarshal(job.Input, &input); err != nil {
		log.Printf("recalcQueueWorker: job %s has malformed input: %v", job.ID, err)
		if err := w.queueRepo.MarkFailed(ctx, job.ID, "malformed input: "+err.Error()); err != nil {
			log.Printf("recalcQueueWorker: MarkFailed error: %v", err)
		}
		return
	}

	result, err := w.pricingService.Calculate(ctx, input, job.Category)
	if err != nil {
		log.Printf("recalcQueueWorker: job %s (%s) failed: %v", job.ID, job.ProductRef, err)
		if err := w.queueRepo.MarkFailed(ctx, job.ID, err.Error()); err != nil {
			log.Printf("recalcQueueWorker: MarkFailed error: %v", err)
		}
		return
	}

	log.Printf("recalcQueueWorker: job %s (%s) repriced at %.2f (%s)",
		job.ID, job.ProductRef, result.ListingPrice, result.Regime)
	if err := w.queueRepo.MarkDone(ctx, job.ID); err != nil {
		log.Printf("recalcQueueWorker: MarkDone error: %v", err)
	}
}
