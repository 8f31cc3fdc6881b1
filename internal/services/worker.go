package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartresume/resume-analyzer/internal/repositories"
)

// IndexWorker pushes completed analyses into the vector index in the
// background. It never touches the request pipeline: a failed indexing
// job is retried on the next poll.
type IndexWorker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(analysisID uuid.UUID)
}

type indexWorker struct {
	repo         repositories.AnalysisRepository
	index        VectorIndex
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

func NewIndexWorker(
	repo repositories.AnalysisRepository,
	index VectorIndex,
	concurrency int,
	pollInterval time.Duration,
) IndexWorker {
	return &indexWorker{
		repo:         repo,
		index:        index,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
	}
}

// Start implements IndexWorker.
func (w *indexWorker) Start(ctx context.Context) {
	log.Printf("🚀 Starting index worker with %d goroutines", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollUnindexed(ctx)
}

// Stop implements IndexWorker.
func (w *indexWorker) Stop() {
	log.Println("🛑 Stopping index worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Index worker stopped")
}

// EnqueueJob implements IndexWorker.
func (w *indexWorker) EnqueueJob(analysisID uuid.UUID) {
	select {
	case w.jobQueue <- analysisID:
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue analysis %s", analysisID)
	default:
		// Queue full; the poller will pick it up later.
	}
}

func (w *indexWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case analysisID := <-w.jobQueue:
			if err := w.indexOne(ctx, analysisID); err != nil {
				log.Printf("❌ Worker #%d failed to index analysis %s: %v", workerID, analysisID, err)
			}
		}
	}
}

func (w *indexWorker) indexOne(ctx context.Context, analysisID uuid.UUID) error {
	analysis, err := w.repo.FindByID(analysisID)
	if err != nil {
		return err
	}
	if analysis.Indexed {
		return nil
	}

	if err := w.index.IndexAnalysis(ctx, analysis); err != nil {
		return err
	}

	return w.repo.MarkIndexed(analysisID)
}

func (w *indexWorker) pollUnindexed(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.repo.FindUnindexed(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch unindexed analyses: %v", err)
				continue
			}

			for _, analysis := range pending {
				w.EnqueueJob(analysis.ID)
			}
		}
	}
}
