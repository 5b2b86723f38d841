package worker

import (
	"context"
	"time"

	"github.com/Abraxas-365/sift/pkg/logx"
	"github.com/Abraxas-365/sift/screening/profile"
	"github.com/Abraxas-365/sift/screening/profile/profilesrv"
)

// ScreeningWorker drains the task queue and runs the extraction pipeline on
// each queued document. Documents are independent, so the pool scales by
// worker count alone.
type ScreeningWorker struct {
	service *profilesrv.Service
	queue   profile.TaskQueue
	workers int
}

func NewScreeningWorker(service *profilesrv.Service, queue profile.TaskQueue, workers int) *ScreeningWorker {
	return &ScreeningWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

func (w *ScreeningWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d screening workers", w.workers)

	go w.moveDelayedTasks(ctx)

	for i := 0; i < w.workers; i++ {
		go w.processTasks(ctx, i)
	}
}

func (w *ScreeningWorker) processTasks(ctx context.Context, workerID int) {
	logx.Infof("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Worker %d stopping", workerID)
			return
		default:
			task, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				logx.Errorf("Worker %d dequeue error: %v", workerID, err)
				continue
			}

			// Timeout with no tasks available
			if task == nil {
				continue
			}

			logx.Infof("Worker %d processing task %s (%s)", workerID, task.ID, task.FileName)
			if err := w.service.ProcessTask(ctx, task); err != nil {
				logx.Errorf("Worker %d task %s failed: %v", workerID, task.ID, err)
			}
		}
	}
}

func (w *ScreeningWorker) moveDelayedTasks(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed tasks: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed tasks to ready queue", count)
			}
		}
	}
}
