package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"media-stats/internal/logging"
	"media-stats/internal/metrics"
	"media-stats/internal/stats"
)

// DefaultAnalysisLimit caps how many catalog rows a background job analyzes
// when the caller does not pick a limit.
const DefaultAnalysisLimit = 500

// queueSize bounds how many accepted jobs can wait for a worker.
const queueSize = 256

type job struct {
	folder        string
	recursive     bool
	analysisLimit int
}

// Scheduler runs folder statistics computations on a fixed pool of worker
// goroutines. Each folder has at most one job pending or running at a time;
// duplicate submissions are rejected, as are submissions for folders whose
// cached record is still fresh.
type Scheduler struct {
	stats        *stats.Service
	workers      int
	defaultLimit int

	mu      sync.Mutex
	pending map[string]struct{}
	started bool
	stopped bool

	jobs chan job
	quit chan struct{}
}

// New creates a scheduler over the given statistics service. workerCount
// must be at least 1; analysisLimit is the row cap applied to submissions
// that do not pick one, 0 for DefaultAnalysisLimit.
func New(statsService *stats.Service, workerCount, analysisLimit int) *Scheduler {
	if workerCount < 1 {
		workerCount = 1
	}
	if analysisLimit <= 0 {
		analysisLimit = DefaultAnalysisLimit
	}
	return &Scheduler{
		stats:        statsService,
		workers:      workerCount,
		defaultLimit: analysisLimit,
		pending:      make(map[string]struct{}),
		jobs:         make(chan job, queueSize),
		quit:         make(chan struct{}),
	}
}

// Start launches the worker pool. Calling Start again on a running or
// stopped scheduler does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.stopped {
		return
	}
	s.started = true

	for i := 0; i < s.workers; i++ {
		go s.worker()
	}
	metrics.SchedulerWorkers.Set(float64(s.workers))
	logging.Info("stats scheduler started with %d workers", s.workers)
}

// Stop shuts the scheduler down. New submissions are rejected immediately;
// queued jobs are dropped and a job already running is left to finish on its
// own. The scheduler cannot be restarted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	close(s.quit)
	metrics.SchedulerWorkers.Set(0)
	logging.Info("stats scheduler stopped, %d jobs dropped", len(s.pending))
}

// Submit queues a background computation for folder. It returns false when
// the scheduler is stopped, a job for the folder is already pending, or the
// folder's cached record is still fresh and force is not set. The pending
// check and insertion happen atomically, so concurrent submissions for the
// same folder admit exactly one job.
func (s *Scheduler) Submit(ctx context.Context, folder string, recursive bool, analysisLimit int, force bool) bool {
	folder = stats.NormalizePath(folder)
	if analysisLimit <= 0 {
		analysisLimit = s.defaultLimit
	}

	s.mu.Lock()
	if s.stopped || !s.started {
		s.mu.Unlock()
		metrics.JobsRejectedTotal.WithLabelValues("stopped").Inc()
		return false
	}
	if _, exists := s.pending[folder]; exists {
		s.mu.Unlock()
		metrics.JobsRejectedTotal.WithLabelValues("pending").Inc()
		return false
	}
	s.pending[folder] = struct{}{}
	s.mu.Unlock()

	if !force && !s.stats.IsExpired(ctx, folder) {
		s.remove(folder)
		metrics.JobsRejectedTotal.WithLabelValues("fresh_cache").Inc()
		return false
	}

	select {
	case s.jobs <- job{folder: folder, recursive: recursive, analysisLimit: analysisLimit}:
		metrics.JobsSubmittedTotal.Inc()
		metrics.JobsPending.Set(float64(s.PendingCount()))
		logging.Debug("queued stats job for %s", folder)
		return true
	case <-s.quit:
		s.remove(folder)
		metrics.JobsRejectedTotal.WithLabelValues("stopped").Inc()
		return false
	}
}

// BatchSubmit queues jobs for several folders and returns how many were
// accepted. Rejections are counted per folder exactly as in Submit.
func (s *Scheduler) BatchSubmit(ctx context.Context, folders []string, recursive bool, analysisLimit int, force bool) int {
	accepted := 0
	for _, folder := range folders {
		if s.Submit(ctx, folder, recursive, analysisLimit, force) {
			accepted++
		}
	}
	return accepted
}

// IsPending reports whether a job for folder is queued or running.
func (s *Scheduler) IsPending(folder string) bool {
	folder = stats.NormalizePath(folder)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.pending[folder]
	return exists
}

// PendingPaths returns the folders with a queued or running job, sorted.
func (s *Scheduler) PendingPaths() []string {
	s.mu.Lock()
	paths := make([]string, 0, len(s.pending))
	for folder := range s.pending {
		paths = append(paths, folder)
	}
	s.mu.Unlock()

	sort.Strings(paths)
	return paths
}

// PendingCount returns the number of queued or running jobs.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Scheduler) remove(folder string) {
	s.mu.Lock()
	delete(s.pending, folder)
	s.mu.Unlock()
	metrics.JobsPending.Set(float64(s.PendingCount()))
}

func (s *Scheduler) worker() {
	for {
		select {
		case <-s.quit:
			return
		case j := <-s.jobs:
			s.run(j)
		}
	}
}

func (s *Scheduler) run(j job) {
	defer s.remove(j.folder)

	start := time.Now()
	_, err := s.stats.ComputeAndStore(context.Background(), j.folder, j.recursive, j.analysisLimit)
	metrics.JobDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.JobsCompletedTotal.WithLabelValues("error").Inc()
		logging.Error("stats job for %s failed: %v", j.folder, err)
		return
	}
	metrics.JobsCompletedTotal.WithLabelValues("success").Inc()
	logging.Debug("stats job for %s finished in %v", j.folder, time.Since(start))
}
