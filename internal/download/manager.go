package download

import (
	"context"
	"sync/atomic"

	"github.com/handiism/lux-downloader/internal/config"
	"github.com/handiism/lux-downloader/internal/logging"
	"github.com/handiism/lux-downloader/internal/lux"
	"github.com/handiism/lux-downloader/internal/model"
	"github.com/handiism/lux-downloader/internal/runner"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Manager wires a Driver and a Sink together for one download run.
type Manager struct {
	settings *config.Settings
	fetcher  Fetcher
	console  Console

	totalJobs     int32
	completedJobs int32
	failedJobs    int32
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, fetcher Fetcher, console Console) *Manager {
	return &Manager{
		settings: settings,
		fetcher:  fetcher,
		console:  console,
	}
}

// StartDownloads runs the plan: the Driver and the Sink run concurrently,
// connected by a Channel, and StartDownloads returns once both finished.
//
// Failed jobs do not make StartDownloads fail; only cancellation of ctx
// does.
func (m *Manager) StartDownloads(ctx context.Context, plan *model.Plan) error {
	atomic.StoreInt32(&m.totalJobs, int32(len(plan.Jobs)))
	atomic.StoreInt32(&m.completedJobs, 0)
	atomic.StoreInt32(&m.failedJobs, 0)

	ch := NewChannel(m.settings.QueueSize)

	log := logging.FromContext(ctx)
	log.Info("Starting downloads",
		zap.String("source", plan.Source),
		zap.String("threads", plan.Threads),
		zap.Int("jobs", len(plan.Jobs)),
		zap.Int("queue_size", ch.Cap()),
	)
	driver := NewDriver(&countingFetcher{Fetcher: m.fetcher, m: m}, plan.Threads, ch)
	sink := NewSink(ch, m.console)

	var g errgroup.Group
	g.Go(func() error {
		return driver.Run(ctx, plan.Source, plan.Jobs)
	})
	g.Go(func() error {
		return sink.Run(ctx)
	})

	err := g.Wait()

	completed, failed, total := m.GetProgress()
	log.Info("Downloads finished", zap.Int32("completed", completed), zap.Int32("failed", failed), zap.Int32("total", total))
	return err
}

// GetProgress returns how many jobs completed, failed, and the job count of
// the current run.
func (m *Manager) GetProgress() (completed, failed, total int32) {
	return atomic.LoadInt32(&m.completedJobs), atomic.LoadInt32(&m.failedJobs), atomic.LoadInt32(&m.totalJobs)
}

// countingFetcher records job outcomes for GetProgress.
type countingFetcher struct {
	Fetcher
	m *Manager
}

func (f *countingFetcher) Fetch(ctx context.Context, req lux.FetchRequest) (*runner.Result, error) {
	res, err := f.Fetcher.Fetch(ctx, req)
	if err != nil || !res.Success() {
		atomic.AddInt32(&f.m.failedJobs, 1)
	} else {
		atomic.AddInt32(&f.m.completedJobs, 1)
	}
	return res, err
}
