package download

import (
	"context"
	"errors"

	"github.com/handiism/lux-downloader/internal/logging"
	"github.com/handiism/lux-downloader/internal/lux"
	"github.com/handiism/lux-downloader/internal/model"
	"github.com/handiism/lux-downloader/internal/runner"
	"go.uber.org/zap"
)

// Fetcher downloads one stream and blocks until done.
//
// The error is non-nil only if the download could not be started; a failed
// download is reported through a non-zero Result.ExitCode.
type Fetcher interface {
	Fetch(ctx context.Context, req lux.FetchRequest) (*runner.Result, error)
}

// Driver downloads selected jobs one at a time, in list order, and reports
// each step on a Channel.
type Driver struct {
	fetcher Fetcher
	threads string
	out     *Channel
}

// NewDriver creates a Driver passing threads to every fetch.
func NewDriver(fetcher Fetcher, threads string, out *Channel) *Driver {
	return &Driver{
		fetcher: fetcher,
		threads: threads,
		out:     out,
	}
}

// Run downloads jobs extracted from source and closes the output channel
// when done.
//
// Every job produces a start message and an outcome message; after the last
// job a Complete message is sent. Failed jobs are reported and skipped,
// never retried. Run only returns an error if ctx is cancelled.
func (d *Driver) Run(ctx context.Context, source string, jobs []model.SelectedJob) error {
	defer d.out.Close()

	total := len(jobs)
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := model.Selector(i)
		jobCtx := logging.NewContext(ctx, zap.Int("item", n), zap.String("title", job.Title), zap.String("stream_id", job.Stream.ID))

		if err := d.send(jobCtx, Progress(LevelInfo, "Downloading %d of %d: %q", n, total, job.Title)); err != nil {
			return err
		}

		res, err := d.fetcher.Fetch(jobCtx, lux.FetchRequest{
			StreamID: job.Stream.ID,
			Threads:  d.threads,
			Item:     n,
			Source:   source,
		})

		var msg Message
		switch {
		case err != nil:
			msg = Progress(LevelError, "Failed to start download for video %d: %q: %v", n, job.Title, err)
		case !res.Success():
			msg = Progress(LevelError, "Download failed for video %d: %q: %s", n, job.Title, res.Diagnostic())
		default:
			msg = Progress(LevelSuccess, "Download completed for video %d: %q", n, job.Title)
		}

		if err := d.send(jobCtx, msg); err != nil {
			return err
		}
	}

	return d.send(ctx, Complete())
}

// send delivers msg. If the consumer has gone away the message is written
// to the log instead and the driver carries on with the remaining jobs.
func (d *Driver) send(ctx context.Context, msg Message) error {
	err := d.out.Send(ctx, msg)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrChannelClosed) {
		logging.FromContext(ctx).Error("Status message not delivered",
			zap.Error(err),
			zap.Bool("complete", msg.IsComplete()),
			zap.String("message", msg.Text),
		)
		return nil
	}
	return err
}
