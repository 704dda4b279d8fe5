package lux

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/handiism/lux-downloader/internal/logging"
	"github.com/handiism/lux-downloader/internal/lux/dto"
	"github.com/handiism/lux-downloader/internal/model"
	"github.com/handiism/lux-downloader/internal/runner"
	"go.uber.org/zap"
)

// DefaultTool is the executable name looked up in PATH.
const DefaultTool = "lux"

// ParseError reports that `lux -j` printed something that is not the
// expected JSON array. Stdout holds the raw output for diagnosis.
type ParseError struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse lux output: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FetchRequest holds the arguments of one download invocation.
type FetchRequest struct {
	// StreamID is the id of the stream to download.
	StreamID string

	// Threads is passed through to lux unvalidated.
	Threads string

	// Item is the 1-based item selector.
	Item int

	// Source is the URL or code the items were extracted from.
	Source string
}

// Args returns the lux command line for the request.
func (r FetchRequest) Args() []string {
	return []string{
		"-f", r.StreamID,
		"-n", r.Threads,
		"-items", strconv.Itoa(r.Item),
		"-p", r.Source,
	}
}

// ExtractArgs returns the lux command line that prints the info of source
// as JSON.
func ExtractArgs(source string) []string {
	return []string{"-j", source}
}

// Client runs lux through a runner.Runner.
//
// Example usage:
//
//	client := lux.NewClient("lux", runner.NewExec(""))
//
//	items, err := client.Extract(ctx, "BV1xx411c7mD")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.Fetch(ctx, lux.FetchRequest{
//	    StreamID: items[0].Streams[0].ID,
//	    Threads:  "4",
//	    Item:     1,
//	    Source:   "BV1xx411c7mD",
//	})
type Client struct {
	tool   string
	runner runner.Runner
}

// NewClient creates a Client running the given lux executable.
// An empty tool means DefaultTool.
func NewClient(tool string, r runner.Runner) *Client {
	if tool == "" {
		tool = DefaultTool
	}
	return &Client{
		tool:   tool,
		runner: r,
	}
}

// Extract resolves source into its source items.
//
// lux's exit status is not consulted: whatever it printed on stdout has to
// parse, otherwise a *ParseError is returned. Every element of the output
// becomes an item, in order, because lux addresses items by position.
// Elements carrying an extraction error or no streams are kept and logged.
func (c *Client) Extract(ctx context.Context, source string) ([]*model.SourceItem, error) {
	log := logging.FromContext(ctx)

	res, err := c.runner.Run(ctx, c.tool, ExtractArgs(source)...)
	if err != nil {
		return nil, fmt.Errorf("failed to run extractor: %w", err)
	}
	if !res.Success() {
		log.Warn("Extractor exited with non-zero status",
			zap.Int("exit_code", res.ExitCode),
			zap.String("stderr", res.Diagnostic()),
		)
	}

	items, err := ParseInfo(res.Stdout)
	if err != nil {
		return nil, &ParseError{Stdout: res.Stdout, Stderr: res.Stderr, Err: err}
	}

	for _, item := range items {
		switch {
		case item.Err != "":
			log.Warn("Extractor reported an error for item", zap.Int("index", item.Index), zap.String("title", item.Title), zap.String("err", item.Err))
		case !item.HasStreams():
			log.Warn("Item has no streams", zap.Int("index", item.Index), zap.String("title", item.Title))
		}
	}

	log.Info("Extracted source items", zap.String("source", source), zap.Int("count", len(items)))
	return items, nil
}

// Fetch downloads one stream. It blocks until lux exits.
//
// A non-zero exit is reported through the result; the error is non-nil only
// if lux could not be started.
func (c *Client) Fetch(ctx context.Context, req FetchRequest) (*runner.Result, error) {
	return c.runner.Run(ctx, c.tool, req.Args()...)
}

// ParseInfo decodes the output of `lux -j`.
//
// The result has one item per array element, in order, with Index set to
// the element's position.
func ParseInfo(data []byte) ([]*model.SourceItem, error) {
	var infos []dto.JSONInfo
	if err := json.Unmarshal(data, &infos); err != nil {
		return nil, err
	}

	items := make([]*model.SourceItem, len(infos))
	for i := range infos {
		items[i] = infos[i].ToSourceItem(i)
	}
	return items, nil
}
