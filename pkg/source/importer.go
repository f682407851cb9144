// Package source imports feedback from RSS/Atom feeds on a schedule.
package source

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"

	"github.com/umputun/feedboard/pkg/config"
	"github.com/umputun/feedboard/pkg/intake"
)

//go:generate moq -out mocks/submitter.go -pkg mocks -skip-ensure -fmt goimports . Submitter
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Submitter creates feedback items
type Submitter interface {
	Submit(ctx context.Context, sub intake.Submission) (intake.SubmitResult, error)
}

// Store reports already imported entries
type Store interface {
	ExistsBySource(ctx context.Context, source, sourceID string) (bool, error)
}

// Importer polls configured feeds and submits unseen entries as feedback
type Importer struct {
	parser    *Parser
	store     Store
	submitter Submitter
	feeds     []config.FeedSource
	schedule  string

	pollMu sync.Mutex // one poll at a time
	cron   *cron.Cron
}

// NewImporter makes an importer for the configured feeds
func NewImporter(parser *Parser, store Store, submitter Submitter, cfg config.SourcesConfig) *Importer {
	schedule := cfg.Schedule
	if schedule == "" {
		schedule = "@every 15m"
	}
	return &Importer{parser: parser, store: store, submitter: submitter, feeds: cfg.Feeds, schedule: schedule}
}

// Poll fetches every feed once and returns the number of imported entries.
// A failing feed is logged and skipped.
func (im *Importer) Poll(ctx context.Context) int {
	im.pollMu.Lock()
	defer im.pollMu.Unlock()

	total := 0
	for _, f := range im.feeds {
		if ctx.Err() != nil {
			break
		}
		n, err := im.pollFeed(ctx, f)
		if err != nil {
			lgr.Printf("[WARN] feed %s: %v", f.Name, err)
		}
		total += n
	}
	if total > 0 {
		lgr.Printf("[INFO] imported %d feedback items from %d feeds", total, len(im.feeds))
	}
	return total
}

func (im *Importer) pollFeed(ctx context.Context, f config.FeedSource) (int, error) {
	name := f.Name
	if name == "" {
		name = f.URL
	}

	entries, err := im.parser.Parse(ctx, f.URL)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, e := range entries {
		exists, err := im.store.ExistsBySource(ctx, name, e.GUID)
		if err != nil {
			return imported, fmt.Errorf("check entry %s: %w", e.GUID, err)
		}
		if exists {
			continue
		}

		res, err := im.submitter.Submit(ctx, intake.Submission{Source: name, SourceID: e.GUID, Title: e.Title, Content: e.Content})
		if errors.Is(err, intake.ErrContentRequired) {
			lgr.Printf("[DEBUG] feed %s entry %s has no content, skipped", name, e.GUID)
			continue
		}
		if err != nil {
			return imported, fmt.Errorf("submit entry %s: %w", e.GUID, err)
		}
		lgr.Printf("[DEBUG] feed %s entry %s imported as %s (%s)", name, e.GUID, res.ID, res.Status)
		imported++
	}
	return imported, nil
}

// Start schedules polling, the first poll runs on the first schedule tick
func (im *Importer) Start(ctx context.Context) error {
	if len(im.feeds) == 0 {
		lgr.Printf("[INFO] no feeds configured, importer is idle")
		return nil
	}

	logger := cron.PrintfLogger(cronLogger{})
	im.cron = cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
	if _, err := im.cron.AddFunc(im.schedule, func() { im.Poll(ctx) }); err != nil {
		return fmt.Errorf("schedule %q: %w", im.schedule, err)
	}
	im.cron.Start()
	lgr.Printf("[INFO] importer started for %d feeds, schedule %q", len(im.feeds), im.schedule)
	return nil
}

// Stop cancels the schedule and waits for a running poll
func (im *Importer) Stop() {
	if im.cron == nil {
		return
	}
	<-im.cron.Stop().Done()
	lgr.Printf("[INFO] importer stopped")
}

// cronLogger sends cron messages to lgr
type cronLogger struct{}

func (cronLogger) Printf(format string, args ...interface{}) {
	lgr.Printf("[DEBUG] cron: "+format, args...)
}
