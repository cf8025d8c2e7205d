package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// FeedProgress shows a progress bar while feeds load and reports failed feeds
// once loading finishes.
type FeedProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	failed []string
	mu     sync.Mutex
}

// NewFeedProgress creates a progress reporter writing to writer.
func NewFeedProgress(writer io.Writer) *FeedProgress {
	if writer == nil {
		writer = os.Stderr
	}
	return &FeedProgress{writer: writer}
}

// Start implements service.Progress.
func (p *FeedProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.failed = nil
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan][bold]Loading feeds...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionClearOnFinish(),
	)
}

// Done implements service.Progress.
func (p *FeedProgress) Done(feed string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.failed = append(p.failed, feed)
	}
	if p.bar == nil {
		return
	}
	p.bar.Describe(fmt.Sprintf("[cyan][bold]Loaded %s[reset]", feed))
	if err := p.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Finish implements service.Progress.
func (p *FeedProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		if err := p.bar.Finish(); err != nil {
			slog.Warn("Failed to finish progress bar", "error", err)
		}
	}
	for _, feed := range p.failed {
		if _, err := fmt.Fprintln(p.writer, FormatWarning(fmt.Sprintf("The %s feed could not be loaded", feed))); err != nil {
			slog.Warn("Failed to write feed warning", "error", err)
		}
	}
}

// Failed returns the feeds that reported an error since Start.
func (p *FeedProgress) Failed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.failed...)
}
