package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Veraticus/sapra/internal/common"
	"github.com/Veraticus/sapra/internal/config"
	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/service"
	"golang.org/x/sync/errgroup"
)

// MainFeed names the main feed in progress updates.
const MainFeed = "main"

// Secondary is the outcome of loading one secondary feed. Only the slice for
// Dataset is set. On failure Err is set and the slice is empty.
type Secondary struct {
	Err     error
	Dataset model.Dataset
	Details []model.DetailItem
	Punch   []model.PunchItem
	Hold    []model.HoldPointItem
}

// Result is everything Load produced.
type Result struct {
	Dataset engine.Dataset
	Items   engine.Items
	// Failed lists the secondary feeds that could not be loaded.
	Failed []model.Dataset
}

// Loader fetches and decodes the four feeds.
type Loader struct {
	source   Source
	progress service.Progress
	logger   *slog.Logger
	feeds    config.Feeds
}

// Option configures a Loader.
type Option func(*Loader)

// WithProgress reports one Done per completed feed to p.
func WithProgress(p service.Progress) Option {
	return func(l *Loader) { l.progress = p }
}

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a loader reading feeds through source.
func NewLoader(source Source, feeds config.Feeds, opts ...Option) *Loader {
	l := &Loader{
		source:   source,
		feeds:    feeds,
		progress: service.NopProgress{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches all four feeds concurrently. A main-feed failure is returned
// as a user error wrapping common.ErrMainFeed. Secondary failures are logged,
// recorded in Result.Failed, and leave that dataset empty.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	l.progress.Start(1 + len(model.Datasets))
	defer l.progress.Finish()

	res := &Result{}
	failed := make(map[model.Dataset]bool)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ds, err := l.LoadMain(gctx)
		if err != nil {
			return err
		}
		res.Dataset = ds
		return nil
	})
	g.Go(func() error {
		l.LoadSecondary(gctx, func(s Secondary) {
			mu.Lock()
			defer mu.Unlock()
			if s.Err != nil {
				failed[s.Dataset] = true
				return
			}
			res.Items = s.Apply(res.Items)
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, ds := range model.Datasets {
		if failed[ds] {
			res.Failed = append(res.Failed, ds)
		}
	}
	return res, nil
}

// LoadMain fetches the main feed and builds the hierarchy from it.
func (l *Loader) LoadMain(ctx context.Context) (engine.Dataset, error) {
	rows, err := fetch(ctx, l, MainFeed, l.feeds.Main, ParseMain)
	if err != nil {
		return engine.Dataset{}, common.NewUserError("could not load the main progress feed",
			fmt.Errorf("%w: %w", common.ErrMainFeed, err))
	}

	ds := engine.NewDataset(rows)
	systems, subsystems := ds.Hierarchy.Len()
	l.logger.Info("loaded main feed", "rows", len(rows), "systems", systems, "subsystems", subsystems)
	return ds, nil
}

// LoadSecondary fetches the items, punch and hold feeds concurrently and calls
// apply once per feed as each completes. apply may be called from several
// goroutines at once.
func (l *Loader) LoadSecondary(ctx context.Context, apply func(Secondary)) {
	var wg sync.WaitGroup

	load := func(ds model.Dataset, run func() Secondary) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := run()
			s.Dataset = ds
			if s.Err != nil {
				l.logger.Warn("secondary feed unavailable, continuing without it",
					"feed", string(ds),
					"error", s.Err)
			}
			apply(s)
		}()
	}

	load(model.DatasetItems, func() Secondary {
		items, err := fetch(ctx, l, string(model.DatasetItems), l.feeds.Items, ParseItems)
		return Secondary{Details: items, Err: err}
	})
	load(model.DatasetPunch, func() Secondary {
		items, err := fetch(ctx, l, string(model.DatasetPunch), l.feeds.Punch, ParsePunch)
		return Secondary{Punch: items, Err: err}
	})
	load(model.DatasetHold, func() Secondary {
		items, err := fetch(ctx, l, string(model.DatasetHold), l.feeds.Hold, ParseHold)
		return Secondary{Hold: items, Err: err}
	})

	wg.Wait()
}

// Apply stores the secondary list into its slot of items. Other slots are untouched.
func (s Secondary) Apply(items engine.Items) engine.Items {
	switch s.Dataset {
	case model.DatasetItems:
		items.Details = s.Details
	case model.DatasetPunch:
		items.Punch = s.Punch
	case model.DatasetHold:
		items.Hold = s.Hold
	}
	return items
}

func fetch[T any](ctx context.Context, l *Loader, name, location string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	out, err := func() ([]T, error) {
		if location == "" {
			return nil, fmt.Errorf("%w: no location configured", common.ErrFeedUnavailable)
		}

		rc, err := l.source.Open(ctx, location)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()

		items, err := parse(rc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", location, err)
		}
		return items, nil
	}()

	l.progress.Done(name, err)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("fetched feed", "feed", name, "records", len(out))
	return out, nil
}
