// Package session holds the loaded diary and is the only place edits are applied.
package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/diary"
	apperrors "github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/utils"
)

// Remote is the subset of the intervals.icu client the session needs.
type Remote interface {
	ListWellness(ctx context.Context, oldest, newest string) ([]models.WellnessEntry, error)
	ListActivities(ctx context.Context, oldest, newest string) ([]models.Activity, error)
	ListEvents(ctx context.Context, oldest, newest string) ([]models.Event, error)
	UpdateWellness(ctx context.Context, entry models.WellnessEntry) error
	UpdateActivity(ctx context.Context, id models.ActivityID, patch models.Activity) error
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)
	UpdateEvent(ctx context.Context, event models.Event) (models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// Options configures a Session. Zero values fall back to defaults.
type Options struct {
	WindowDays int
	Location   *time.Location
	Categories []constants.EventCategory
	Now        func() time.Time
}

// Session owns the index for one window. Reads return copies and are safe
// for concurrent use with loads and saves.
type Session struct {
	remote Remote
	opts   Options

	mu       sync.RWMutex
	index    *diary.Index
	merger   *diary.Merger
	window   diary.Window
	days     []diary.DayView
	bars     []diary.EventBar
	loaded   bool
	revision uint64

	loads singleflight.Group
}

// New creates an empty session. Call Load before reading.
func New(remote Remote, opts Options) *Session {
	if opts.WindowDays <= 0 {
		opts.WindowDays = constants.DefaultWindowDays
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Categories == nil {
		opts.Categories = constants.DefaultEventCategories
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Session{remote: remote, opts: opts}
	s.replaceIndex(diary.NewIndex())
	s.window = diary.NewWindow(opts.WindowDays, s.today())
	s.rebuildLocked()
	return s
}

// Load fetches the window ending today.
func (s *Session) Load(ctx context.Context) error {
	return s.LoadAt(ctx, s.today())
}

// LoadAt fetches the window ending at anchor's local date. Overlapping loads of
// the same window share one fetch, which outlives the cancellation of any single
// caller; each caller stops waiting when its own ctx is done. On wellness or
// activity failure the previously loaded data is kept; an events failure
// degrades to no events.
func (s *Session) LoadAt(ctx context.Context, anchor time.Time) error {
	window := diary.NewWindow(s.opts.WindowDays, anchor.In(s.opts.Location))
	key := window.Oldest() + ".." + window.Newest()

	shared := context.WithoutCancel(ctx)
	ch := s.loads.DoChan(key, func() (interface{}, error) {
		return nil, s.load(shared, window)
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Shared {
			logger.Debug("Joined in-flight load", "window", key)
		}
		return res.Err
	}
}

func (s *Session) load(ctx context.Context, window diary.Window) error {
	log := logger.With("load_id", uuid.NewString())
	oldest, newest := window.Oldest(), window.Newest()
	start := time.Now()
	log.Debug("Loading diary", "oldest", oldest, "newest", newest)

	var (
		wellness   []models.WellnessEntry
		activities []models.Activity
		events     []models.Event
		eventsErr  error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		wellness, err = s.remote.ListWellness(gctx, oldest, newest)
		return err
	})
	g.Go(func() error {
		var err error
		activities, err = s.remote.ListActivities(gctx, oldest, newest)
		return err
	})
	g.Go(func() error {
		events, eventsErr = s.remote.ListEvents(gctx, oldest, newest)
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("Failed to load diary", "error", err)
		return err
	}
	if eventsErr != nil {
		log.Warn("Failed to load events, continuing without them", "error", eventsErr)
		events = nil
	}

	ix := diary.NewIndex()
	ix.IndexWellness(wellness)
	ix.IndexActivities(activities)
	ix.IndexEvents(events)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = window
	s.replaceIndex(ix)
	s.loaded = true
	s.rebuildLocked()

	log.Info("Loaded diary",
		"wellness", len(wellness),
		"activities", len(activities),
		"events", len(events),
		"duration", time.Since(start),
	)
	return nil
}

// SaveWellness writes a partial wellness entry and merges it on success.
func (s *Session) SaveWellness(ctx context.Context, entry models.WellnessEntry) error {
	entry = diary.SanitizeWellness(entry)
	if !utils.ValidateDateKey(entry.ID) {
		return apperrors.Validationf("wellness date %q must be YYYY-MM-DD", entry.ID)
	}
	if isEmptyWellness(entry) {
		return apperrors.Validationf("nothing to update for %s", entry.ID)
	}

	if err := s.remote.UpdateWellness(ctx, entry); err != nil {
		logger.Error("Failed to save wellness", "date", entry.ID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.merger.ApplyWellness(entry)
	return nil
}

// SaveActivity writes the editable fields of an activity and merges them on success.
func (s *Session) SaveActivity(ctx context.Context, id models.ActivityID, patch models.Activity) error {
	patch = diary.SanitizeActivity(patch)
	if id == "" {
		return apperrors.Validationf("activity id is required")
	}
	if isEmptyActivity(patch) {
		return apperrors.Validationf("nothing to update for activity %s", id)
	}

	s.mu.RLock()
	existing, known := s.index.Activity(id)
	s.mu.RUnlock()
	if known && existing.IsReadOnly() {
		return apperrors.Validationf("activity %s is synced from %s and cannot be edited", id, strings.ToLower(existing.Source))
	}

	if err := s.remote.UpdateActivity(ctx, id, patch); err != nil {
		logger.Error("Failed to save activity", "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.merger.ApplyActivity(id, patch) {
		logger.Debug("Saved activity is outside the loaded window", "id", id)
	}
	return nil
}

// SaveEvent creates (ID 0) or replaces an event and stores the server's canonical copy.
func (s *Session) SaveEvent(ctx context.Context, event models.Event) (models.Event, error) {
	if err := validateEvent(event); err != nil {
		return models.Event{}, err
	}

	var (
		canonical models.Event
		err       error
	)
	if event.ID == 0 {
		canonical, err = s.remote.CreateEvent(ctx, event)
	} else {
		canonical, err = s.remote.UpdateEvent(ctx, event)
	}
	if err != nil {
		logger.Error("Failed to save event", "id", event.ID, "error", err)
		return models.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.merger.ApplyEvent(canonical)
	return canonical, nil
}

// DeleteEvent removes an event remotely, then locally.
func (s *Session) DeleteEvent(ctx context.Context, id int64) error {
	if id == 0 {
		return apperrors.Validationf("event id is required")
	}
	if err := s.remote.DeleteEvent(ctx, id); err != nil {
		logger.Error("Failed to delete event", "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.merger.ApplyEventDelete(id)
	return nil
}

// Days returns the day views in window order.
func (s *Session) Days() []diary.DayView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.days)
}

// Bars returns the event bars for the window.
func (s *Session) Bars() []diary.EventBar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bars)
}

// Window returns the current window.
func (s *Session) Window() diary.Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.window)
}

// Wellness returns the entry for a date key, empty if none.
func (s *Session) Wellness(key string) models.WellnessEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.LookupWellness(key)
}

// Activity returns a loaded activity by id.
func (s *Session) Activity(id models.ActivityID) (models.Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Activity(id)
}

// Activities returns every loaded activity, including read-only ones.
func (s *Session) Activities() []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Activities()
}

// Events returns every loaded event, unfiltered.
func (s *Session) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Events()
}

// Event returns a loaded event by id.
func (s *Session) Event(id int64) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Event(id)
}

// Snapshot returns a deep copy of the index.
func (s *Session) Snapshot() *diary.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Clone()
}

// Loaded reports whether at least one load succeeded.
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Revision increases every time the views are rebuilt.
func (s *Session) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Categories returns the event categories shown as bars.
func (s *Session) Categories() []constants.EventCategory {
	return slices.Clone(s.opts.Categories)
}

// Today returns the current date key in the session's timezone.
func (s *Session) Today() string {
	return utils.DateKey(s.today())
}

func (s *Session) today() time.Time {
	return s.opts.Now().In(s.opts.Location)
}

// replaceIndex must be called with mu held (or before the session is shared).
func (s *Session) replaceIndex(ix *diary.Index) {
	s.index = ix
	s.merger = diary.NewMerger(ix, s.rebuildLocked)
}

func (s *Session) rebuildLocked() {
	s.days = diary.BuildDays(s.window, s.index)
	s.bars = diary.OverlappingEvents(s.window, s.index.Events(), s.opts.Categories)
	s.revision++
}

func validateEvent(e models.Event) error {
	if strings.TrimSpace(string(e.Category)) == "" {
		return apperrors.Validationf("event category is required")
	}
	start, err := utils.LocalDateKey(e.StartDateLocal)
	if err != nil {
		return apperrors.Validationf("event start: %v", err)
	}
	if e.EndDateLocal != "" {
		end, err := utils.LocalDateKey(e.EndDateLocal)
		if err != nil {
			return apperrors.Validationf("event end: %v", err)
		}
		if end < start {
			return apperrors.Validationf("event ends (%s) before it starts (%s)", end, start)
		}
	}
	return nil
}

func isEmptyWellness(w models.WellnessEntry) bool {
	for _, s := range w.Scores() {
		if *s.Value != nil {
			return false
		}
	}
	return w.Comments == nil
}

func isEmptyActivity(a models.Activity) bool {
	return a.Type == nil && a.Name == nil && a.Description == nil && a.ICURPE == nil && a.Feel == nil
}

// Describe is a one-line summary used in logs and CLI status output.
func (s *Session) Describe() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return "not loaded"
	}
	return fmt.Sprintf("%s..%s, %d activities, %d events", s.window.Oldest(), s.window.Newest(), len(s.index.Activities()), len(s.index.Events()))
}
