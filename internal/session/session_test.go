package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daylog/internal/constants"
	apperrors "github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/models"
)

type fakeRemote struct {
	mu sync.Mutex

	wellness   []models.WellnessEntry
	activities []models.Activity
	events     []models.Event

	wellnessErr error
	eventsErr   error
	writeErr    error

	// block, when set, holds ListWellness until closed.
	block   chan struct{}
	started chan struct{}

	wellnessCalls  atomic.Int32
	lastRange      [2]string
	wellnessWrites []models.WellnessEntry
	nextEventID    int64
}

func (f *fakeRemote) ListWellness(ctx context.Context, oldest, newest string) ([]models.WellnessEntry, error) {
	f.wellnessCalls.Add(1)
	f.mu.Lock()
	f.lastRange = [2]string{oldest, newest}
	block, started := f.block, f.started
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	return f.wellness, f.wellnessErr
}

func (f *fakeRemote) ListActivities(ctx context.Context, oldest, newest string) ([]models.Activity, error) {
	return f.activities, nil
}

func (f *fakeRemote) ListEvents(ctx context.Context, oldest, newest string) ([]models.Event, error) {
	return f.events, f.eventsErr
}

func (f *fakeRemote) UpdateWellness(ctx context.Context, entry models.WellnessEntry) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.wellnessWrites = append(f.wellnessWrites, entry)
	return nil
}

func (f *fakeRemote) UpdateActivity(ctx context.Context, id models.ActivityID, patch models.Activity) error {
	return f.writeErr
}

func (f *fakeRemote) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	if f.writeErr != nil {
		return models.Event{}, f.writeErr
	}
	f.nextEventID++
	event.ID = f.nextEventID
	if event.EndDateLocal == "" {
		event.EndDateLocal = event.StartDateLocal
	}
	return event, nil
}

func (f *fakeRemote) UpdateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	if f.writeErr != nil {
		return models.Event{}, f.writeErr
	}
	return event, nil
}

func (f *fakeRemote) DeleteEvent(ctx context.Context, id int64) error {
	return f.writeErr
}

func fixedNow() time.Time {
	return time.Date(2024, 1, 14, 21, 30, 0, 0, time.UTC)
}

func newSession(remote *fakeRemote) *Session {
	return New(remote, Options{WindowDays: 6, Location: time.UTC, Now: fixedNow})
}

func seededRemote() *fakeRemote {
	return &fakeRemote{
		wellness: []models.WellnessEntry{
			{ID: "2024-01-14", Mood: models.Int(2), Comments: models.String("fine")},
		},
		activities: []models.Activity{
			{ID: "a1", StartDateLocal: "2024-01-13T07:00:00", Type: models.String("Run"), Name: models.String("Easy")},
			{ID: "a2", StartDateLocal: "2024-01-13T09:00:00", Type: models.String("Ride"), Source: constants.SourceStrava},
		},
		events: []models.Event{
			{ID: 7, Category: constants.EventSick, Name: "cold", StartDateLocal: "2024-01-10T00:00:00", EndDateLocal: "2024-01-13T00:00:00"},
		},
	}
}

func TestNewDefaults(t *testing.T) {
	s := New(&fakeRemote{}, Options{Location: time.UTC, Now: fixedNow})

	assert.Len(t, s.Window(), constants.DefaultWindowDays)
	assert.Equal(t, constants.DefaultEventCategories, s.Categories())
	assert.False(t, s.Loaded())
	assert.Equal(t, "2024-01-14", s.Today())
	assert.Len(t, s.Days(), constants.DefaultWindowDays, "days render before the first load")
}

func TestLoadBuildsViews(t *testing.T) {
	remote := seededRemote()
	s := newSession(remote)

	require.NoError(t, s.Load(context.Background()))

	assert.True(t, s.Loaded())
	assert.Equal(t, [2]string{"2024-01-09", "2024-01-14"}, remote.lastRange)

	days := s.Days()
	require.Len(t, days, 6)
	assert.Equal(t, "2024-01-14", days[0].Date)
	assert.Equal(t, 2, *days[0].Wellness.Mood)
	require.Len(t, days[1].Activities, 1, "read-only activity is hidden")
	assert.Equal(t, models.ActivityID("a1"), days[1].Activities[0].Activity.ID)
	assert.Len(t, s.Activities(), 2)

	bars := s.Bars()
	require.Len(t, bars, 1)
	assert.Equal(t, "2024-01-10", bars[0].First)
	assert.Equal(t, "2024-01-12", bars[0].Last)
}

func TestLoadAtAnchorsWindow(t *testing.T) {
	remote := seededRemote()
	s := newSession(remote)

	anchor := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.LoadAt(context.Background(), anchor))

	assert.Equal(t, [2]string{"2023-12-29", "2024-01-03"}, remote.lastRange)
	assert.Equal(t, "2024-01-03", s.Window().Newest())
}

func TestLoadFailureKeepsPreviousData(t *testing.T) {
	remote := seededRemote()
	s := newSession(remote)
	require.NoError(t, s.Load(context.Background()))
	before := s.Snapshot()
	rev := s.Revision()

	remote.wellnessErr = &apperrors.TransportError{Op: "list wellness", StatusCode: 500}
	err := s.Load(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, rev, s.Revision())
}

func TestLoadPropagatesAuthError(t *testing.T) {
	remote := seededRemote()
	remote.wellnessErr = apperrors.Classify("list wellness", 401, "")
	s := newSession(remote)

	err := s.Load(context.Background())

	assert.True(t, apperrors.IsAuth(err))
	assert.False(t, s.Loaded())
}

func TestLoadDegradesEventsFailure(t *testing.T) {
	remote := seededRemote()
	remote.eventsErr = errors.New("events down")
	s := newSession(remote)

	require.NoError(t, s.Load(context.Background()))

	assert.Empty(t, s.Events())
	assert.Empty(t, s.Bars())
	assert.Len(t, s.Days()[1].Activities, 1)
}

func TestConcurrentLoadsAreCoalesced(t *testing.T) {
	remote := seededRemote()
	remote.block = make(chan struct{})
	remote.started = make(chan struct{}, 1)
	s := newSession(remote)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = s.Load(context.Background())
	}()
	<-remote.started

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[1] = s.Load(context.Background())
	}()
	time.Sleep(50 * time.Millisecond)
	close(remote.block)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int32(1), remote.wellnessCalls.Load())
}

func TestCancelledCallerDoesNotCancelSharedLoad(t *testing.T) {
	remote := seededRemote()
	remote.block = make(chan struct{})
	remote.started = make(chan struct{}, 1)
	s := newSession(remote)

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() { firstErr <- s.Load(first) }()
	<-remote.started

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	secondErr := make(chan error, 1)
	go func() { secondErr <- s.Load(context.Background()) }()
	time.Sleep(50 * time.Millisecond)
	close(remote.block)

	require.NoError(t, <-secondErr)
	assert.True(t, s.Loaded())
	assert.Equal(t, int32(1), remote.wellnessCalls.Load())
}

func TestSaveWellnessMergesOnSuccess(t *testing.T) {
	remote := seededRemote()
	s := newSession(remote)
	require.NoError(t, s.Load(context.Background()))
	rev := s.Revision()

	err := s.SaveWellness(context.Background(), models.WellnessEntry{
		ID:       "2024-01-14",
		Fatigue:  models.Int(0),
		Comments: models.String(""),
	})

	require.NoError(t, err)
	require.Len(t, remote.wellnessWrites, 1)
	assert.Nil(t, remote.wellnessWrites[0].Comments, "blank comments are not sent")

	got := s.Wellness("2024-01-14")
	assert.Equal(t, 2, *got.Mood)
	assert.Equal(t, 0, *got.Fatigue)
	assert.Equal(t, "fine", *got.Comments)
	assert.Greater(t, s.Revision(), rev)
}

func TestFailedWritesLeaveIndexUntouched(t *testing.T) {
	remote := seededRemote()
	s := newSession(remote)
	require.NoError(t, s.Load(context.Background()))
	before := s.Snapshot()
	remote.writeErr = &apperrors.TransportError{Op: "write", StatusCode: 500}
	ctx := context.Background()

	assert.Error(t, s.SaveWellness(ctx, models.WellnessEntry{ID: "2024-01-14", Mood: models.Int(4)}))
	assert.Error(t, s.SaveActivity(ctx, "a1", models.Activity{Feel: models.Int(1)}))
	_, err := s.SaveEvent(ctx, models.Event{Category: constants.EventNote, StartDateLocal: "2024-01-14T00:00:00"})
	assert.Error(t, err)
	_, err = s.SaveEvent(ctx, models.Event{ID: 7, Category: constants.EventNote, StartDateLocal: "2024-01-14T00:00:00"})
	assert.Error(t, err)
	assert.Error(t, s.DeleteEvent(ctx, 7))

	assert.Equal(t, before, s.Snapshot())
}

func TestSaveActivity(t *testing.T) {
	s := newSession(seededRemote())
	require.NoError(t, s.Load(context.Background()))
	ctx := context.Background()

	require.NoError(t, s.SaveActivity(ctx, "a1", models.Activity{
		Description: models.String("strides"),
		ICURPE:      models.Int(0),
		Feel:        models.Int(0),
	}))
	days := s.Days()
	assert.True(t, days[1].Activities[0].Complete)

	err := s.SaveActivity(ctx, "a2", models.Activity{Feel: models.Int(2)})
	assert.True(t, apperrors.IsValidation(err), "strava activities are read-only")

	err = s.SaveActivity(ctx, "a1", models.Activity{Name: models.String("  ")})
	assert.False(t, apperrors.IsValidation(err), "whitespace is not blank")
	err = s.SaveActivity(ctx, "a1", models.Activity{Name: models.String("")})
	assert.True(t, apperrors.IsValidation(err), "empty patch")
}

func TestSaveAndDeleteEvent(t *testing.T) {
	s := newSession(seededRemote())
	require.NoError(t, s.Load(context.Background()))
	ctx := context.Background()

	created, err := s.SaveEvent(ctx, models.Event{
		Category:       constants.EventHoliday,
		Name:           "trip",
		StartDateLocal: "2024-01-13T00:00:00",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, ok := s.Event(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)
	assert.Len(t, s.Bars(), 2)

	require.NoError(t, s.DeleteEvent(ctx, created.ID))
	_, ok = s.Event(created.ID)
	assert.False(t, ok)
	assert.Len(t, s.Bars(), 1)
}

func TestSaveValidation(t *testing.T) {
	s := newSession(seededRemote())
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
	}{
		{"bad wellness date", s.SaveWellness(ctx, models.WellnessEntry{ID: "14/01/2024", Mood: models.Int(1)})},
		{"empty wellness", s.SaveWellness(ctx, models.WellnessEntry{ID: "2024-01-14"})},
		{"missing activity id", s.SaveActivity(ctx, "", models.Activity{Feel: models.Int(1)})},
		{"missing category", func() error {
			_, err := s.SaveEvent(ctx, models.Event{StartDateLocal: "2024-01-14T00:00:00"})
			return err
		}()},
		{"bad start", func() error {
			_, err := s.SaveEvent(ctx, models.Event{Category: constants.EventNote, StartDateLocal: "soon"})
			return err
		}()},
		{"end before start", func() error {
			_, err := s.SaveEvent(ctx, models.Event{Category: constants.EventNote, StartDateLocal: "2024-01-14T00:00:00", EndDateLocal: "2024-01-12T00:00:00"})
			return err
		}()},
		{"delete without id", s.DeleteEvent(ctx, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperrors.IsValidation(tt.err), "got %v", tt.err)
		})
	}
}
