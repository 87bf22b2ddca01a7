package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logogrip/internal/eventbus"
)

var errBoom = errors.New("boom")

// gatedSource blocks every Fetch until the test releases it
type gatedSource struct {
	mu      sync.Mutex
	pending []chan []byte
	fetched chan struct{}
}

func newGatedSource() *gatedSource {
	return &gatedSource{fetched: make(chan struct{}, 16)}
}

func (s *gatedSource) Fetch(ctx context.Context) ([]byte, error) {
	ch := make(chan []byte, 1)
	s.mu.Lock()
	s.pending = append(s.pending, ch)
	s.mu.Unlock()
	s.fetched <- struct{}{}

	select {
	case data := <-ch:
		if data == nil {
			return nil, errBoom
		}
		return data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// release answers the n-th Fetch call; nil makes it fail
func (s *gatedSource) release(n int, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[n] <- data
}

func (s *gatedSource) waitFetch(t *testing.T) {
	t.Helper()
	select {
	case <-s.fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch was not called")
	}
}

func (s *gatedSource) Origin() string    { return "gated" }
func (s *gatedSource) AssetBase() string { return "" }

type recorder struct {
	loaded chan eventbus.DatasetLoadedEvent
	failed chan eventbus.DatasetLoadFailedEvent
	marker chan struct{}
}

func record(bus eventbus.EventBus) *recorder {
	r := &recorder{
		loaded: make(chan eventbus.DatasetLoadedEvent, 8),
		failed: make(chan eventbus.DatasetLoadFailedEvent, 8),
		marker: make(chan struct{}, 1),
	}
	bus.Subscribe(eventbus.EventDatasetLoaded, func(e eventbus.DomainEvent) {
		r.loaded <- e.(eventbus.DatasetLoadedEvent)
	})
	bus.Subscribe(eventbus.EventDatasetLoadFailed, func(e eventbus.DomainEvent) {
		r.failed <- e.(eventbus.DatasetLoadFailedEvent)
	})
	bus.Subscribe(eventbus.EventError, func(eventbus.DomainEvent) {
		r.marker <- struct{}{}
	})
	return r
}

// flush waits until every event published so far has been dispatched
func (r *recorder) flush(t *testing.T, bus eventbus.EventBus) {
	t.Helper()
	bus.Publish(eventbus.ErrorEvent{Message: "marker"})
	select {
	case <-r.marker:
	case <-time.After(2 * time.Second):
		t.Fatal("bus did not flush")
	}
}

func (r *recorder) nextLoaded(t *testing.T) eventbus.DatasetLoadedEvent {
	t.Helper()
	select {
	case e := <-r.loaded:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no DatasetLoadedEvent")
		return eventbus.DatasetLoadedEvent{}
	}
}

func TestServiceLoadPublishesDataset(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()
	rec := record(bus)

	src := newGatedSource()
	svc := NewService(context.Background(), bus, src, nil)
	defer svc.Close()

	assert.Nil(t, svc.Current())
	id := svc.Load(context.Background())
	assert.Equal(t, uint64(1), id)

	src.waitFetch(t)
	src.release(0, []byte(`[{"name":"Volkswagen","slug":"volkswagen"},{"name":""}]`))

	e := rec.nextLoaded(t)
	require.NotNil(t, e.Dataset)
	assert.Equal(t, uint64(1), e.Dataset.Generation)
	assert.Equal(t, "gated", e.Dataset.Origin)
	assert.Equal(t, 1, e.Dataset.Len())
	assert.Equal(t, 1, e.Dropped)
	assert.Equal(t, id, e.Request)
	assert.Same(t, e.Dataset, svc.Current())
}

func TestServiceLastCompletedWins(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()
	rec := record(bus)

	src := newGatedSource()
	svc := NewService(context.Background(), bus, src, nil)
	defer svc.Close()

	svc.Load(context.Background())
	src.waitFetch(t)
	svc.Load(context.Background())
	src.waitFetch(t)

	// The second request finishes first.
	src.release(1, []byte(`[{"name":"Volvo","slug":"volvo"}]`))
	first := rec.nextLoaded(t)
	assert.Equal(t, "Volvo", first.Dataset.Entities[0].Name)

	src.release(0, []byte(`[{"name":"Volkswagen","slug":"volkswagen"}]`))
	second := rec.nextLoaded(t)
	assert.Equal(t, "Volkswagen", second.Dataset.Entities[0].Name)

	assert.Greater(t, second.Dataset.Generation, first.Dataset.Generation)
	assert.Equal(t, "Volkswagen", svc.Current().Entities[0].Name)
}

func TestServiceLoadFailure(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()
	rec := record(bus)

	src := newGatedSource()
	svc := NewService(context.Background(), bus, src, nil)
	defer svc.Close()

	id := svc.Load(context.Background())
	src.waitFetch(t)
	src.release(0, nil)

	select {
	case e := <-rec.failed:
		assert.Equal(t, id, e.Generation)
		assert.ErrorIs(t, e.Err, errBoom)
	case <-time.After(2 * time.Second):
		t.Fatal("no DatasetLoadFailedEvent")
	}
	assert.Nil(t, svc.Current())
}

func TestServiceDropsCancelledLoad(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()
	rec := record(bus)

	src := newGatedSource()
	svc := NewService(context.Background(), bus, src, nil)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Load(ctx)
	src.waitFetch(t)
	cancel()
	svc.Close()

	rec.flush(t, bus)
	assert.Empty(t, rec.loaded)
	assert.Empty(t, rec.failed)
	assert.Nil(t, svc.Current())
	assert.Zero(t, svc.Load(context.Background()), "closed service ignores loads")
}

func TestServiceReloadsOnRequestEvent(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()
	rec := record(bus)

	src := newGatedSource()
	svc := NewService(context.Background(), bus, src, nil)
	defer svc.Close()

	bus.Publish(eventbus.LoadRequestedEvent{Reason: "manual"})
	src.waitFetch(t)
	src.release(0, []byte(`[]`))

	e := rec.nextLoaded(t)
	assert.Equal(t, 0, e.Dataset.Len())
}

func TestLoadFromFile(t *testing.T) {
	src := &FileSource{Path: "testdata/logos.json"}

	ds, report, err := Load(context.Background(), src, NewNormalizer(nil))
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Kept)
	require.Len(t, report.Rejected, 1)
	assert.Equal(t, []string{"Land Rover", "Volkswagen"}, []string{ds.Entities[0].Name, ds.Entities[1].Name})
}
