package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"logogrip/internal/domain"
	"logogrip/internal/eventbus"
)

// Service loads the manifest in the background and publishes the outcome
// on the event bus. Overlapping loads are allowed; the load that completes
// last wins, and its dataset carries the highest generation.
type Service interface {
	// Load starts a load and returns its request id
	Load(ctx context.Context) uint64
	// Current returns the most recently completed dataset, or nil
	Current() *domain.Dataset
	Source() Source
	// Close cancels in-flight loads, waits for them and unsubscribes
	Close()
}

type service struct {
	bus        eventbus.EventBus
	src        Source
	normalizer *Normalizer
	logger     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	requests   uint64
	generation uint64
	current    *domain.Dataset
	closed     bool

	unsubscribe []func()
}

// NewService creates a catalog service bound to ctx. It reacts to
// LoadRequested and ManifestChanged events by starting a load.
func NewService(ctx context.Context, bus eventbus.EventBus, src Source, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)

	s := &service{
		bus:        bus,
		src:        src,
		normalizer: NewNormalizer(logger),
		logger:     logger.Named("catalog"),
		ctx:        ctx,
		cancel:     cancel,
	}

	reload := func(e eventbus.DomainEvent) {
		s.logger.Debug("reload triggered", zap.String("event", string(e.Type())))
		s.Load(ctx)
	}
	s.unsubscribe = append(s.unsubscribe,
		bus.Subscribe(eventbus.EventLoadRequested, reload),
		bus.Subscribe(eventbus.EventManifestChanged, reload),
	)

	return s
}

func (s *service) Load(ctx context.Context) uint64 {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0
	}
	s.requests++
	id := s.requests
	s.wg.Add(1)
	s.mu.Unlock()

	// Loads stop on either the caller's or the service's cancellation.
	loadCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)

	s.bus.Publish(eventbus.DatasetLoadStartedEvent{Generation: id, Origin: s.src.Origin()})
	s.logger.Info("loading manifest", zap.Uint64("request", id), zap.String("origin", s.src.Origin()))

	go func() {
		defer s.wg.Done()
		defer cancel()
		defer stop()

		ds, report, err := Load(loadCtx, s.src, s.normalizer)
		if loadCtx.Err() != nil {
			s.logger.Debug("dropping cancelled load", zap.Uint64("request", id))
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed {
			return
		}

		if err != nil {
			s.logger.Error("manifest load failed", zap.Uint64("request", id), zap.Error(err))
			s.bus.Publish(eventbus.DatasetLoadFailedEvent{Generation: id, Origin: s.src.Origin(), Err: err})
			return
		}

		s.generation++
		ds.Generation = s.generation
		s.current = ds
		s.logger.Info("manifest loaded",
			zap.Uint64("request", id),
			zap.Uint64("generation", ds.Generation),
			zap.Int("entities", report.Kept),
			zap.Int("dropped", len(report.Rejected)))
		s.bus.Publish(eventbus.DatasetLoadedEvent{Dataset: ds, Dropped: len(report.Rejected), Request: id})
	}()

	return id
}

func (s *service) Current() *domain.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *service) Source() Source { return s.src }

func (s *service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	for _, unsub := range s.unsubscribe {
		unsub()
	}
	s.cancel()
	s.wg.Wait()
}
