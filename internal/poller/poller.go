package poller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/canteen-companion/internal/model"
)

// Fetcher retrieves notifications created strictly after since. Satisfied by
// *client.Client.
type Fetcher interface {
	NewNotifications(ctx context.Context, since time.Time) (*model.NotificationBatch, error)
}

// Sink receives each freshly fetched notification. Delivery is fanned out to
// every registered sink: the desktop notifier, the in-page banner queue, and
// anything else that cares.
type Sink interface {
	Deliver(n model.Notification)
}

// UnreadCounter displays the unread count. It always receives the
// server-reported figure, never a client-side tally.
type UnreadCounter interface {
	SetUnread(count int)
}

// Poller periodically fetches notifications newer than a watermark timestamp
// and dispatches them to its sinks. It is either Stopped or Running; Start and
// Stop are idempotent. The watermark only advances after a successful fetch,
// so a failed tick retries the same window.
type Poller struct {
	interval time.Duration
	fetcher  Fetcher
	sinks    []Sink
	counter  UnreadCounter
	logger   *zap.Logger

	mu         sync.Mutex
	running    bool
	generation uint64
	cancel     context.CancelFunc
	lastCheck  time.Time
}

// New creates a poller with its watermark primed at since. Records created at
// or before since are never delivered.
func New(fetcher Fetcher, interval time.Duration, since time.Time, logger *zap.Logger) *Poller {
	return &Poller{
		interval:  interval,
		fetcher:   fetcher,
		lastCheck: since,
		logger:    logger,
	}
}

// AddSink registers a delivery channel. Must be called before Start.
func (p *Poller) AddSink(s Sink) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sinks = append(p.sinks, s)
}

// SetUnreadCounter registers the unread-count indicator. Must be called
// before Start.
func (p *Poller) SetUnreadCounter(c UnreadCounter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counter = c
}

// Start moves the poller to Running and begins ticking. Starting a running
// poller is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}
	p.running = true
	p.generation++

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.run(ctx, p.generation)

	p.logger.Debug("notification poller started", zap.Duration("interval", p.interval))
}

// Stop moves the poller to Stopped. No further tick fires after Stop returns;
// a fetch already in flight is allowed to finish but its result is discarded.
// Stopping a stopped poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.running = false
	p.generation++
	p.cancel()
	p.cancel = nil

	p.logger.Debug("notification poller stopped")
}

// Running reports whether the poller is currently ticking.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Watermark returns the timestamp of the newest record already processed.
func (p *Poller) Watermark() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastCheck
}

// Poll performs one fetch immediately, outside the timer schedule. Manual
// refresh and timer ticks share the same path, so overlapping calls are safe.
func (p *Poller) Poll(ctx context.Context) {
	p.mu.Lock()
	gen := p.generation
	since := p.lastCheck
	p.mu.Unlock()

	p.poll(ctx, gen, since)
}

func (p *Poller) run(ctx context.Context, gen uint64) {
	// First fetch fires right away; the ticker covers the rest.
	p.poll(ctx, gen, p.Watermark())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.mu.Lock()
			since := p.lastCheck
			p.mu.Unlock()
			p.poll(ctx, gen, since)
		case <-ctx.Done():
			return
		}
	}
}

// poll fetches one window and delivers the result. The generation captured
// before the fetch is compared under the lock afterwards: if Stop (or a
// Stop/Start cycle) intervened while the request was in flight, the response
// is dropped without touching the watermark, the sinks, or the counter.
func (p *Poller) poll(ctx context.Context, gen uint64, since time.Time) {
	now := time.Now()
	batch, err := p.fetcher.NewNotifications(ctx, since)
	if err != nil {
		p.logger.Warn("notification fetch failed, window will be retried",
			zap.Time("since", since),
			zap.Error(err))
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running || gen != p.generation {
		return
	}
	p.lastCheck = now

	for _, n := range batch.Notifications {
		for _, sink := range p.sinks {
			sink.Deliver(n)
		}
	}
	if p.counter != nil {
		p.counter.SetUnread(batch.Count)
	}
}
