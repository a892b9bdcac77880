// Package convergence keeps role screens eventually consistent with the
// order store by polling it on an interval.
package convergence

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/koko-king/metrics"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/utils"
)

// Source is anything that can list orders: the in-process store or the HTTP
// client of a remote terminal.
type Source interface {
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
}

const DefaultInterval = 3 * time.Second

type Config struct {
	Name     string
	Source   Source
	Filter   models.OrderFilter
	View     View
	Interval time.Duration
	Clock    Clock
	Notifier Notifier

	// NotifyOnFirstPoll announces every pending order found by the first
	// poll instead of silently marking them seen.
	NotifyOnFirstPoll bool
}

// Poller runs one view. A failed poll keeps the previous snapshot and never
// produces a notification.
type Poller struct {
	cfg  Config
	seen *SeenSet

	mu       sync.RWMutex
	snapshot []models.Order
	primed   bool

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	if cfg.View == nil {
		cfg.View = ManagerBoard
	}
	if cfg.Notifier == nil {
		cfg.Notifier = MultiNotifier{}
	}
	return &Poller{cfg: cfg, seen: NewSeenSet(), snapshot: []models.Order{}}
}

// Start polls once immediately, then on every tick until ctx ends or Stop
// is called. Calling Start on a running poller does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	ticker := p.cfg.Clock.NewTicker(p.cfg.Interval)
	p.cancel = cancel
	p.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		defer ticker.Stop()

		_ = p.Tick(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				_ = p.Tick(ctx)
			}
		}
	}(p.done)
}

// Stop cancels the loop and waits for it to exit. No source call happens
// after Stop returns.
func (p *Poller) Stop() {
	p.runMu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Tick performs one poll synchronously.
func (p *Poller) Tick(ctx context.Context) error {
	start := time.Now()
	orders, err := p.cfg.Source.List(ctx, p.cfg.Filter)
	metrics.PollDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		metrics.Polls.WithLabelValues("error").Inc()
		utils.ErrorLogger.WithFields(logrus.Fields{
			"view":  p.cfg.Name,
			"error": err,
		}).Error("Order poll failed, keeping previous view")
		return err
	}
	metrics.Polls.WithLabelValues("ok").Inc()

	view := p.cfg.View(orders, p.cfg.Clock.Now())

	pending := make(map[string]models.Order)
	var ids []string
	for _, o := range view {
		if o.Status == models.StatusPending {
			pending[o.ID] = o
			ids = append(ids, o.ID)
		}
	}
	fresh := p.seen.Diff(ids)

	p.mu.Lock()
	p.snapshot = view
	firstPoll := !p.primed
	p.primed = true
	p.mu.Unlock()

	if firstPoll && !p.cfg.NotifyOnFirstPoll {
		return nil
	}
	if len(fresh) > 0 {
		announce := make([]models.Order, 0, len(fresh))
		for _, id := range fresh {
			announce = append(announce, pending[id])
		}
		p.cfg.Notifier.NewOrders(ctx, announce)
	}
	return nil
}

// Snapshot returns the view from the last successful poll.
func (p *Poller) Snapshot() []models.Order {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]models.Order, len(p.snapshot))
	copy(out, p.snapshot)
	return out
}

func (p *Poller) Name() string {
	return p.cfg.Name
}
