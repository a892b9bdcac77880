package services

import (
	"context"
	"time"

	"github.com/yeremiapane/koko-king/convergence"
	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/utils"
)

// OrderMonitor watches the store for new pending orders and announces them.
type OrderMonitor struct {
	Interval time.Duration
	poller   *convergence.Poller
}

func NewOrderMonitor(store *OrderStore, interval time.Duration, clock convergence.Clock, notifier convergence.Notifier) *OrderMonitor {
	if notifier == nil {
		notifier = convergence.LogNotifier{View: "monitor"}
	}
	return &OrderMonitor{
		Interval: interval,
		poller: convergence.NewPoller(convergence.Config{
			Name:     "monitor",
			Source:   store,
			View:     convergence.KitchenQueue,
			Interval: interval,
			Clock:    clock,
			Notifier: notifier,
		}),
	}
}

func (m *OrderMonitor) Start(ctx context.Context) {
	utils.InfoLogger.Infof("Order monitor polling every %s", m.Interval)
	m.poller.Start(ctx)
}

func (m *OrderMonitor) Stop() {
	m.poller.Stop()
	utils.InfoLogger.Info("Order monitor stopped")
}

// Active returns the orders still in the kitchen as of the last poll.
func (m *OrderMonitor) Active() []models.Order {
	return m.poller.Snapshot()
}
