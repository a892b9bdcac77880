package convergence

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/koko-king/models"
	"github.com/yeremiapane/koko-king/utils"
)

// Notifier is told about pending orders a session has not seen before.
// Implementations must not fail the poll: delivery problems are swallowed.
type Notifier interface {
	NewOrders(ctx context.Context, orders []models.Order)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, orders []models.Order)

func (f NotifierFunc) NewOrders(ctx context.Context, orders []models.Order) { f(ctx, orders) }

// LogNotifier writes one structured line per new order.
type LogNotifier struct {
	Logger *logrus.Logger
	View   string
}

func (n LogNotifier) NewOrders(_ context.Context, orders []models.Order) {
	logger := n.Logger
	if logger == nil {
		logger = utils.InfoLogger
	}
	for _, o := range orders {
		logger.WithFields(logrus.Fields{
			"view":     n.View,
			"order_id": o.ID,
			"type":     o.OrderType,
			"branch":   o.BranchID,
		}).Info("New order")
	}
}

// BellNotifier rings the terminal bell and prints a line per order. With a
// nil writer or Enabled false it does nothing.
type BellNotifier struct {
	Out     io.Writer
	Enabled bool

	mu sync.Mutex
}

func (n *BellNotifier) NewOrders(_ context.Context, orders []models.Order) {
	if n == nil || !n.Enabled || n.Out == nil || len(orders) == 0 {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := io.WriteString(n.Out, "\a"); err != nil {
		return
	}
	for _, o := range orders {
		fmt.Fprintf(n.Out, "New order %s: %s (%s)\n", o.ID, o.Customer.Name, utils.FormatCedi(o.Total))
	}
}

// MultiNotifier fans out to every notifier in order.
type MultiNotifier []Notifier

func (m MultiNotifier) NewOrders(ctx context.Context, orders []models.Order) {
	for _, n := range m {
		if n != nil {
			n.NewOrders(ctx, orders)
		}
	}
}
