package convergence

import (
	"sort"
	"time"

	"github.com/yeremiapane/koko-king/models"
)

// View projects an order snapshot into what one role screen shows.
type View func(orders []models.Order, now time.Time) []models.Order

// KitchenQueue -> active orders, walk-ins first, newest first within each group
func KitchenQueue(orders []models.Order, _ time.Time) []models.Order {
	out := keep(orders, func(o models.Order) bool { return !o.Status.IsTerminal() })
	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := out[i].OrderType == models.OrderTypeWalkIn, out[j].OrderType == models.OrderTypeWalkIn
		if wi != wj {
			return wi
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// KitchenDisplay -> orders being worked on, oldest first
func KitchenDisplay(orders []models.Order, _ time.Time) []models.Order {
	out := keep(orders, func(o models.Order) bool {
		return o.Status == models.StatusConfirmed || o.Status == models.StatusPreparing
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// DriverBoard -> today's delivery orders that were not cancelled
func DriverBoard(orders []models.Order, now time.Time) []models.Order {
	today := now.In(time.Local).Format(models.DateLayout)
	out := keep(orders, func(o models.Order) bool {
		return o.DeliveryMethod == models.DeliveryDelivery &&
			o.Status != models.StatusCancelled &&
			o.CreatedAt.In(time.Local).Format(models.DateLayout) == today
	})
	sortNewestFirst(out)
	return out
}

func ManagerBoard(orders []models.Order, _ time.Time) []models.Order {
	out := keep(orders, func(models.Order) bool { return true })
	sortNewestFirst(out)
	return out
}

func AdminBoard(orders []models.Order, now time.Time) []models.Order {
	return ManagerBoard(orders, now)
}

// ViewFor returns the view a role terminal renders.
func ViewFor(name string) (View, bool) {
	switch name {
	case "kitchen", "kitchen-queue":
		return KitchenQueue, true
	case "display", "kitchen-display":
		return KitchenDisplay, true
	case "driver":
		return DriverBoard, true
	case "manager":
		return ManagerBoard, true
	case "admin":
		return AdminBoard, true
	}
	return nil, false
}

func keep(orders []models.Order, pred func(models.Order) bool) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if pred(o) {
			out = append(out, o)
		}
	}
	return out
}

func sortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
