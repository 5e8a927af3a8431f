package metrics

import (
	"sort"
	"strings"

	"pos_manager/internal/models"
)

type StaffSales struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Orders int    `json:"orders"`
	Sales  int64  `json:"sales"`
}

type ItemSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  int64  `json:"revenue"`
}

// StaffLeaderboard attributes orders to staff and ranks by sales. An order
// counts only when its creator reference string-equals the staff identifier,
// its status is Paid, and it falls inside the active date filter. Sorting is
// stable so ties keep the staff list's input order across recomputations.
// limit <= 0 returns the full board.
func StaffLeaderboard(orders []models.Order, staff []models.User, in RangeFunc, limit int) []StaffSales {
	board := make([]StaffSales, 0, len(staff))
	for _, u := range staff {
		entry := StaffSales{ID: u.RefID(), Name: u.Name, Role: u.Role}
		for _, o := range orders {
			if o.Status != string(models.OrderPaid) {
				continue
			}
			if in != nil && !in(o.CreatedAt) {
				continue
			}
			if o.CreatedBy.ID != entry.ID {
				continue
			}
			entry.Orders++
			entry.Sales += Revenue(o)
		}
		board = append(board, entry)
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Sales > board[j].Sales
	})
	if limit > 0 && len(board) > limit {
		board = board[:limit]
	}
	return board
}

// TopItems aggregates line items across paid orders in the active filter,
// grouping case-insensitively by name while preserving the first-seen casing
// for display. Ranked by revenue descending, stable, fixed-size prefix.
func TopItems(orders []models.Order, in RangeFunc, limit int) []ItemSales {
	index := map[string]int{}
	items := []ItemSales{}
	for _, o := range orders {
		if o.Status != string(models.OrderPaid) {
			continue
		}
		if in != nil && !in(o.CreatedAt) {
			continue
		}
		for _, line := range o.Items {
			key := strings.ToLower(line.Name)
			i, ok := index[key]
			if !ok {
				i = len(items)
				index[key] = i
				items = append(items, ItemSales{Name: line.Name})
			}
			items[i].Quantity += line.Quantity
			items[i].Revenue += line.Price.Int64() * int64(line.Quantity)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Revenue > items[j].Revenue
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// PercentOfMax sizes a leaderboard progress bar. The maximum is floored at 1
// so an all-zero board renders every bar at 0 instead of dividing by zero.
func PercentOfMax(value, max int64) float64 {
	if max < 1 {
		max = 1
	}
	return float64(value) / float64(max) * 100
}
