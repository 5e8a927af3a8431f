// Package metrics computes dashboard statistics, leaderboards and
// time-bucketed aggregates as pure functions of the current collections.
// Nothing here holds state; every figure is recomputed from scratch on each
// call, which is acceptable at single-location restaurant scale.
package metrics

import (
	"time"

	"pos_manager/internal/models"
)

// RangeFunc reports whether a timestamp falls inside the active date filter.
type RangeFunc func(time.Time) bool

// Revenue is the single revenue convention: totalWithDiscount when present,
// else total, else 0. Every place that sums revenue must go through this
// function; mixing conventions under-counts totals.
func Revenue(o models.Order) int64 {
	if o.Bills.TotalWithDiscount != nil {
		return o.Bills.TotalWithDiscount.Int64()
	}
	if o.Bills.Total != nil {
		return o.Bills.Total.Int64()
	}
	return 0
}

// SumRevenue folds the revenue of every order in the list.
func SumRevenue(orders []models.Order) int64 {
	var total int64
	for _, o := range orders {
		total += Revenue(o)
	}
	return total
}

// PaidRevenue sums revenue over paid orders inside the active date filter.
func PaidRevenue(orders []models.Order, in RangeFunc) int64 {
	var total int64
	for _, o := range orders {
		if o.Status != string(models.OrderPaid) {
			continue
		}
		if in != nil && !in(o.CreatedAt) {
			continue
		}
		total += Revenue(o)
	}
	return total
}

// CountOrders counts orders inside the active date filter.
func CountOrders(orders []models.Order, in RangeFunc) int {
	count := 0
	for _, o := range orders {
		if in == nil || in(o.CreatedAt) {
			count++
		}
	}
	return count
}
