package metrics

import (
	"time"

	"pos_manager/internal/models"
)

const newCustomerWindowDays = 30

// ClassifyCustomer derives the customer tier from stored facts. VIP wins over
// New regardless of age; New means created within the last 30 days. The tier
// is never persisted, so every display site computes it identically.
func ClassifyCustomer(c models.Customer, now time.Time) models.CustomerTier {
	if c.TotalOrders >= 5 {
		return models.TierVIP
	}
	if c.CreatedAt.After(now.AddDate(0, 0, -newCustomerWindowDays)) {
		return models.TierNew
	}
	return models.TierRegular
}
