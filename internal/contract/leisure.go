package contract

import (
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
)

type RedeemRequest struct {
	ItemID      string
	ScheduledAt time.Time
}

type RedeemResponse struct {
	Purchase *domain.Purchase
	Balance  float64
}

type InitResponse struct {
	// AlreadyInitialized is true when nothing was written.
	AlreadyInitialized bool
	SeededItems        int
}
