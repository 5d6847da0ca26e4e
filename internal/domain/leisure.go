package domain

import (
	"fmt"
	"strings"
	"time"
)

// LeisureItem is a reward that can be bought with leisure points.
type LeisureItem struct {
	ID          string
	Name        string
	Cost        float64
	Icon        string
	Description string
	CreatedAt   time.Time
}

func (l *LeisureItem) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("leisure item name is required")
	}
	if l.Cost <= 0 {
		return fmt.Errorf("leisure item cost must be positive, got %.2f", l.Cost)
	}
	return nil
}

// Purchase is a redeemed leisure item booked for a future time.
type Purchase struct {
	ID          string
	ItemID      string
	ItemName    string
	ItemIcon    string
	Cost        float64
	ScheduledAt time.Time
	PurchasedAt time.Time
	Status      PurchaseStatus
}

// DefaultLeisureItems is the catalogue seeded on first launch.
func DefaultLeisureItems() []LeisureItem {
	return []LeisureItem{
		{Name: "30min Gaming", Cost: 5, Icon: "🎮", Description: "Enjoy 30 minutes of gaming time"},
		{Name: "Movie Night", Cost: 10, Icon: "🎬", Description: "Watch your favorite movie"},
		{Name: "Dessert Treat", Cost: 7.5, Icon: "🍰", Description: "Indulge in a sweet treat"},
		{Name: "Social Outing", Cost: 15, Icon: "🎉", Description: "Hang out with friends"},
		{Name: "Hobby Time", Cost: 8, Icon: "🎨", Description: "Spend time on your favorite hobby"},
		{Name: "Rest Day", Cost: 20, Icon: "😴", Description: "Take a well-deserved rest day"},
		{Name: "Shopping Spree", Cost: 25, Icon: "🛍️", Description: "Treat yourself to some shopping"},
		{Name: "Extra Sleep", Cost: 6, Icon: "🌙", Description: "Sleep in an extra hour"},
	}
}
