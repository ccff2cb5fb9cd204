package domain

import "time"

type Order struct {
	ID          int64       `json:"id"`
	UserID      *int64      `json:"-"`
	Location    string      `json:"location"`
	Phone       string      `json:"phone"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
	Status      Status      `json:"status"`
	TotalAmount int64       `json:"total_amount"`
	Currency    string      `json:"currency"`
	CreatedAt   time.Time   `json:"created_at"`
	Items       []OrderItem `json:"items,omitempty"`
}

// OrderItem snapshots quantity and price at purchase time; it never tracks
// later watch price changes.
type OrderItem struct {
	ID         int64  `json:"id"`
	OrderID    int64  `json:"-"`
	WatchID    int64  `json:"watch_id"`
	WatchName  string `json:"watch_name"`
	WatchImage string `json:"-"`
	Quantity   int    `json:"quantity"`
	Price      int64  `json:"price"`
}

// ItemsTotal sums quantity×price over the order's items.
func (o Order) ItemsTotal() int64 {
	var total int64
	for _, it := range o.Items {
		total += int64(it.Quantity) * it.Price
	}
	return total
}
