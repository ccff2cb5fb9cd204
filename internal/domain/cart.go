package domain

// CartLine is one pending selection in a session cart. Price is captured when
// the line is first added and is the value frozen into an OrderItem at
// checkout, independent of later watch price changes.
type CartLine struct {
	WatchID  int64 `json:"watch_id"`
	Quantity int   `json:"quantity"`
	Price    int64 `json:"price"`
}
