package domain

import "testing"

func TestOrderItemsTotal(t *testing.T) {
	ord := Order{
		Items: []OrderItem{
			{Quantity: 2, Price: 1_000_000},
			{Quantity: 1, Price: 2_350_000},
			{Quantity: 3, Price: 500_000},
		},
	}
	if got, want := ord.ItemsTotal(), int64(5_850_000); got != want {
		t.Fatalf("ItemsTotal() = %d, want %d", got, want)
	}
}

func TestOrderItemsTotalEmpty(t *testing.T) {
	if got := (Order{}).ItemsTotal(); got != 0 {
		t.Fatalf("ItemsTotal() = %d, want 0", got)
	}
}
