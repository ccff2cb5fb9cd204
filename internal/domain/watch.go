package domain

import "time"

type Watch struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Tag         string    `json:"tag"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	Badge       string    `json:"badge"`
	Image       string    `json:"-"`
	IsActive    bool      `json:"-"`
	IsHero      bool      `json:"-"`
	IsFeatured  bool      `json:"-"`
	SortOrder   int       `json:"-"`
	CreatedAt   time.Time `json:"-"`
}
