package checkout

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"timepiece-store/internal/domain"
	orderrepo "timepiece-store/internal/repository/order"
)

// ErrMissingFields is returned by the JSON API path when required payload
// fields are absent.
var ErrMissingFields = errors.New("missing fields")

// Notifier relays a freshly created order to the fulfilment channel. The
// relay is best effort: Submit logs a returned error and never propagates it,
// and the order is not rolled back on failure.
type Notifier interface {
	OrderCreated(ctx context.Context, ord *domain.Order) error
}

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateInput) (*domain.Order, error)
}

type userRepo interface {
	UpdateContact(ctx context.Context, id int64, location, phone string) error
}

// Service turns cart contents or API payloads into persisted orders and
// kicks off the fulfilment notification.
type Service struct {
	orders   orderRepo
	users    userRepo
	notifier Notifier
	logger   *log.Logger
}

func New(orders orderrepo.Repository, users userRepo, notifier Notifier, logger *log.Logger) *Service {
	return &Service{orders: orders, users: users, notifier: notifier, logger: logger}
}

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

// SubmitInput carries the session cart plus raw delivery form values.
type SubmitInput struct {
	UserID    *int64
	Lines     []domain.CartLine
	Location  string
	Phone     string
	Latitude  string
	Longitude string
	Currency  string
}

// Submit validates the checkout form and creates the order. Checks are
// independent and every violated field is reported at once so the caller can
// redisplay the whole form. Unparsable coordinates count as absent.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.Order, FieldErrors, error) {
	location := strings.TrimSpace(in.Location)
	phone := strings.TrimSpace(in.Phone)
	lat := parseCoord(in.Latitude)
	lon := parseCoord(in.Longitude)

	fieldErrs := FieldErrors{}
	if len(in.Lines) == 0 {
		fieldErrs["cart"] = "Cart is empty. Add at least one model."
	}
	if location == "" {
		fieldErrs["location"] = "Delivery address is required."
	}
	if phone == "" {
		fieldErrs["phone"] = "Phone number is required."
	}
	if lat == nil || lon == nil {
		fieldErrs["map"] = "Pick a point on the map."
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	ord, err := s.create(ctx, in.UserID, location, phone, lat, lon, in.Currency, in.Lines)
	if err != nil {
		return nil, nil, err
	}
	return ord, nil, nil
}

// APIItem is one line of the fully-specified order payload.
type APIItem struct {
	ID       int64 `json:"id"`
	Price    int64 `json:"price"`
	Quantity int   `json:"quantity"`
}

// APIInput is the JSON order-creation payload that bypasses the session cart.
type APIInput struct {
	Location  string    `json:"location"`
	Phone     string    `json:"phone"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Items     []APIItem `json:"items"`
}

// CreateFromPayload performs the same order creation and notification as
// Submit for a fully-specified payload. Items without an id are skipped;
// a missing quantity defaults to 1.
func (s *Service) CreateFromPayload(ctx context.Context, in APIInput, userID *int64) (*domain.Order, error) {
	location := strings.TrimSpace(in.Location)
	phone := strings.TrimSpace(in.Phone)
	if location == "" || phone == "" || in.Latitude == nil || in.Longitude == nil || len(in.Items) == 0 {
		return nil, ErrMissingFields
	}

	var lines []domain.CartLine
	for _, it := range in.Items {
		if it.ID == 0 {
			continue
		}
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		lines = append(lines, domain.CartLine{WatchID: it.ID, Quantity: qty, Price: it.Price})
	}

	return s.create(ctx, userID, location, phone, in.Latitude, in.Longitude, "", lines)
}

func (s *Service) create(ctx context.Context, userID *int64, location, phone string, lat, lon *float64, currency string, lines []domain.CartLine) (*domain.Order, error) {
	ord, err := s.orders.Create(ctx, orderrepo.CreateInput{
		UserID:    userID,
		Location:  location,
		Phone:     phone,
		Latitude:  lat,
		Longitude: lon,
		Currency:  currency,
		Items:     lines,
	})
	if err != nil {
		return nil, err
	}

	if userID != nil && s.users != nil {
		if err := s.users.UpdateContact(ctx, *userID, location, phone); err != nil {
			s.logger.Printf("update user %d contact: %v", *userID, err)
		}
	}

	// Notification happens before the caller clears the cart; a failure here
	// is logged and swallowed, never surfaced to the checkout.
	if s.notifier != nil {
		if err := s.notifier.OrderCreated(ctx, ord); err != nil {
			s.logger.Printf("notify order %d: %v", ord.ID, err)
		}
	}

	return ord, nil
}

func parseCoord(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
