package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"timepiece-store/internal/domain"
	orderrepo "timepiece-store/internal/repository/order"
)

type stubOrderRepo struct {
	created    *orderrepo.CreateInput
	createdOut *domain.Order
	createErr  error
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateInput) (*domain.Order, error) {
	s.created = &in
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.createdOut != nil {
		return s.createdOut, nil
	}
	return &domain.Order{ID: 12, Status: domain.StatusWaiting}, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, _ int64, _ domain.Status) error {
	return nil
}

func (s *stubOrderRepo) ListSince(_ context.Context, _ time.Time, _ int) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) ListByUser(_ context.Context, _ int64) ([]domain.Order, error) {
	return nil, nil
}

type stubUserRepo struct {
	id       int64
	location string
	phone    string
	err      error
}

func (s *stubUserRepo) UpdateContact(_ context.Context, id int64, location, phone string) error {
	s.id = id
	s.location = location
	s.phone = phone
	return s.err
}

type stubNotifier struct {
	orders []*domain.Order
	err    error
}

func (s *stubNotifier) OrderCreated(_ context.Context, ord *domain.Order) error {
	s.orders = append(s.orders, ord)
	return s.err
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestSubmitCollectsAllErrors(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := &Service{orders: repo, logger: testLogger()}

	_, fieldErrs, err := svc.Submit(context.Background(), SubmitInput{
		Location:  "Tashkent, Chilonzor 5",
		Phone:     "  ",
		Latitude:  "not-a-number",
		Longitude: "69.28",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	for _, key := range []string{"cart", "phone", "map"} {
		if _, ok := fieldErrs[key]; !ok {
			t.Errorf("expected %q error, got %v", key, fieldErrs)
		}
	}
	if _, ok := fieldErrs["location"]; ok {
		t.Errorf("location was provided, got error anyway: %v", fieldErrs)
	}
	if repo.created != nil {
		t.Fatalf("no order may be created when validation fails")
	}
}

func TestSubmitEmptyCartNeverCreatesOrder(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := &Service{orders: repo, logger: testLogger()}

	_, fieldErrs, err := svc.Submit(context.Background(), SubmitInput{
		Location:  "Tashkent",
		Phone:     "+998901234567",
		Latitude:  "41.31",
		Longitude: "69.28",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, ok := fieldErrs["cart"]; !ok {
		t.Fatalf("expected cart error, got %v", fieldErrs)
	}
	if repo.created != nil {
		t.Fatalf("empty cart must never create an order")
	}
}

func TestSubmitCreatesOrderAndNotifies(t *testing.T) {
	repo := &stubOrderRepo{createdOut: &domain.Order{ID: 7, Status: domain.StatusWaiting}}
	users := &stubUserRepo{}
	notif := &stubNotifier{}
	svc := &Service{orders: repo, users: users, notifier: notif, logger: testLogger()}

	uid := int64(3)
	ord, fieldErrs, err := svc.Submit(context.Background(), SubmitInput{
		UserID: &uid,
		Lines: []domain.CartLine{
			{WatchID: 1, Quantity: 2, Price: 100},
			{WatchID: 2, Quantity: 1, Price: 50},
		},
		Location:  " Tashkent ",
		Phone:     "+998901234567",
		Latitude:  "41.31",
		Longitude: "69.28",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(fieldErrs) != 0 {
		t.Fatalf("unexpected field errors: %v", fieldErrs)
	}
	if ord == nil || ord.ID != 7 {
		t.Fatalf("unexpected order: %+v", ord)
	}

	if repo.created == nil {
		t.Fatalf("expected order creation")
	}
	if repo.created.Location != "Tashkent" {
		t.Errorf("location not trimmed: %q", repo.created.Location)
	}
	if repo.created.UserID == nil || *repo.created.UserID != 3 {
		t.Errorf("expected user attached, got %v", repo.created.UserID)
	}
	if repo.created.Latitude == nil || *repo.created.Latitude != 41.31 {
		t.Errorf("unexpected latitude: %v", repo.created.Latitude)
	}
	if len(repo.created.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(repo.created.Items))
	}

	if len(notif.orders) != 1 || notif.orders[0].ID != 7 {
		t.Fatalf("expected one notification for order 7, got %+v", notif.orders)
	}
	if users.id != 3 || users.location != "Tashkent" {
		t.Errorf("expected contact update for user 3, got %+v", users)
	}
}

func TestSubmitSwallowsNotifierFailure(t *testing.T) {
	repo := &stubOrderRepo{}
	notif := &stubNotifier{err: errors.New("telegram down")}
	svc := &Service{orders: repo, notifier: notif, logger: testLogger()}

	ord, fieldErrs, err := svc.Submit(context.Background(), SubmitInput{
		Lines:     []domain.CartLine{{WatchID: 1, Quantity: 1, Price: 100}},
		Location:  "Tashkent",
		Phone:     "+998901234567",
		Latitude:  "41.31",
		Longitude: "69.28",
	})
	if err != nil {
		t.Fatalf("notifier failure must not fail checkout: %v", err)
	}
	if len(fieldErrs) != 0 || ord == nil {
		t.Fatalf("expected a created order, got errs=%v ord=%+v", fieldErrs, ord)
	}
}

func TestCreateFromPayloadMissingFields(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := &Service{orders: repo, logger: testLogger()}

	lat, lon := 41.31, 69.28
	cases := []APIInput{
		{Phone: "+998", Latitude: &lat, Longitude: &lon, Items: []APIItem{{ID: 1}}},
		{Location: "T", Latitude: &lat, Longitude: &lon, Items: []APIItem{{ID: 1}}},
		{Location: "T", Phone: "+998", Longitude: &lon, Items: []APIItem{{ID: 1}}},
		{Location: "T", Phone: "+998", Latitude: &lat, Items: []APIItem{{ID: 1}}},
		{Location: "T", Phone: "+998", Latitude: &lat, Longitude: &lon},
	}
	for i, in := range cases {
		if _, err := svc.CreateFromPayload(context.Background(), in, nil); !errors.Is(err, ErrMissingFields) {
			t.Errorf("case %d: expected ErrMissingFields, got %v", i, err)
		}
	}
	if repo.created != nil {
		t.Fatalf("no order may be created from incomplete payloads")
	}
}

func TestCreateFromPayloadSkipsBadItems(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := &Service{orders: repo, logger: testLogger()}

	lat, lon := 41.31, 69.28
	_, err := svc.CreateFromPayload(context.Background(), APIInput{
		Location:  "Tashkent",
		Phone:     "+998901234567",
		Latitude:  &lat,
		Longitude: &lon,
		Items: []APIItem{
			{ID: 0, Price: 10, Quantity: 1},
			{ID: 5, Price: 100},
			{ID: 6, Price: 200, Quantity: 3},
		},
	}, nil)
	if err != nil {
		t.Fatalf("CreateFromPayload: %v", err)
	}
	if len(repo.created.Items) != 2 {
		t.Fatalf("expected the id-less item skipped, got %+v", repo.created.Items)
	}
	if repo.created.Items[0].Quantity != 1 {
		t.Errorf("missing quantity must default to 1, got %d", repo.created.Items[0].Quantity)
	}
	if repo.created.Items[1].WatchID != 6 || repo.created.Items[1].Quantity != 3 {
		t.Errorf("unexpected second item: %+v", repo.created.Items[1])
	}
}
