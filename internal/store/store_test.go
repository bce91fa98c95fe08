package store

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	models "storefront/internal/models"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	buf := []byte("v1")
	if err := s.Set(ctx, "k", buf); err != nil {
		t.Fatal(err)
	}
	buf[0] = 'x' // запись не должна зависеть от буфера вызывающего
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d keys", s.Len())
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("delete of missing key: %v", err)
	}
}

func TestUsersRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewRecords(NewMemoryStore(), "")

	empty, err := r.Users(ctx)
	if err != nil || len(empty) != 0 {
		t.Fatalf("fresh store: %v, %v", empty, err)
	}

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	users := []models.User{
		{ID: "u1", Email: "a@gmail.com", Password: "pw", BusinessName: "A", CreatedAt: created},
		{ID: "u2", Email: "b@gmail.com", Password: "pw2", BusinessName: "B", BusinessDescription: "parts", CreatedAt: created},
	}
	if err := r.SaveUsers(ctx, users); err != nil {
		t.Fatal(err)
	}
	loaded, err := r.Users(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(users, loaded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, users)
	}
}

func TestSellerProductsRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewRecords(NewMemoryStore(), "")
	sp := SellerProducts{
		"u1": {{ID: 10, Name: "Relay", Price: decimal.RequireFromString("3.10"), Category: models.CategoryModules, SellerID: "u1", Images: []string{"data:image/png;base64,AA=="}}},
		"u2": {},
	}
	if err := r.SaveSellerProducts(ctx, sp); err != nil {
		t.Fatal(err)
	}
	loaded, err := r.SellerProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	got := loaded["u1"][0]
	if got.Name != "Relay" || !got.Price.Equal(decimal.RequireFromString("3.1")) || len(got.Images) != 1 {
		t.Errorf("unexpected product: %+v", got)
	}
	if _, ok := loaded["u2"]; !ok {
		t.Error("empty seller list lost")
	}
}

func TestRecordsToleratesMissingFields(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	// старый формат: без images, createdAt и sellerId, цена числом
	_ = st.Set(ctx, SellerProductsKey, []byte(`{"u1":[{"id":5,"name":"Old","price":1.5,"category":"tools","stock":2}]}`))
	sp, err := NewRecords(st, "").SellerProducts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	p := sp["u1"][0]
	if p.Images != nil || !p.CreatedAt.IsZero() || !p.Price.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("unexpected decode: %+v", p)
	}
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	r := NewRecords(st, "custom.session")

	if _, err := r.Session(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := r.SaveSession(ctx, models.User{ID: "u1", Email: "a@gmail.com"}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Get(ctx, "custom.session"); err != nil {
		t.Fatalf("session key not used: %v", err)
	}
	u, err := r.Session(ctx)
	if err != nil || u.ID != "u1" {
		t.Fatalf("Session = %+v, %v", u, err)
	}

	_ = st.Set(ctx, "custom.session", []byte("{broken"))
	if _, err := r.Session(ctx); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
	if err := r.ClearSession(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Session(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after clear, got %v", err)
	}
}

func TestMemoryStoreTxSerializes(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Tx(ctx, func(tx Store) error {
				raw, err := tx.Get(ctx, "counter")
				if err != nil && !errors.Is(err, ErrNotFound) {
					return err
				}
				time.Sleep(time.Millisecond)
				return tx.Set(ctx, "counter", append(raw, 'x'))
			})
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	got, _ := s.Get(ctx, "counter")
	if len(got) != n {
		t.Errorf("counter = %d, want %d", len(got), n)
	}
}

// plainStore не умеет Tx
type plainStore struct{ Store }

func TestRecordsUpdate(t *testing.T) {
	ctx := context.Background()
	for name, st := range map[string]Store{
		"tx":    NewMemoryStore(),
		"plain": plainStore{NewMemoryStore()},
	} {
		r := NewRecords(st, "")
		err := r.Update(ctx, func(tx *Records) error {
			users, err := tx.Users(ctx)
			if err != nil {
				return err
			}
			return tx.SaveUsers(ctx, append(users, models.User{ID: "u1", Email: "a@gmail.com"}))
		})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		users, _ := r.Users(ctx)
		if len(users) != 1 || users[0].ID != "u1" {
			t.Errorf("%s: users = %+v", name, users)
		}
	}
}
