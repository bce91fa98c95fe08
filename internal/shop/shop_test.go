package shop

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	models "storefront/internal/models"
	"storefront/internal/store"
)

type fixture struct {
	ctx   context.Context
	st    *store.MemoryStore
	inbox *Inbox
	app   *App
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{ctx: context.Background(), st: store.NewMemoryStore(), inbox: &Inbox{}}
	f.app = f.open(opts...)
	return f
}

// open — новый App на том же хранилище, как после перезапуска
func (f *fixture) open(opts ...Option) *App {
	n := 0
	base := []Option{
		WithNotifier(f.inbox),
		WithClock(func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }),
		WithUserIDs(func() string { n++; return fmt.Sprintf("user-%d", n) }),
	}
	return New(f.st, append(base, opts...)...)
}

func (f *fixture) seller(t *testing.T, app *App, email string) models.User {
	t.Helper()
	u, err := app.Register(f.ctx, RegisterForm{
		Email: email, Password: "pw", ConfirmPassword: "pw", BusinessName: "Shop " + email,
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return u
}

func (f *fixture) login(t *testing.T, app *App, email string) {
	t.Helper()
	if _, err := app.Login(f.ctx, email, "pw"); err != nil {
		t.Fatalf("Login(%s): %v", email, err)
	}
}

func (f *fixture) addProduct(t *testing.T, app *App, name, price string) models.Product {
	t.Helper()
	p, err := app.AddProduct(f.ctx, ProductForm{Name: name, Price: price, Stock: "3", Category: "modules"})
	if err != nil {
		t.Fatalf("AddProduct(%s): %v", name, err)
	}
	return p
}

func lastNotification(t *testing.T, in *Inbox) Notification {
	t.Helper()
	items := in.Drain()
	if len(items) == 0 {
		t.Fatal("expected a notification")
	}
	return items[len(items)-1]
}

func mustDecimal(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func recordsOf(f *fixture) *store.Records { return store.NewRecords(f.st, "") }
