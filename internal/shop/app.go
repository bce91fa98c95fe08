// Package shop — состояние витрины: каталог, корзина, сессия продавца и
// его товары. Всё состояние живёт в App; App не безопасен для
// конкурентного использования, вызовы сериализует вызывающий.
package shop

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"storefront/internal/cart"
	"storefront/internal/images"
	models "storefront/internal/models"
	"storefront/internal/store"
)

// App — контекст приложения одного посетителя
type App struct {
	records       *store.Records
	seed          []models.Product
	cart          *cart.Cart
	images        *images.Buffer
	user          *models.User
	notifier      Notifier
	hashPasswords bool
	now           func() time.Time
	newUserID     func() string
	lastID        int64
	sessionKey    string
}

type Option func(*App)

// WithSeed заменяет встроенный каталог
func WithSeed(items []models.Product) Option {
	return func(a *App) { a.seed = items }
}

func WithNotifier(n Notifier) Option {
	return func(a *App) { a.notifier = n }
}

// WithSessionKey — свой ключ записи сессии (по одному на посетителя)
func WithSessionKey(key string) Option {
	return func(a *App) { a.sessionKey = key }
}

// WithPasswordHashing — хранить bcrypt-хэш вместо пароля
func WithPasswordHashing(on bool) Option {
	return func(a *App) { a.hashPasswords = on }
}

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

func WithUserIDs(gen func() string) Option {
	return func(a *App) { a.newUserID = gen }
}

// New собирает App поверх хранилища. Сессию восстанавливает Restore.
func New(st store.Store, opts ...Option) *App {
	a := &App{
		cart:      cart.New(),
		images:    images.NewBuffer(models.MaxImages),
		notifier:  discard{},
		now:       time.Now,
		newUserID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.seed == nil {
		a.seed = models.DefaultSeed()
	}
	a.records = store.NewRecords(st, a.sessionKey)
	return a
}

// Restore поднимает сессию из хранилища. Нет записи или она не
// читается — посетитель остаётся анонимным.
func (a *App) Restore(ctx context.Context) error {
	u, err := a.records.Session(ctx)
	switch {
	case err == nil:
		a.user = u
	case errors.Is(err, store.ErrNotFound):
		a.user = nil
	case errors.Is(err, store.ErrCorrupt):
		log.Printf("shop: ignoring unreadable session %s: %v", a.records.SessionKey(), err)
		a.user = nil
	default:
		return err
	}
	return nil
}

// CurrentUser — пользователь сессии или nil
func (a *App) CurrentUser() *models.User {
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *App) Authenticated() bool { return a.user != nil }

// Idle — ни входа, ни корзины, ни выбранных картинок
func (a *App) Idle() bool {
	return a.user == nil && a.cart.Count() == 0 && a.images.Len() == 0
}

func (a *App) notify(sev Severity, msg string) {
	a.notifier.Notify(Notification{Message: msg, Severity: sev})
}

// fail отправляет уведомление об ошибке и возвращает её
func (a *App) fail(err error) error {
	a.notify(SeverityError, err.Error())
	return err
}
