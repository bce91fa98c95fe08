package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	models "storefront/internal/models"
)

// Ключи трёх записей
const (
	UsersKey          = "storefront.users"
	SellerProductsKey = "storefront.sellerProducts"
	SessionKey        = "storefront.currentUser"
)

// SellerProducts — товары продавцов по id продавца
type SellerProducts map[string][]models.Product

// Records — типизированный доступ к записям поверх Store.
// Каждая запись читается и пишется целиком.
type Records struct {
	st         Store
	sessionKey string
}

// NewRecords; пустой sessionKey означает SessionKey
func NewRecords(st Store, sessionKey string) *Records {
	if sessionKey == "" {
		sessionKey = SessionKey
	}
	return &Records{st: st, sessionKey: sessionKey}
}

func (r *Records) SessionKey() string { return r.sessionKey }

// Update выполняет fn над записями атомарно относительно других Update,
// если хранилище это умеет (Txer). Иначе fn просто вызывается.
func (r *Records) Update(ctx context.Context, fn func(tx *Records) error) error {
	txer, ok := r.st.(Txer)
	if !ok {
		return fn(r)
	}
	return txer.Tx(ctx, func(st Store) error {
		return fn(&Records{st: st, sessionKey: r.sessionKey})
	})
}

func (r *Records) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.load(ctx, UsersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *Records) SaveUsers(ctx context.Context, users []models.User) error {
	return r.save(ctx, UsersKey, users)
}

func (r *Records) SellerProducts(ctx context.Context) (SellerProducts, error) {
	sp := SellerProducts{}
	if err := r.load(ctx, SellerProductsKey, &sp); err != nil {
		return nil, err
	}
	if sp == nil {
		sp = SellerProducts{}
	}
	return sp, nil
}

func (r *Records) SaveSellerProducts(ctx context.Context, sp SellerProducts) error {
	return r.save(ctx, SellerProductsKey, sp)
}

// Session возвращает пользователя сессии; ErrNotFound если записи нет
func (r *Records) Session(ctx context.Context) (*models.User, error) {
	raw, err := r.st.Get(ctx, r.sessionKey)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", r.sessionKey, ErrCorrupt, err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("decode %s: %w: user without id", r.sessionKey, ErrCorrupt)
	}
	return &u, nil
}

func (r *Records) SaveSession(ctx context.Context, u models.User) error {
	return r.save(ctx, r.sessionKey, u)
}

func (r *Records) ClearSession(ctx context.Context) error {
	return r.st.Delete(ctx, r.sessionKey)
}

// load: отсутствующий ключ — пустая запись, не ошибка
func (r *Records) load(ctx context.Context, key string, dst any) error {
	raw, err := r.st.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w: %w", key, ErrCorrupt, err)
	}
	return nil
}

func (r *Records) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.st.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
