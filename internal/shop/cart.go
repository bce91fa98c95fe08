package shop

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/cart"
)

// AddToCart: неизвестный товар — no-op с уведомлением, не ошибка
func (a *App) AddToCart(ctx context.Context, productID int64) error {
	p, err := a.Product(ctx, productID)
	if IsNotFound(err) {
		a.notify(SeverityError, err.Error())
		return nil
	}
	if err != nil {
		return err
	}
	a.cart.Add(p)
	a.notify(SeveritySuccess, fmt.Sprintf("%s added to cart!", p.Name))
	return nil
}

// UpdateQuantity ставит количество; qty <= 0 равносильно удалению
func (a *App) UpdateQuantity(productID int64, qty int) {
	a.cart.SetQuantity(productID, qty)
}

func (a *App) RemoveFromCart(productID int64) {
	a.cart.Remove(productID)
}

func (a *App) CartLines() []cart.Line { return a.cart.Lines() }

func (a *App) CartCount() int { return a.cart.Count() }

func (a *App) CartTotal() decimal.Decimal { return a.cart.Total() }

func (a *App) CartDisplayTotal() string { return a.cart.DisplayTotal() }
