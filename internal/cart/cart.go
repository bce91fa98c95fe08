// Package cart — корзина на время сессии. Не сохраняется.
package cart

import (
	"github.com/shopspring/decimal"

	models "storefront/internal/models"
)

// Line — строка корзины: снимок товара на момент добавления + количество
type Line struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Icon      string          `json:"icon,omitempty"`
	Seller    string          `json:"seller,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Subtotal = цена * количество, без округления
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart хранит строки в порядке добавления, не более одной на товар
type Cart struct {
	lines []Line
}

func New() *Cart { return &Cart{} }

// Add увеличивает количество на 1 или добавляет строку со снимком товара
func (c *Cart) Add(p models.Product) Line {
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity++
		return c.lines[i]
	}
	l := Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Icon:      p.Icon,
		Seller:    p.Seller,
		Quantity:  1,
	}
	c.lines = append(c.lines, l)
	return l
}

// SetQuantity ставит количество; qty <= 0 удаляет строку.
// false — строки с таким товаром нет.
func (c *Cart) SetQuantity(productID int64, qty int) bool {
	if qty <= 0 {
		return c.Remove(productID)
	}
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.lines[i].Quantity = qty
	return true
}

// Remove удаляет строку, если она есть
func (c *Cart) Remove(productID int64) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// Line возвращает строку по товару
func (c *Cart) Line(productID int64) (Line, bool) {
	if i := c.index(productID); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Lines — копия строк
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Count — сумма количеств
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total — точная сумма
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// DisplayTotal — сумма для показа, два знака
func (c *Cart) DisplayTotal() string {
	return c.Total().StringFixed(2)
}

func (c *Cart) Clear() { c.lines = nil }

func (c *Cart) index(productID int64) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
