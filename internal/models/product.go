package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category — категория товара
type Category string

const (
	CategoryAll              Category = "all" // фильтр "все"
	CategoryMicrocontrollers Category = "microcontrollers"
	CategorySensors          Category = "sensors"
	CategoryDisplays         Category = "displays"
	CategoryModules          Category = "modules"
	CategoryComponents       Category = "components"
	CategoryTools            Category = "tools"
)

// Categories — фиксированный набор категорий (без "all")
var Categories = []Category{
	CategoryMicrocontrollers,
	CategorySensors,
	CategoryDisplays,
	CategoryModules,
	CategoryComponents,
	CategoryTools,
}

// ParseCategory принимает строку из формы
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// MaxImages — сколько картинок может быть у товара
const MaxImages = 5

// Product — товар каталога. SellerID пустой у встроенных товаров.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Icon        string          `json:"icon,omitempty"`
	Seller      string          `json:"seller,omitempty"`
	SellerID    string          `json:"sellerId,omitempty"`
	Rating      float64         `json:"rating"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// BuiltIn — встроенный товар (не принадлежит продавцу)
func (p Product) BuiltIn() bool { return p.SellerID == "" }

// Matches — регистронезависимый поиск по имени, описанию и категории
func (p Product) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(string(p.Category)), term)
}

// Clone копирует товар вместе со слайсом картинок
func (p Product) Clone() Product {
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	return p
}
