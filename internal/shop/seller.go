package shop

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/images"
	models "storefront/internal/models"
	"storefront/internal/store"
)

const (
	defaultIcon   = "fas fa-box"
	initialRating = 5.0
)

// ProductForm — поля формы нового товара. Цена и остаток приходят
// строками; мусор и отрицательные значения отклоняются.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	Category    string
	Stock       string
	Icon        string
}

func (a *App) requireUser() (*models.User, error) {
	if a.user == nil {
		return nil, a.fail(newError(ErrAuth, "Please log in as a seller first"))
	}
	return a.user, nil
}

// AddProduct добавляет товар текущему продавцу с картинками из буфера
// выбора и очищает буфер.
func (a *App) AddProduct(ctx context.Context, f ProductForm) (models.Product, error) {
	u, err := a.requireUser()
	if err != nil {
		return models.Product{}, err
	}
	p, err := parseProductForm(f)
	if err != nil {
		return models.Product{}, a.fail(err)
	}

	created := a.now()
	p.Rating = initialRating
	p.Seller = u.BusinessName
	p.SellerID = u.ID
	p.Images = a.images.Items()
	p.CreatedAt = created.UTC()

	err = a.records.Update(ctx, func(tx *store.Records) error {
		sp, err := tx.SellerProducts(ctx)
		if err != nil {
			return err
		}
		users, err := tx.Users(ctx)
		if err != nil {
			return err
		}
		p.ID = a.nextProductID(created.UnixMilli(), merge(a.seed, users, sp))
		sp[u.ID] = append(sp[u.ID], p)
		return tx.SaveSellerProducts(ctx, sp)
	})
	if err != nil {
		return models.Product{}, err
	}
	a.lastID = p.ID
	a.images.Clear()
	a.notify(SeveritySuccess, "Product added successfully!")
	return p.Clone(), nil
}

// nextProductID — id из времени создания, строго больше всех известных
func (a *App) nextProductID(ms int64, catalog []models.Product) int64 {
	id := ms
	if id <= a.lastID {
		id = a.lastID + 1
	}
	for _, p := range catalog {
		if p.ID >= id {
			id = p.ID + 1
		}
	}
	return id
}

func parseProductForm(f ProductForm) (models.Product, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return models.Product{}, newError(ErrValidation, "Product name is required")
	}
	cat, ok := models.ParseCategory(f.Category)
	if !ok {
		return models.Product{}, newError(ErrValidation, "Unknown category %q", f.Category)
	}
	price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(f.Price), ",", "."))
	if err != nil || price.IsNegative() {
		return models.Product{}, newError(ErrValidation, "Price must be a non-negative number")
	}
	stock, err := strconv.Atoi(strings.TrimSpace(f.Stock))
	if err != nil || stock < 0 {
		return models.Product{}, newError(ErrValidation, "Stock must be a non-negative whole number")
	}
	icon := strings.TrimSpace(f.Icon)
	if icon == "" {
		icon = defaultIcon
	}
	return models.Product{
		Name:        name,
		Description: strings.TrimSpace(f.Description),
		Price:       price,
		Category:    cat,
		Stock:       stock,
		Icon:        icon,
	}, nil
}

// SellerProducts — товары текущего продавца
func (a *App) SellerProducts(ctx context.Context) ([]models.Product, error) {
	u, err := a.requireUser()
	if err != nil {
		return nil, err
	}
	sp, err := a.records.SellerProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(sp[u.ID]))
	for _, p := range sp[u.ID] {
		out = append(out, p.Clone())
	}
	return out, nil
}

// UpdateStock меняет остаток только у своего товара. Чужой или
// неизвестный id — тихий no-op.
func (a *App) UpdateStock(ctx context.Context, productID int64, stock int) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	if stock < 0 {
		return a.fail(newError(ErrValidation, "Stock must be a non-negative whole number"))
	}
	found := false
	err = a.records.Update(ctx, func(tx *store.Records) error {
		sp, err := tx.SellerProducts(ctx)
		if err != nil {
			return err
		}
		own := sp[u.ID]
		for i := range own {
			if own[i].ID == productID {
				own[i].Stock = stock
				found = true
				return tx.SaveSellerProducts(ctx, sp)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if found {
		a.notify(SeveritySuccess, "Stock updated")
	}
	return nil
}

// DeleteProduct удаляет только из своего списка; иначе no-op
func (a *App) DeleteProduct(ctx context.Context, productID int64) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}
	found := false
	err = a.records.Update(ctx, func(tx *store.Records) error {
		sp, err := tx.SellerProducts(ctx)
		if err != nil {
			return err
		}
		own := sp[u.ID]
		for i := range own {
			if own[i].ID == productID {
				sp[u.ID] = append(own[:i:i], own[i+1:]...)
				found = true
				return tx.SaveSellerProducts(ctx, sp)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if found {
		a.notify(SeveritySuccess, "Product deleted")
	}
	return nil
}

// SelectImage кладёт готовый payload в буфер выбора
func (a *App) SelectImage(payload string) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}
	if err := a.images.Add(payload); err != nil {
		if errors.Is(err, images.ErrFull) {
			return a.fail(newError(ErrCapacity, "Maximum %d images allowed", a.images.Cap()))
		}
		return a.fail(err)
	}
	return nil
}

// SelectImageFile кодирует файл в data URL и кладёт в буфер
func (a *App) SelectImageFile(data []byte) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}
	if a.images.Len() >= a.images.Cap() {
		return a.fail(newError(ErrCapacity, "Maximum %d images allowed", a.images.Cap()))
	}
	payload, err := images.Encode(data)
	if err != nil {
		return a.fail(newError(ErrValidation, "%s", imageErrorMessage(err)))
	}
	return a.SelectImage(payload)
}

func imageErrorMessage(err error) string {
	switch {
	case errors.Is(err, images.ErrTooLarge):
		return "Image is too large"
	case errors.Is(err, images.ErrEmpty):
		return "Image file is empty"
	default:
		return "Please select a PNG, JPEG, WebP or GIF image"
	}
}

// RemoveImage убирает картинку из буфера по индексу
func (a *App) RemoveImage(i int) error {
	if err := a.images.Remove(i); err != nil {
		return a.fail(newError(ErrNotFound, "No image at position %d", i))
	}
	return nil
}

// Images — текущее содержимое буфера выбора
func (a *App) Images() []string { return a.images.Items() }

// CancelProductForm сбрасывает буфер выбора
func (a *App) CancelProductForm() { a.images.Clear() }
