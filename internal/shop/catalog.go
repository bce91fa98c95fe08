package shop

import (
	"context"
	"sort"

	models "storefront/internal/models"
	"storefront/internal/store"
)

// AllProducts собирает каталог заново при каждом вызове: сначала
// встроенные товары, потом продавцы в порядке регистрации, внутри
// продавца — в порядке добавления.
func (a *App) AllProducts(ctx context.Context) ([]models.Product, error) {
	users, err := a.records.Users(ctx)
	if err != nil {
		return nil, err
	}
	sp, err := a.records.SellerProducts(ctx)
	if err != nil {
		return nil, err
	}
	return merge(a.seed, users, sp), nil
}

func merge(seed []models.Product, users []models.User, sp store.SellerProducts) []models.Product {
	out := make([]models.Product, 0, len(seed))
	for _, p := range seed {
		out = append(out, p.Clone())
	}
	seen := make(map[string]bool, len(sp))
	for _, u := range users {
		seen[u.ID] = true
		for _, p := range sp[u.ID] {
			out = append(out, p.Clone())
		}
	}
	// списки без пользователя: порядок ключей map не задан, сортируем
	var orphans []string
	for id := range sp {
		if !seen[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		for _, p := range sp[id] {
			out = append(out, p.Clone())
		}
	}
	return out
}

// FilterByCategory; "all" возвращает весь каталог
func (a *App) FilterByCategory(ctx context.Context, cat models.Category) ([]models.Product, error) {
	all, err := a.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	if cat == models.CategoryAll {
		return all, nil
	}
	out := []models.Product{}
	for _, p := range all {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out, nil
}

// Search — подстрока без учёта регистра; пустой запрос — весь каталог
func (a *App) Search(ctx context.Context, term string) ([]models.Product, error) {
	all, err := a.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Product{}
	for _, p := range all {
		if p.Matches(term) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Product — карточка товара
func (a *App) Product(ctx context.Context, id int64) (models.Product, error) {
	all, err := a.AllProducts(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, newError(ErrNotFound, "Product not found")
}
