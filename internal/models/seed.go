package models

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	ID          int64   `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       string  `yaml:"price"`
	Category    string  `yaml:"category"`
	Icon        string  `yaml:"icon"`
	Seller      string  `yaml:"seller"`
	Rating      float64 `yaml:"rating"`
	Stock       int     `yaml:"stock"`
}

// DefaultSeed — встроенный каталог из seed.yaml
func DefaultSeed() []Product {
	items, err := ParseSeed(defaultSeed)
	if err != nil {
		panic(fmt.Sprintf("models: bad embedded seed: %v", err))
	}
	return items
}

// LoadSeedFile читает каталог из yaml-файла
func LoadSeedFile(path string) ([]Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return ParseSeed(raw)
}

// ParseSeed разбирает yaml каталога и проверяет каждую запись
func ParseSeed(raw []byte) ([]Product, error) {
	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	seen := make(map[int64]bool, len(sf.Products))
	out := make([]Product, 0, len(sf.Products))
	for i, sp := range sf.Products {
		if sp.ID <= 0 || seen[sp.ID] {
			return nil, fmt.Errorf("seed product #%d: bad or duplicate id %d", i, sp.ID)
		}
		seen[sp.ID] = true
		price, err := decimal.NewFromString(sp.Price)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("seed product %d: bad price %q", sp.ID, sp.Price)
		}
		cat, ok := ParseCategory(sp.Category)
		if !ok {
			return nil, fmt.Errorf("seed product %d: unknown category %q", sp.ID, sp.Category)
		}
		if sp.Rating < 0 || sp.Rating > 5 || sp.Stock < 0 {
			return nil, fmt.Errorf("seed product %d: rating or stock out of range", sp.ID)
		}
		out = append(out, Product{
			ID:          sp.ID,
			Name:        sp.Name,
			Description: sp.Description,
			Price:       price,
			Category:    cat,
			Icon:        sp.Icon,
			Seller:      sp.Seller,
			Rating:      sp.Rating,
			Stock:       sp.Stock,
		})
	}
	return out, nil
}
