package shop

import (
	"testing"

	models "storefront/internal/models"
)

func TestAllProductsOrder(t *testing.T) {
	f := newFixture(t)
	f.seller(t, f.app, "s@gmail.com")
	f.seller(t, f.app, "t@gmail.com")

	f.login(t, f.app, "t@gmail.com")
	t1 := f.addProduct(t, f.app, "T-one", "1")
	f.login(t, f.app, "s@gmail.com")
	s1 := f.addProduct(t, f.app, "S-one", "2")
	s2 := f.addProduct(t, f.app, "S-two", "3")

	all, err := f.app.AllProducts(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{1, 2, 3, s1.ID, s2.ID, t1.ID}
	if len(all) != len(want) {
		t.Fatalf("expected %d products, got %d", len(want), len(all))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("position %d: got id %d, want %d", i, all[i].ID, id)
		}
	}
}

func TestOrphanSellerListsAreIncluded(t *testing.T) {
	f := newFixture(t)
	r := recordsOf(f)
	_ = r.SaveSellerProducts(f.ctx, map[string][]models.Product{
		"zz": {{ID: 200, Name: "Z", Category: models.CategoryTools}},
		"aa": {{ID: 100, Name: "A", Category: models.CategoryTools}},
	})
	all, err := f.app.AllProducts(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 || all[3].ID != 100 || all[4].ID != 200 {
		t.Errorf("unexpected orphan ordering: %+v", all)
	}
}

func TestFilterByCategory(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		cat  models.Category
		want int
	}{
		{models.CategoryAll, 3},
		{models.CategorySensors, 1},
		{models.CategoryTools, 0},
	}
	for _, c := range cases {
		got, err := f.app.FilterByCategory(f.ctx, c.cat)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != c.want {
			t.Errorf("FilterByCategory(%s): got %d products, want %d", c.cat, len(got), c.want)
		}
		if got == nil {
			t.Errorf("FilterByCategory(%s) returned nil slice", c.cat)
		}
	}
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	cases := map[string]int{
		"":          3,
		"   ":       3,
		"arduino":   1,
		"LCD":       1,
		"SENSORS":   1,
		"i2c":       1,
		"nonexist":  0,
		"precision": 1,
	}
	for term, want := range cases {
		got, err := f.app.Search(f.ctx, term)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != want {
			t.Errorf("Search(%q): got %d, want %d", term, len(got), want)
		}
	}
}

func TestProductLookup(t *testing.T) {
	f := newFixture(t)
	p, err := f.app.Product(f.ctx, 2)
	if err != nil || p.Name != "DHT22 Temperature & Humidity Sensor" {
		t.Fatalf("Product(2) = %+v, %v", p, err)
	}
	if _, err := f.app.Product(f.ctx, 99); !IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	f := newFixture(t)
	all, _ := f.app.AllProducts(f.ctx)
	all[0].Name = "changed"
	again, _ := f.app.AllProducts(f.ctx)
	if again[0].Name == "changed" {
		t.Error("catalog exposed seed data for mutation")
	}
}
