package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	models "storefront/internal/models"
)

func product(id int64, name, price string) models.Product {
	return models.Product{ID: id, Name: name, Price: decimal.RequireFromString(price)}
}

func TestAddSameProductKeepsOneLine(t *testing.T) {
	c := New()
	p := product(1, "Arduino", "24.99")
	for i := 0; i < 7; i++ {
		c.Add(p)
	}
	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 7 || c.Count() != 7 {
		t.Errorf("expected quantity 7, got %d (count %d)", lines[0].Quantity, c.Count())
	}
}

func TestTotal(t *testing.T) {
	c := New()
	c.Add(product(1, "A", "24.99"))
	b := product(2, "B", "12.50")
	c.Add(b)
	c.Add(b)

	want := decimal.RequireFromString("49.99")
	if !c.Total().Equal(want) {
		t.Errorf("Total = %s, want %s", c.Total(), want)
	}
	if c.DisplayTotal() != "49.99" {
		t.Errorf("DisplayTotal = %s", c.DisplayTotal())
	}
	if c.Count() != 3 {
		t.Errorf("Count = %d, want 3", c.Count())
	}
}

func TestTotalIsExact(t *testing.T) {
	c := New()
	p := product(1, "A", "0.1")
	for i := 0; i < 3; i++ {
		c.Add(p)
	}
	if !c.Total().Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("Total = %s, want 0.3", c.Total())
	}
	c.SetQuantity(1, 1)
	c.Add(product(2, "B", "0.005"))
	if c.Total().String() != "0.105" || c.DisplayTotal() != "0.11" {
		t.Errorf("Total = %s display %s", c.Total(), c.DisplayTotal())
	}
}

func TestSnapshotIsFrozen(t *testing.T) {
	c := New()
	p := product(1, "A", "10.00")
	c.Add(p)
	p.Price = decimal.RequireFromString("99.00")
	p.Name = "Renamed"
	c.Add(p)
	l, ok := c.Line(1)
	if !ok {
		t.Fatal("line missing")
	}
	if l.Name != "A" || !l.Price.Equal(decimal.RequireFromString("10")) || l.Quantity != 2 {
		t.Errorf("snapshot changed: %+v", l)
	}
}

func TestNonPositiveQuantityRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		withUpdate := New()
		withRemove := New()
		for _, c := range []*Cart{withUpdate, withRemove} {
			c.Add(product(1, "A", "1"))
			c.Add(product(2, "B", "2"))
		}
		withUpdate.SetQuantity(1, qty)
		withRemove.Remove(1)
		got, want := withUpdate.Lines(), withRemove.Lines()
		if len(got) != 1 || len(want) != 1 || got[0].ProductID != want[0].ProductID || got[0].Quantity != want[0].Quantity {
			t.Errorf("SetQuantity(1, %d) differs from Remove(1): %+v vs %+v", qty, withUpdate.Lines(), withRemove.Lines())
		}
	}
}

func TestSetQuantityIsAbsolute(t *testing.T) {
	c := New()
	c.Add(product(1, "A", "1"))
	c.Add(product(1, "A", "1"))
	if !c.SetQuantity(1, 5) {
		t.Fatal("SetQuantity returned false")
	}
	if l, _ := c.Line(1); l.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", l.Quantity)
	}
	if c.SetQuantity(42, 3) {
		t.Error("SetQuantity on missing line must be a no-op")
	}
	if len(c.Lines()) != 1 {
		t.Error("missing line must not be created")
	}
}

func TestRemoveMissing(t *testing.T) {
	c := New()
	c.Add(product(1, "A", "1"))
	if c.Remove(2) {
		t.Error("Remove of missing line returned true")
	}
	c.Clear()
	if c.Count() != 0 || len(c.Lines()) != 0 || !c.Total().IsZero() {
		t.Error("Clear left data behind")
	}
}

func TestLinesIsCopy(t *testing.T) {
	c := New()
	c.Add(product(1, "A", "1"))
	lines := c.Lines()
	lines[0].Quantity = 100
	if l, _ := c.Line(1); l.Quantity != 1 {
		t.Error("Lines exposed internal state")
	}
}
