// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package transactions

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func TestSeasonOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		month time.Month
		want  Season
	}{
		{time.January, Winter},
		{time.February, Winter},
		{time.March, Spring},
		{time.May, Spring},
		{time.June, Summer},
		{time.August, Summer},
		{time.September, Fall},
		{time.November, Fall},
		{time.December, Winter},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			t.Parallel()
			if got := SeasonOf(tt.month); got != tt.want {
				t.Errorf("SeasonOf(%v) = %v, want %v", tt.month, got, tt.want)
			}
		})
	}
}

func TestRow_CalendarFeatures(t *testing.T) {
	t.Parallel()

	r := NewRow(9, "Backpack", time.Date(2024, time.July, 4, 18, 30, 0, 0, time.UTC))
	if r.Year() != 2024 || r.Month() != time.July {
		t.Errorf("year/month = %d/%v", r.Year(), r.Month())
	}
	if r.DayOfWeek() != time.Thursday {
		t.Errorf("DayOfWeek() = %v, want Thursday", r.DayOfWeek())
	}
	if r.Season() != Summer {
		t.Errorf("Season() = %v, want Summer", r.Season())
	}
	if r.DateKey() != "2024-07-04" {
		t.Errorf("DateKey() = %q", r.DateKey())
	}
	if r.Date.Hour() != 0 {
		t.Error("NewRow should truncate to the calendar day")
	}
}

func TestDataset_Baskets(t *testing.T) {
	t.Parallel()

	ds := NewDataset(fixtureRows(t))
	baskets := ds.Baskets()

	want := []struct {
		customer int
		products []string
	}{
		{1, []string{"White T-shirt", "Blue Jeans"}},
		{2, []string{"White T-shirt", "Blue Jeans", "Sneakers"}},
		{3, []string{"Sneakers", "Sunglasses"}},
		{1, []string{"Sunglasses"}},
		{4, []string{"Hoodie"}},
	}

	if len(baskets) != len(want) {
		t.Fatalf("len(Baskets()) = %d, want %d", len(baskets), len(want))
	}
	for i, w := range want {
		if baskets[i].CustomerID != w.customer {
			t.Errorf("baskets[%d].CustomerID = %d, want %d", i, baskets[i].CustomerID, w.customer)
		}
		if !reflect.DeepEqual(baskets[i].Products, w.products) {
			t.Errorf("baskets[%d].Products = %v, want %v", i, baskets[i].Products, w.products)
		}
	}
}

func TestDataset_BasketsFirstOccurrenceOrder(t *testing.T) {
	t.Parallel()

	ds := NewDataset([]Row{
		NewRow(9, "A", day(t, "2024-01-05")),
		NewRow(9, "B", day(t, "2024-01-05")),
		NewRow(1, "C", day(t, "2024-01-05")),
		NewRow(1, "D", day(t, "2024-01-05")),
		NewRow(9, "E", day(t, "2024-01-01")),
		NewRow(9, "F", day(t, "2024-01-01")),
	})

	want := []struct {
		customer int
		date     string
	}{
		{9, "2024-01-05"},
		{1, "2024-01-05"},
		{9, "2024-01-01"},
	}
	baskets := ds.Baskets()
	if len(baskets) != len(want) {
		t.Fatalf("len(Baskets()) = %d, want %d", len(baskets), len(want))
	}
	for i, w := range want {
		if baskets[i].CustomerID != w.customer || !baskets[i].Date.Equal(day(t, w.date)) {
			t.Errorf("baskets[%d] = (%d, %s), want (%d, %s)", i,
				baskets[i].CustomerID, baskets[i].Date.Format(DateLayout), w.customer, w.date)
		}
	}

	if got := ds.MiningBaskets(1); !reflect.DeepEqual(got, [][]string{{"A", "B"}}) {
		t.Errorf("MiningBaskets(1) = %v, want [[A B]]", got)
	}
}

func TestDataset_MiningBaskets(t *testing.T) {
	t.Parallel()

	ds := NewDataset(fixtureRows(t))

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"no limit", 0, 3},
		{"limit above count", DefaultMaxBaskets, 3},
		{"truncated", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ds.MiningBaskets(tt.limit)
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			for _, b := range got {
				if len(b) <= 1 {
					t.Errorf("single-item basket %v should be excluded", b)
				}
			}
		})
	}
}

func TestDataset_CustomerProductMatrix(t *testing.T) {
	t.Parallel()

	rows := append(fixtureRows(t), NewRow(1, "White T-shirt", day(t, "2024-02-01")))
	m := NewDataset(rows).CustomerProductMatrix()

	if !reflect.DeepEqual(m.Customers, []int{1, 2, 3, 4}) {
		t.Errorf("Customers = %v", m.Customers)
	}
	wantProducts := []string{"Blue Jeans", "Hoodie", "Sneakers", "Sunglasses", "White T-shirt"}
	if !reflect.DeepEqual(m.Products, wantProducts) {
		t.Errorf("Products = %v, want %v", m.Products, wantProducts)
	}

	i, _ := m.CustomerIndex(1)
	j, _ := m.ProductIndex("White T-shirt")
	if m.Counts[i][j] != 2 {
		t.Errorf("count(1, White T-shirt) = %v, want 2", m.Counts[i][j])
	}
	k, _ := m.ProductIndex("Hoodie")
	if m.Counts[i][k] != 0 {
		t.Errorf("count(1, Hoodie) = %v, want 0", m.Counts[i][k])
	}
	if _, ok := m.CustomerIndex(99); ok {
		t.Error("unknown customer should not resolve")
	}
}

func TestMatrix_Add(t *testing.T) {
	t.Parallel()

	m := NewMatrix([]int{1, 2}, []string{"A", "B"})
	m.Add(1, "A", 1)
	m.Add(1, "A", 2)
	m.Add(3, "A", 1)
	m.Add(2, "Z", 1)

	want := [][]float64{{3, 0}, {0, 0}}
	if !reflect.DeepEqual(m.Counts, want) {
		t.Errorf("Counts = %v, want %v", m.Counts, want)
	}
}

func TestDataset_Fingerprint(t *testing.T) {
	t.Parallel()

	a := NewDataset(fixtureRows(t))
	b := NewDataset(fixtureRows(t))
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("equal rows should produce equal fingerprints")
	}

	rows := fixtureRows(t)
	rows[0].Product = "Hoodie"
	c := NewDataset(rows)
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("changed rows should change the fingerprint")
	}
}

func TestDataset_ProductStatistics(t *testing.T) {
	t.Parallel()

	stats, err := NewDataset(fixtureRows(t)).ProductStatistics()
	if err != nil {
		t.Fatalf("ProductStatistics() error = %v", err)
	}
	if len(stats) != 5 {
		t.Fatalf("len = %d, want 5", len(stats))
	}

	// Ties on total purchases break by name.
	wantOrder := []string{"Blue Jeans", "Sneakers", "Sunglasses", "White T-shirt", "Hoodie"}
	for i, name := range wantOrder {
		if stats[i].Product != name {
			t.Errorf("stats[%d].Product = %q, want %q", i, stats[i].Product, name)
		}
	}

	sunglasses := stats[2]
	if sunglasses.TotalPurchases != 2 || sunglasses.UniqueCustomers != 2 {
		t.Errorf("sunglasses = %+v", sunglasses)
	}
	if sunglasses.AvgPurchasesPerCustomer != 1 {
		t.Errorf("AvgPurchasesPerCustomer = %v, want 1", sunglasses.AvgPurchasesPerCustomer)
	}
	// 4 distinct purchase days in the fixture.
	if math.Abs(sunglasses.PurchaseFrequency-0.5) > 1e-9 {
		t.Errorf("PurchaseFrequency = %v, want 0.5", sunglasses.PurchaseFrequency)
	}
	if !sunglasses.FirstPurchase.Equal(day(t, "2024-06-10")) || !sunglasses.LastPurchase.Equal(day(t, "2024-07-01")) {
		t.Errorf("purchase range = %v..%v", sunglasses.FirstPurchase, sunglasses.LastPurchase)
	}
	for _, s := range stats {
		if s.UniqueCustomers <= 0 {
			t.Errorf("%s has no customers", s.Product)
		}
	}
}

func TestDataset_CustomerActivity(t *testing.T) {
	t.Parallel()

	activity := NewDataset(fixtureRows(t)).CustomerActivity()
	if len(activity) != 4 {
		t.Fatalf("len = %d, want 4", len(activity))
	}

	c1 := activity[0]
	if c1.CustomerID != 1 || c1.TotalPurchases != 3 || c1.ActiveDays != 2 {
		t.Errorf("customer 1 = %+v", c1)
	}
	if c1.AvgPurchasesPerDay != 1.5 {
		t.Errorf("AvgPurchasesPerDay = %v, want 1.5", c1.AvgPurchasesPerDay)
	}
}

func TestDataset_Seasonal(t *testing.T) {
	t.Parallel()

	ds := NewDataset(fixtureRows(t))
	counts := ds.SeasonalCounts()
	if counts[Winter]["White T-shirt"] != 2 {
		t.Errorf("winter white t-shirts = %d, want 2", counts[Winter]["White T-shirt"])
	}
	if counts[Summer]["Sunglasses"] != 2 {
		t.Errorf("summer sunglasses = %d, want 2", counts[Summer]["Sunglasses"])
	}

	share := ds.SeasonalShare()
	sneakers := share["Sneakers"]
	if sneakers[Winter] != 50 || sneakers[Summer] != 50 || sneakers[Fall] != 0 {
		t.Errorf("sneakers share = %v", sneakers)
	}
}

func TestDataset_DailySales(t *testing.T) {
	t.Parallel()

	sales := NewDataset(fixtureRows(t)).DailySales()
	if len(sales) != 4 {
		t.Fatalf("len = %d, want 4", len(sales))
	}
	if !sales[0].Date.Equal(day(t, "2024-01-05")) {
		t.Errorf("first day = %v", sales[0].Date)
	}
	if sales[0].Sales["Blue Jeans"] != 2 || sales[0].Sales["Hoodie"] != 0 {
		t.Errorf("first day sales = %v", sales[0].Sales)
	}
	if len(sales[3].Sales) != 5 {
		t.Errorf("every day should list every product, got %d", len(sales[3].Sales))
	}
}

func TestDataset_DateRange(t *testing.T) {
	t.Parallel()

	first, last := NewDataset(fixtureRows(t)).DateRange()
	if !first.Equal(day(t, "2024-01-05")) || !last.Equal(day(t, "2024-10-12")) {
		t.Errorf("DateRange() = %v, %v", first, last)
	}
}
