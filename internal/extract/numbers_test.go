package extract

import (
	"math"
	"testing"
)

func TestParseFigures_IndianGroupingWithSuffix(t *testing.T) {
	figures := ParseFigures("Loans to subsidiaries amounted to ₹ 12,34,56,789 Lakhs during the year.", 5)

	if len(figures) != 1 {
		t.Fatalf("Expected 1 figure, got %d", len(figures))
	}

	want := 123456789.0 * 1e5
	if figures[0].Value != want {
		t.Errorf("Expected normalized value %.0f, got %.0f", want, figures[0].Value)
	}
	if figures[0].Unit != "lakh" {
		t.Errorf("Expected unit lakh, got %q", figures[0].Unit)
	}
	if figures[0].Page != 5 {
		t.Errorf("Expected page 5, got %d", figures[0].Page)
	}
}

func TestParseFigures_CurrencyWithoutSuffix(t *testing.T) {
	figures := ParseFigures("M/s ABC Pvt Ltd — ₹5,00,00,000", 30)

	if len(figures) != 1 {
		t.Fatalf("Expected 1 figure, got %d", len(figures))
	}
	if figures[0].Value != 50000000 {
		t.Errorf("Expected 50000000, got %.0f", figures[0].Value)
	}
	if figures[0].Unit != "" {
		t.Errorf("Expected no unit, got %q", figures[0].Unit)
	}
}

func TestParseFigures_DecimalLakhs(t *testing.T) {
	figures := ParseFigures("Rent paid of Rs. 50.5 Lakhs under the lease.", 1)

	if len(figures) != 1 {
		t.Fatalf("Expected 1 figure, got %d", len(figures))
	}
	if math.Abs(figures[0].Value-5050000) > 0.001 {
		t.Errorf("Expected 5050000, got %f", figures[0].Value)
	}
}

func TestParseFigures_Crores(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"advances of 100 Crores were extended", 100 * 1e7},
		{"a guarantee of ₹1 Crore", 1e7},
		{"INR 2.5 crores payable", 2.5 * 1e7},
	}

	for _, c := range cases {
		figures := ParseFigures(c.text, 1)
		if len(figures) != 1 {
			t.Errorf("%q: expected 1 figure, got %d", c.text, len(figures))
			continue
		}
		if math.Abs(figures[0].Value-c.want) > 0.001 {
			t.Errorf("%q: expected %.0f, got %f", c.text, c.want, figures[0].Value)
		}
	}
}

func TestParseFigures_UngroupedNumbers(t *testing.T) {
	// Amounts written without comma grouping must be taken whole, not cut
	// short after the first three digits
	cases := []struct {
		text string
		want float64
	}{
		{"borrowings of Rs. 5000 Crores outstanding", 5000 * 1e7},
		{"a fee of 1234.56 Crores accrued", 1234.56 * 1e7},
		{"deposits of ₹ 50000000 with the associate", 50000000},
		{"INR 987654 receivable", 987654},
	}

	for _, c := range cases {
		figures := ParseFigures(c.text, 1)
		if len(figures) != 1 {
			t.Errorf("%q: expected 1 figure, got %d: %v", c.text, len(figures), figures)
			continue
		}
		if math.Abs(figures[0].Value-c.want) > 0.001 {
			t.Errorf("%q: expected %.2f, got %f", c.text, c.want, figures[0].Value)
		}
	}
}

func TestParseFigures_IgnoresBareNumbers(t *testing.T) {
	// Page numbers, years, and note references carry no currency marker
	// or magnitude suffix and must not become figures
	figures := ParseFigures("Refer Note 32 on page 187 of the 2024 annual report.", 1)

	if len(figures) != 0 {
		t.Errorf("Expected 0 figures from bare numbers, got %d: %v", len(figures), figures)
	}
}

func TestParseFigures_KeepsOriginalString(t *testing.T) {
	figures := ParseFigures("paid ₹ 12,34,567 to the promoter entity", 3)

	if len(figures) != 1 {
		t.Fatalf("Expected 1 figure, got %d", len(figures))
	}
	if figures[0].Raw != "₹ 12,34,567" {
		t.Errorf("Expected raw string preserved, got %q", figures[0].Raw)
	}
	if figures[0].Value != 1234567 {
		t.Errorf("Expected 1234567, got %.0f", figures[0].Value)
	}
}

func TestParseFigures_MultipleFigures(t *testing.T) {
	text := "Sales of ₹10,00,000 and purchases of 2 Crores from the associate."
	figures := ParseFigures(text, 7)

	if len(figures) != 2 {
		t.Fatalf("Expected 2 figures, got %d", len(figures))
	}
	if figures[0].Value != 1000000 {
		t.Errorf("Expected first figure 1000000, got %.0f", figures[0].Value)
	}
	if figures[1].Value != 2e7 {
		t.Errorf("Expected second figure 20000000, got %.0f", figures[1].Value)
	}
}
