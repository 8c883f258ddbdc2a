package recommend

import (
	"math"
	"testing"
)

func TestProjectionArithmeticConsistency(t *testing.T) {
	p := CalculateProjection(75000, 32, 2, "Endowment")

	if math.Abs(p.MonthlyPremium*12-p.AnnualPremium) > 1e-6 {
		t.Errorf("monthly*12 = %f, annual = %f", p.MonthlyPremium*12, p.AnnualPremium)
	}
	if math.Abs(p.AnnualPremium/365-p.DailyPremium) > 1e-6 {
		t.Errorf("annual/365 = %f, daily = %f", p.AnnualPremium/365, p.DailyPremium)
	}
}

func TestProjectionPercentage(t *testing.T) {
	tests := []struct {
		name       string
		age        int
		dependents int
		wantPct    float64
	}{
		{name: "base case young no dependents", age: 25, dependents: 0, wantPct: 0.10},
		{name: "dependents add 2pct each", age: 30, dependents: 2, wantPct: 0.14},
		{name: "age over 30 adds per year", age: 40, dependents: 0, wantPct: 0.11},
		{name: "clamped at 15pct", age: 80, dependents: 10, wantPct: 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CalculateProjection(50000, tt.age, tt.dependents, "Endowment")
			if math.Abs(p.PremiumPercentage-tt.wantPct) > 1e-9 {
				t.Errorf("percentage = %f, want %f", p.PremiumPercentage, tt.wantPct)
			}
		})
	}
}

func TestCategoryFactor(t *testing.T) {
	tests := []struct {
		category string
		want     float64
	}{
		{"Term Assurance", 0.3},
		{"TERM plan", 0.3},
		{"ULIP", 1.2},
		{"Unit Linked Investment", 1.2},
		{"Endowment", 1.0},
		{"", 1.0},
	}

	for _, tt := range tests {
		if got := categoryFactor(tt.category); got != tt.want {
			t.Errorf("categoryFactor(%q) = %f, want %f", tt.category, got, tt.want)
		}
	}
}

func TestAffordabilityBucketBoundaries(t *testing.T) {
	income := 100000

	tests := []struct {
		name    string
		premium float64
		want    string
	}{
		{name: "exactly 10pct is Excellent", premium: 10000, want: "Excellent"},
		{name: "just above 10pct is Good", premium: 10001, want: "Good"},
		{name: "exactly 15pct is Good", premium: 15000, want: "Good"},
		{name: "exactly 20pct is Moderate", premium: 20000, want: "Moderate"},
		{name: "above 20pct is High", premium: 25000, want: "High"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := affordabilityBucket(tt.premium, income); got != tt.want {
				t.Errorf("bucket = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProjectionLifeCover(t *testing.T) {
	p := CalculateProjection(50000, 35, 2, "Endowment")
	// annual income 600000 x (8 + 2*2)
	want := 600000.0 * 12
	if p.RecommendedLifeCover != want {
		t.Errorf("life cover = %f, want %f", p.RecommendedLifeCover, want)
	}
}

func TestProjectionClampsNegativeInputs(t *testing.T) {
	p := CalculateProjection(-5000, -3, -1, "Term")
	if p.AnnualPremium != 0 || p.RecommendedLifeCover != 0 {
		t.Errorf("negative inputs should clamp to zero projections, got %+v", p)
	}
	if p.AffordabilityBucket != "High" {
		t.Errorf("zero income bucket = %q, want High", p.AffordabilityBucket)
	}
}
