package recommend

import (
	"testing"

	"insurance-advisor-be/internal/entity"
)

func TestTranslate(t *testing.T) {
	tr := NewTranslator(DefaultConfig())

	tests := []struct {
		name       string
		profile    entity.UserProfile
		wantText   string
		wantHasAge bool
	}{
		{
			name: "full profile",
			profile: entity.UserProfile{
				Age:         32,
				PrimaryGoal: "child_education",
				RiskComfort: "moderate",
				LifeStage:   "young_family",
			},
			wantText: "child education money back survival benefits " +
				"money back survival benefits balanced " +
				"family protection child benefits",
			wantHasAge: true,
		},
		{
			name: "unknown enums degrade to empty phrases",
			profile: entity.UserProfile{
				Age:         40,
				PrimaryGoal: "world_domination",
				RiskComfort: "reckless",
				LifeStage:   "immortal",
			},
			wantText:   "",
			wantHasAge: true,
		},
		{
			name: "missing age yields no filter",
			profile: entity.UserProfile{
				PrimaryGoal: "tax_saving",
			},
			wantText:   "tax benefits section 80C deductions",
			wantHasAge: false,
		},
		{
			name:       "empty profile",
			profile:    entity.UserProfile{},
			wantText:   "",
			wantHasAge: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tr.Translate(tt.profile)
			if q.Text != tt.wantText {
				t.Errorf("text = %q, want %q", q.Text, tt.wantText)
			}
			if q.HasAge != tt.wantHasAge {
				t.Errorf("hasAge = %v, want %v", q.HasAge, tt.wantHasAge)
			}
			if tt.wantHasAge && q.Age != tt.profile.Age {
				t.Errorf("age = %d, want %d", q.Age, tt.profile.Age)
			}
		})
	}
}

func TestAppropriatenessFlags(t *testing.T) {
	childPlan := &entity.Policy{Name: "New Children's Money Back Plan"}
	pensionPlan := &entity.Policy{Name: "Jeevan Shanti Pension Plan"}
	termPlan := &entity.Policy{Name: "Tech Term"}

	tests := []struct {
		name    string
		policy  *entity.Policy
		profile entity.UserProfile
		want    []string
	}{
		{
			name:    "child plan without dependents",
			policy:  childPlan,
			profile: entity.UserProfile{Age: 30, Dependents: 0},
			want:    []string{FlagChildPlanWithoutChildren},
		},
		{
			name:    "child plan for single",
			policy:  childPlan,
			profile: entity.UserProfile{Age: 30, Dependents: 1, LifeStage: "single"},
			want:    []string{FlagChildPlanWithoutChildren},
		},
		{
			name:    "child plan with dependents ok",
			policy:  childPlan,
			profile: entity.UserProfile{Age: 30, Dependents: 2, LifeStage: "young_family"},
			want:    []string{},
		},
		{
			name:    "pension plan too young",
			policy:  pensionPlan,
			profile: entity.UserProfile{Age: 22},
			want:    []string{FlagPensionPlanTooYoung},
		},
		{
			name:    "pension plan at 25 ok",
			policy:  pensionPlan,
			profile: entity.UserProfile{Age: 25},
			want:    []string{},
		},
		{
			name:    "term plan never flagged",
			policy:  termPlan,
			profile: entity.UserProfile{Age: 22, Dependents: 0, LifeStage: "single"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppropriatenessFlags(tt.policy, tt.profile)
			if len(got) != len(tt.want) {
				t.Fatalf("flags = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("flags = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
