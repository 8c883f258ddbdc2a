package normalizer

import (
	"reflect"
	"testing"
)

func TestParseAgeRange(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantMin     int
		wantMax     int
		wantOutcome AgeParseOutcome
	}{
		{
			name:        "standard range with unit",
			input:       "18-65 years",
			wantMin:     18,
			wantMax:     65,
			wantOutcome: AgeParsed,
		},
		{
			name:        "range without unit",
			input:       "18-50",
			wantMin:     18,
			wantMax:     50,
			wantOutcome: AgeParsed,
		},
		{
			name:        "whitespace around parts",
			input:       "  8 - 60 years ",
			wantMin:     8,
			wantMax:     60,
			wantOutcome: AgeParsed,
		},
		{
			name:        "empty string",
			input:       "",
			wantMin:     0,
			wantMax:     100,
			wantOutcome: AgeMissing,
		},
		{
			name:        "literal nan",
			input:       "nan",
			wantMin:     0,
			wantMax:     100,
			wantOutcome: AgeMissing,
		},
		{
			name:        "not applicable",
			input:       "N/A",
			wantMin:     0,
			wantMax:     100,
			wantOutcome: AgeNoSeparator,
		},
		{
			name:        "single age no separator",
			input:       "18 years",
			wantMin:     0,
			wantMax:     100,
			wantOutcome: AgeNoSeparator,
		},
		{
			name:        "non-numeric min",
			input:       "eighteen-65 years",
			wantMin:     0,
			wantMax:     100,
			wantOutcome: AgeMinNotNumeric,
		},
		{
			name:        "non-numeric max",
			input:       "18-sixty years",
			wantMin:     0,
			wantMax:     100,
			wantOutcome: AgeMaxNotNumeric,
		},
		{
			name:        "missing max",
			input:       "18-",
			wantMin:     0,
			wantMax:     100,
			wantOutcome: AgeMaxNotNumeric,
		},
		{
			name:        "inverted range",
			input:       "65-18 years",
			wantMin:     0,
			wantMax:     100,
			wantOutcome: AgeInvertedRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, outcome := ParseAgeRange(tt.input)
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("ParseAgeRange(%q) = (%d, %d), want (%d, %d)", tt.input, min, max, tt.wantMin, tt.wantMax)
			}
			if outcome != tt.wantOutcome {
				t.Errorf("ParseAgeRange(%q) outcome = %d, want %d", tt.input, outcome, tt.wantOutcome)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "basic pipe split",
			input: "Death benefit | Maturity benefit | Loan facility",
			want:  []string{"Death benefit", "Maturity benefit", "Loan facility"},
		},
		{
			name:  "duplicates dropped keeping first order",
			input: "Tax benefit | Loan facility | Tax benefit",
			want:  []string{"Tax benefit", "Loan facility"},
		},
		{
			name:  "empty entries dropped",
			input: " | Death benefit | | ",
			want:  []string{"Death benefit"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
		{
			name:  "nan input",
			input: "nan",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePlanNumberFallback(t *testing.T) {
	raw := RawPolicyRecord{
		RowIndex:   7,
		PolicyName: "Some Plan",
		Category:   "Endowment",
		PlanNumber: "nan",
	}
	p := Normalize(raw)
	if p.PlanNumber != "unknown_7" {
		t.Errorf("PlanNumber = %q, want unknown_7", p.PlanNumber)
	}
	if p.Id != "endowment_unknown_7" {
		t.Errorf("Id = %q, want endowment_unknown_7", p.Id)
	}
}

func TestNormalizeCategoryDefault(t *testing.T) {
	p := Normalize(RawPolicyRecord{PolicyName: "X", PlanNumber: "914"})
	if p.Category != "Unknown" {
		t.Errorf("Category = %q, want Unknown", p.Category)
	}
}

func TestNormalizeUnparseableAgeIsOpenRange(t *testing.T) {
	p := Normalize(RawPolicyRecord{
		PolicyName:     "Jeevan Anand",
		Category:       "Endowment",
		PlanNumber:     "915",
		EligibilityAge: "N/A",
	})
	if p.EligibilityAgeMin != 0 || p.EligibilityAgeMax != 100 {
		t.Errorf("age range = [%d, %d], want [0, 100]", p.EligibilityAgeMin, p.EligibilityAgeMax)
	}
}

func TestCompletenessScore(t *testing.T) {
	full := RawPolicyRecord{
		PolicyName:        "Jeevan Labh",
		PlanNumber:        "936",
		UinNumber:         "512N304V02",
		FeaturesBenefits:  "Death benefit | Bonus",
		EligibilityAge:    "8-59 years",
		AgeLimit:          "up to 59",
		IncomeRequirement: "No minimum",
		PremiumOptions:    "Monthly | Annual",
		MaturityBenefits:  "Sum assured plus bonus",
		SurrenderClause:   "After 2 years",
		TaxBenefits:       "Section 80C",
		TermsConditions:   "15 to 25 year terms",
	}

	empty := RawPolicyRecord{}

	fullScore := Normalize(full).CompletenessScore
	emptyScore := Normalize(empty).CompletenessScore

	if fullScore != 1.0 {
		t.Errorf("full record score = %f, want 1.0", fullScore)
	}
	if emptyScore != 0 {
		t.Errorf("empty record score = %f, want 0", emptyScore)
	}

	// Age is one slot satisfied by either form: a range-only record is not
	// docked for the absent limit and vice versa.
	limitOnly := empty
	limitOnly.AgeLimit = "up to 65"
	rangeOnly := empty
	rangeOnly.EligibilityAge = "18-65 years"

	limitScore := Normalize(limitOnly).CompletenessScore
	rangeScore := Normalize(rangeOnly).CompletenessScore
	if limitScore == 0 {
		t.Error("age limit alone should contribute to completeness")
	}
	if rangeScore != limitScore {
		t.Errorf("range-only score %f should equal limit-only score %f", rangeScore, limitScore)
	}

	// A record missing only the age fields loses exactly the age weight.
	noAge := full
	noAge.EligibilityAge = ""
	noAge.AgeLimit = ""
	noAgeScore := Normalize(noAge).CompletenessScore
	if noAgeScore >= fullScore {
		t.Errorf("no-age score %f should be below full score %f", noAgeScore, fullScore)
	}
	if got := fullScore - noAgeScore; got < 0.1 || got > 0.15 {
		t.Errorf("age slot weight = %f, want 1.5/12.5", got)
	}
}

func TestNormalizeBatchDisambiguatesCollidingIds(t *testing.T) {
	records := []RawPolicyRecord{
		{PolicyName: "Jeevan Labh", Category: "Endowment", PlanNumber: "936"},
		{PolicyName: "Jeevan Labh (scraped twice)", Category: "Endowment", PlanNumber: "936"},
		{PolicyName: "Tech Term", Category: "Term Assurance", PlanNumber: "954"},
	}

	policies := NormalizeBatch(records)

	if policies[0].Id != "endowment_936" {
		t.Errorf("first id = %q, want endowment_936", policies[0].Id)
	}
	if policies[1].Id != "endowment_unknown_1" {
		t.Errorf("colliding row id = %q, want endowment_unknown_1", policies[1].Id)
	}

	seen := map[string]bool{}
	for _, p := range policies {
		if seen[p.Id] {
			t.Errorf("duplicate id %q in batch", p.Id)
		}
		seen[p.Id] = true
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	raw := RawPolicyRecord{
		RowIndex:         3,
		PolicyName:       "New Children's Money Back Plan",
		Category:         "Money Back",
		PlanNumber:       "932",
		EligibilityAge:   "0-12 years",
		FeaturesBenefits: "Survival benefits | Education support",
		PremiumOptions:   "Annual | Half-yearly",
	}

	a := Normalize(raw)
	b := Normalize(raw)
	if !reflect.DeepEqual(a, b) {
		t.Error("Normalize is not deterministic for identical input")
	}
	if BuildDocument(a) != BuildDocument(b) {
		t.Error("BuildDocument is not deterministic for identical input")
	}
}

func TestBuildDocumentOmitsEmptySegments(t *testing.T) {
	p := Normalize(RawPolicyRecord{
		PolicyName:     "Tech Term",
		Category:       "Term Assurance",
		PlanNumber:     "954",
		EligibilityAge: "18-65 years",
	})
	doc := BuildDocument(p)

	want := "Policy: Tech Term | Category: Term Assurance | Age eligibility: 18-65 years"
	if doc != want {
		t.Errorf("document = %q, want %q", doc, want)
	}
}

func TestBuildDocumentFullRecord(t *testing.T) {
	p := Normalize(RawPolicyRecord{
		PolicyName:       "Jeevan Umang",
		Category:         "Whole Life",
		PlanNumber:       "945",
		EligibilityAge:   "90-100 years",
		FeaturesBenefits: "Lifelong cover | Survival benefits",
		MaturityBenefits: "Sum assured plus bonus",
		TaxBenefits:      "Section 80C",
		PremiumOptions:   "Annual",
		SurrenderClause:  "After 2 policy years",
	})
	doc := BuildDocument(p)

	want := "Policy: Jeevan Umang | Category: Whole Life | " +
		"Features: Lifelong cover, Survival benefits | " +
		"Age eligibility: 90-100 years | " +
		"Maturity benefits: Sum assured plus bonus | " +
		"Tax benefits: Section 80C | " +
		"Premium options: Annual | " +
		"Surrender: After 2 policy years"
	if doc != want {
		t.Errorf("document = %q, want %q", doc, want)
	}
}
