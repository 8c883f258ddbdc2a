package recommend

import (
	"strings"

	"insurance-advisor-be/internal/entity"
)

// Appropriateness flag codes attached to a recommendation when the top
// policy looks mismatched with the customer profile.
const (
	FlagChildPlanWithoutChildren = "children_plan_without_children"
	FlagPensionPlanTooYoung      = "pension_plan_too_young"
)

// AppropriatenessFlags checks a recommended policy against the profile and
// returns flag codes for mismatches the pitch generator must address.
func AppropriatenessFlags(policy *entity.Policy, profile entity.UserProfile) []string {
	flags := []string{}
	name := strings.ToLower(policy.Name)
	stage := strings.ToLower(profile.LifeStage)

	if strings.Contains(name, "child") {
		if profile.Dependents == 0 || strings.Contains(stage, "single") {
			flags = append(flags, FlagChildPlanWithoutChildren)
		}
	}

	if strings.Contains(name, "pension") || strings.Contains(name, "retirement") {
		if profile.Age > 0 && profile.Age < 25 {
			flags = append(flags, FlagPensionPlanTooYoung)
		}
	}

	return flags
}

// PersonalizedBenefits returns profile-specific selling points for a
// recommendation. The list may be empty for sparse profiles.
func PersonalizedBenefits(profile entity.UserProfile) []string {
	benefits := []string{}

	switch profile.PrimaryGoal {
	case "child_education":
		benefits = append(benefits, "Perfect for securing your child's educational future")
	case "retirement_planning":
		benefits = append(benefits, "Builds substantial retirement corpus with guaranteed returns")
	case "wealth_creation":
		benefits = append(benefits, "High growth potential with market-linked returns")
	}

	stage := strings.ToLower(profile.LifeStage)
	if strings.Contains(stage, "young") {
		benefits = append(benefits, "Flexible premium payment options for growing careers")
	} else if strings.Contains(stage, "family") {
		benefits = append(benefits, "Comprehensive family protection with multiple benefits")
	}

	switch profile.RiskComfort {
	case "conservative":
		benefits = append(benefits, "Guaranteed returns with capital protection")
	case "aggressive":
		benefits = append(benefits, "High growth potential with equity exposure")
	}

	return benefits
}
