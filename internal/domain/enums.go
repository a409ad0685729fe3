package domain

// Plan is a user's subscription tier. It controls whether the drill quota
// applies: Plus and Teams accounts are unlimited.
type Plan string

// Recognized subscription plans.
const (
	PlanFree  Plan = "Free"
	PlanPlus  Plan = "Plus"
	PlanTeams Plan = "Teams"
)

// IsValid reports whether the plan is one of the recognized values.
func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanPlus, PlanTeams:
		return true
	default:
		return false
	}
}

// Unlimited reports whether the plan is exempt from the free-tier quota.
func (p Plan) Unlimited() bool {
	return p == PlanPlus || p == PlanTeams
}

// Level is a product-management skill level. Drills target exactly one
// level, and users declare one on their profile.
type Level string

// Recognized skill levels. The strings are the wire values used by the
// externally authored drill bank and must not change.
const (
	LevelAssociate Level = "Associate PM (0-2 Yrs)"
	LevelMid       Level = "Product Manager (2-5 Yrs)"
	LevelSenior    Level = "Senior PM (5+ Yrs)"
	LevelPrincipal Level = "Principal - Staff PM (9+ Yrs)"
)

// Levels lists all recognized skill levels in ascending seniority order.
var Levels = []Level{LevelAssociate, LevelMid, LevelSenior, LevelPrincipal}

// IsValid reports whether the level is one of the recognized values.
func (l Level) IsValid() bool {
	for _, v := range Levels {
		if l == v {
			return true
		}
	}
	return false
}

// Category is a drill's skill category, used for all-time skill rankings.
type Category string

// Recognized skill categories.
const (
	CategoryStrategy     Category = "Strategic Thinking"
	CategoryExecution    Category = "Execution & Prioritization"
	CategoryGrowth       Category = "Growth & Monetization"
	CategoryTechnical    Category = "Technical Acumen"
	CategoryUserResearch Category = "User Research & Empathy"
	CategoryStakeholders Category = "Stakeholder Management"
)

// Categories lists all recognized skill categories.
var Categories = []Category{
	CategoryStrategy,
	CategoryExecution,
	CategoryGrowth,
	CategoryTechnical,
	CategoryUserResearch,
	CategoryStakeholders,
}

// IsValid reports whether the category is one of the recognized values.
func (c Category) IsValid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Option is one of the four labeled answer options of a drill.
type Option string

// Recognized option labels.
const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

// Options lists the four option labels in display order.
var Options = []Option{OptionA, OptionB, OptionC, OptionD}

// IsValid reports whether the option is A, B, C or D.
func (o Option) IsValid() bool {
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	default:
		return false
	}
}
