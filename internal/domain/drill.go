package domain

import (
	"fmt"
	"math"
)

// FieldError reports a validation failure on a specific drill field. It is
// surfaced verbatim to content authors, so messages name the JSON field.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface for FieldError.
func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Message)
}

// Unwrap marks every FieldError as a validation failure so callers can
// branch with errors.Is(err, ErrValidation).
func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// Drill is an immutable content unit: a decision scenario with four labeled
// options, one optimal choice and optionally one "strategic alternative"
// (a defensible runner-up). Drills are owned by a shared content bank and
// are read-only to the scheduling core. The JSON field names are the
// payload format accepted from externally authored content and must not
// change.
type Drill struct {
	ID                    string   `json:"drill_id"`
	Title                 string   `json:"title"`
	TargetLevel           Level    `json:"target_pm_level"`
	Category              Category `json:"skill_category"`
	ScenarioText          string   `json:"core_scenario_text"`
	Stakeholder1Role      string   `json:"stakeholder_1_role"`
	Stakeholder1Quote     string   `json:"stakeholder_1_quote"`
	Stakeholder2Role      string   `json:"stakeholder_2_role"`
	Stakeholder2Quote     string   `json:"stakeholder_2_quote"`
	Stakeholder3Role      string   `json:"stakeholder_3_role"`
	Stakeholder3Quote     string   `json:"stakeholder_3_quote"`
	OptionA               string   `json:"option_a"`
	OptionB               string   `json:"option_b"`
	OptionC               string   `json:"option_c"`
	OptionD               string   `json:"option_d"`
	OptimalChoice         Option   `json:"optimal_choice"`
	ExpertAnalysis        string   `json:"expert_analysis_text"`
	RationaleA            string   `json:"rationale_for_a"`
	RationaleB            string   `json:"rationale_for_b"`
	RationaleC            string   `json:"rationale_for_c"`
	RationaleD            string   `json:"rationale_for_d"`
	PeerDataA             float64  `json:"peer_data_a"`
	PeerDataB             float64  `json:"peer_data_b"`
	PeerDataC             float64  `json:"peer_data_c"`
	PeerDataD             float64  `json:"peer_data_d"`
	StrategicAlternative  Option   `json:"strategic_alternative,omitempty"`
	StrategicAltRationale string   `json:"strategic_alternative_rationale,omitempty"`
}

// Validate checks the drill against the content-bank contract and returns
// every violation, not just the first, so authors can fix a batch in one
// pass. A nil slice means the drill is valid. Validation is synchronous and
// all-or-nothing: an invalid drill is never partially applied.
func (d *Drill) Validate() []*FieldError {
	var errs []*FieldError

	required := []struct {
		field string
		value string
	}{
		{"drill_id", d.ID},
		{"title", d.Title},
		{"core_scenario_text", d.ScenarioText},
		{"stakeholder_1_role", d.Stakeholder1Role},
		{"stakeholder_1_quote", d.Stakeholder1Quote},
		{"stakeholder_2_role", d.Stakeholder2Role},
		{"stakeholder_2_quote", d.Stakeholder2Quote},
		{"stakeholder_3_role", d.Stakeholder3Role},
		{"stakeholder_3_quote", d.Stakeholder3Quote},
		{"option_a", d.OptionA},
		{"option_b", d.OptionB},
		{"option_c", d.OptionC},
		{"option_d", d.OptionD},
		{"expert_analysis_text", d.ExpertAnalysis},
		{"rationale_for_a", d.RationaleA},
		{"rationale_for_b", d.RationaleB},
		{"rationale_for_c", d.RationaleC},
		{"rationale_for_d", d.RationaleD},
	}
	for _, f := range required {
		if f.value == "" {
			errs = append(errs, &FieldError{Field: f.field, Message: "must be a non-empty string"})
		}
	}

	if !d.TargetLevel.IsValid() {
		errs = append(errs, &FieldError{
			Field:   "target_pm_level",
			Message: fmt.Sprintf("%q is not a recognized skill level", d.TargetLevel),
		})
	}

	if !d.Category.IsValid() {
		errs = append(errs, &FieldError{
			Field:   "skill_category",
			Message: fmt.Sprintf("%q is not a recognized skill category", d.Category),
		})
	}

	if !d.OptimalChoice.IsValid() {
		errs = append(errs, &FieldError{Field: "optimal_choice", Message: "must be 'A', 'B', 'C', or 'D'"})
	}

	// Strategic alternative and its rationale come as a pair or not at all.
	if d.StrategicAlternative != "" && !d.StrategicAlternative.IsValid() {
		errs = append(errs, &FieldError{Field: "strategic_alternative", Message: "must be 'A', 'B', 'C', or 'D'"})
	}
	if d.StrategicAlternative != "" && d.StrategicAltRationale == "" {
		errs = append(errs, &FieldError{
			Field:   "strategic_alternative_rationale",
			Message: "must be provided when strategic_alternative is set",
		})
	}
	if d.StrategicAlternative == "" && d.StrategicAltRationale != "" {
		errs = append(errs, &FieldError{
			Field:   "strategic_alternative",
			Message: "must be set when strategic_alternative_rationale is provided",
		})
	}

	peer := []struct {
		field string
		value float64
	}{
		{"peer_data_a", d.PeerDataA},
		{"peer_data_b", d.PeerDataB},
		{"peer_data_c", d.PeerDataC},
		{"peer_data_d", d.PeerDataD},
	}
	sum := 0.0
	for _, p := range peer {
		if p.value < 0 || p.value > 100 {
			errs = append(errs, &FieldError{Field: p.field, Message: "must be a number between 0 and 100"})
		}
		sum += p.value
	}
	if math.Round(sum) != 100 {
		errs = append(errs, &FieldError{
			Field:   "peer_data",
			Message: fmt.Sprintf("percentages must sum to 100, got %g", sum),
		})
	}

	return errs
}

// OptionText returns the display text for the given option label.
func (d *Drill) OptionText(o Option) string {
	switch o {
	case OptionA:
		return d.OptionA
	case OptionB:
		return d.OptionB
	case OptionC:
		return d.OptionC
	case OptionD:
		return d.OptionD
	default:
		return ""
	}
}

// Rationale returns the per-option rationale for the given option label.
func (d *Drill) Rationale(o Option) string {
	switch o {
	case OptionA:
		return d.RationaleA
	case OptionB:
		return d.RationaleB
	case OptionC:
		return d.RationaleC
	case OptionD:
		return d.RationaleD
	default:
		return ""
	}
}
