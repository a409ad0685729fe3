package domain

import (
	"strings"
	"testing"
)

// validDrill returns a drill that passes every content-bank rule.
func validDrill() Drill {
	return Drill{
		ID:                "drill_001",
		Title:             "Conflicting roadmap priorities",
		TargetLevel:       LevelMid,
		Category:          CategoryExecution,
		ScenarioText:      "Two teams want the same sprint capacity.",
		Stakeholder1Role:  "Engineering Lead",
		Stakeholder1Quote: "We can't do both.",
		Stakeholder2Role:  "Sales Director",
		Stakeholder2Quote: "The client is waiting.",
		Stakeholder3Role:  "Designer",
		Stakeholder3Quote: "Neither is ready.",
		OptionA:           "Ship the client feature",
		OptionB:           "Ship the platform work",
		OptionC:           "Split the sprint",
		OptionD:           "Escalate to leadership",
		OptimalChoice:     OptionB,
		ExpertAnalysis:    "Platform debt compounds.",
		RationaleA:        "Short-term win, long-term cost.",
		RationaleB:        "Compounds across teams.",
		RationaleC:        "Does both badly.",
		RationaleD:        "Abdicates the decision.",
		PeerDataA:         30,
		PeerDataB:         40,
		PeerDataC:         20,
		PeerDataD:         10,
	}
}

func TestDrillValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	valid := validDrill()
	if errs := valid.Validate(); errs != nil {
		t.Fatalf("valid drill rejected: %v", errs)
	}

	testCases := []struct {
		name      string
		mutate    func(*Drill)
		wantField string
	}{
		{
			name:      "missing title",
			mutate:    func(d *Drill) { d.Title = "" },
			wantField: "title",
		},
		{
			name:      "missing scenario",
			mutate:    func(d *Drill) { d.ScenarioText = "" },
			wantField: "core_scenario_text",
		},
		{
			name:      "unknown level",
			mutate:    func(d *Drill) { d.TargetLevel = "CEO" },
			wantField: "target_pm_level",
		},
		{
			name:      "unknown category",
			mutate:    func(d *Drill) { d.Category = "Vibes" },
			wantField: "skill_category",
		},
		{
			name:      "invalid optimal choice",
			mutate:    func(d *Drill) { d.OptimalChoice = "E" },
			wantField: "optimal_choice",
		},
		{
			name:      "invalid strategic alternative",
			mutate:    func(d *Drill) { d.StrategicAlternative = "Z"; d.StrategicAltRationale = "x" },
			wantField: "strategic_alternative",
		},
		{
			name:      "strategic alternative without rationale",
			mutate:    func(d *Drill) { d.StrategicAlternative = OptionC },
			wantField: "strategic_alternative_rationale",
		},
		{
			name:      "rationale without strategic alternative",
			mutate:    func(d *Drill) { d.StrategicAltRationale = "defensible too" },
			wantField: "strategic_alternative",
		},
		{
			name:      "peer percentages not summing to 100",
			mutate:    func(d *Drill) { d.PeerDataA = 50 },
			wantField: "peer_data",
		},
		{
			name:      "peer percentage out of range",
			mutate:    func(d *Drill) { d.PeerDataA = 130; d.PeerDataB = -30 },
			wantField: "peer_data_a",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := validDrill()
			tc.mutate(&d)

			errs := d.Validate()
			if len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
			found := false
			for _, e := range errs {
				if e.Field == tc.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error on field %q, got %v", tc.wantField, errs)
			}
		})
	}
}

func TestDrillValidateWithStrategicAlternative(t *testing.T) {
	t.Parallel() // Enable parallel execution

	d := validDrill()
	d.StrategicAlternative = OptionA
	d.StrategicAltRationale = "A defensible runner-up when speed matters more."
	if errs := d.Validate(); errs != nil {
		t.Errorf("drill with paired strategic alternative rejected: %v", errs)
	}
}

func TestDrillValidateNearIntegerPeerSum(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// Percentages summing to 100 after rounding are accepted; externally
	// authored banks carry fractional peer data.
	d := validDrill()
	d.PeerDataA, d.PeerDataB, d.PeerDataC, d.PeerDataD = 33.4, 33.3, 22.2, 11.3
	if errs := d.Validate(); errs != nil {
		t.Errorf("fractional peer data summing to ~100 rejected: %v", errs)
	}
}

func TestFieldErrorMessageNamesField(t *testing.T) {
	t.Parallel() // Enable parallel execution

	d := validDrill()
	d.OptimalChoice = "Q"
	errs := d.Validate()
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if !strings.Contains(errs[0].Error(), "optimal_choice") {
		t.Errorf("error message should name the field: %q", errs[0].Error())
	}
}
