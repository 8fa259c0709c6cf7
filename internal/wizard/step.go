package wizard

import "fmt"

// Step identifies a wizard stage.
type Step int

const (
	StepAttributes Step = iota
	StepPath
	StepBenefitsBurdens
	StepSkills
	StepTies
	StepFinalDetails
	StepComplete
)

var stepNames = map[Step]string{
	StepAttributes:      "attributes",
	StepPath:            "path",
	StepBenefitsBurdens: "benefits-burdens",
	StepSkills:          "skills",
	StepTies:            "ties",
	StepFinalDetails:    "final-details",
	StepComplete:        "complete",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// MarshalText encodes the step by name.
func (s Step) MarshalText() ([]byte, error) {
	if _, ok := stepNames[s]; !ok {
		return nil, fmt.Errorf("unknown step %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a step name.
func (s *Step) UnmarshalText(b []byte) error {
	for step, name := range stepNames {
		if name == string(b) {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("unknown step %q", string(b))
}
