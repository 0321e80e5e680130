package wizard

// Step identifies the wizard screen a session is on.
type Step string

const (
	// StepSearch collects managing unit, document type and reference date.
	StepSearch Step = "search"
	// StepSelect shows the pending integration records for selection.
	StepSelect Step = "select"
	// StepMetadata collects department, observation, file name and access level.
	StepMetadata Step = "metadata"
	// StepFinalize collects the optional block id / annotation note.
	StepFinalize Step = "finalize"
	// StepClosed is terminal; the session holds no further obligations.
	StepClosed Step = "closed"
)

// Valid reports whether s is a known step.
func (s Step) Valid() bool {
	switch s {
	case StepSearch, StepSelect, StepMetadata, StepFinalize, StepClosed:
		return true
	}
	return false
}
