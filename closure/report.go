package closure

import "fmt"

// MissingInverse records an edge whose expected inverse is absent.
type MissingInverse struct {
	Source          string `json:"source"`
	Label           string `json:"label"`
	Target          string `json:"target"`
	ExpectedInverse string `json:"expected_inverse"`
}

func (m MissingInverse) String() string {
	return fmt.Sprintf("missing inverse %s -[%s]-> %s for %s -[%s]-> %s",
		m.Target, m.ExpectedInverse, m.Source, m.Source, m.Label, m.Target)
}

// InverseLabelMismatch records an inverse edge present under a
// lower-precedence label than the preferred candidate.
type InverseLabelMismatch struct {
	Source          string `json:"source"`
	Label           string `json:"label"`
	Target          string `json:"target"`
	ExpectedInverse string `json:"expected_inverse"`
	ActualInverse   string `json:"actual_inverse"`
}

func (m InverseLabelMismatch) String() string {
	return fmt.Sprintf("inverse of %s -[%s]-> %s uses %q, preferred is %q",
		m.Source, m.Label, m.Target, m.ActualInverse, m.ExpectedInverse)
}

// Report collects the findings of a validation pass.
type Report struct {
	Missing    []MissingInverse       `json:"missing,omitempty"`
	Mismatches []InverseLabelMismatch `json:"mismatches,omitempty"`
}

// Clean reports whether the pass found nothing.
func (r *Report) Clean() bool {
	return len(r.Missing) == 0 && len(r.Mismatches) == 0
}

// Total returns the combined number of findings.
func (r *Report) Total() int {
	return len(r.Missing) + len(r.Mismatches)
}
