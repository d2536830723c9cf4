package graph

import "fmt"

// ValidationSeverity indicates whether a finding blocks loading a snapshot
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks loading
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Subject  string             // "node 3", "edge 1", or empty for snapshot-level findings
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Subject, e.Message)
}

// Validate checks a snapshot before it is loaded. An empty result means the
// snapshot describes a consistent graph. Validate never mutates s.
func Validate(s Snapshot) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateNodeIDs(s)...)
	errs = append(errs, validateEdges(s)...)
	errs = append(errs, validateDuplicates(s)...)
	return errs
}

// validateNodeIDs checks that ids are gapless and in placement order, which
// is what PlaceNode would have produced.
func validateNodeIDs(s Snapshot) []ValidationError {
	var errs []ValidationError
	for i, n := range s.Nodes {
		if n.ID != NodeID(i) {
			errs = append(errs, ValidationError{
				Subject:  fmt.Sprintf("node %d", n.ID),
				Message:  fmt.Sprintf("found at position %d, ids must be sequential from 0", i),
				Severity: SeverityError,
			})
		}
		if n.Kind == "" {
			errs = append(errs, ValidationError{
				Subject:  fmt.Sprintf("node %d", n.ID),
				Message:  "has no kind",
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

func validateEdges(s Snapshot) []ValidationError {
	var errs []ValidationError
	last := len(s.Edges) - 1
	for i, r := range s.Edges {
		subject := fmt.Sprintf("edge %d", i)
		if r.Output == "" && r.Input == "" {
			errs = append(errs, ValidationError{Subject: subject, Message: "has no endpoints", Severity: SeverityError})
			continue
		}
		if (r.Output == "" || r.Input == "") && i != last {
			errs = append(errs, ValidationError{Subject: subject, Message: "partial edge is not the last edge", Severity: SeverityError})
		}
		errs = append(errs, validateSide(s, subject, r.Output, Output)...)
		errs = append(errs, validateSide(s, subject, r.Input, Input)...)

		out, errOut := ParseEndpoint(r.Output)
		in, errIn := ParseEndpoint(r.Input)
		if errOut == nil && errIn == nil && out.Node == in.Node {
			errs = append(errs, ValidationError{
				Subject:  subject,
				Message:  fmt.Sprintf("connects node %d to itself", out.Node),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

func validateSide(s Snapshot, subject, id string, want Direction) []ValidationError {
	if id == "" {
		return nil
	}
	ep, err := ParseEndpoint(id)
	if err != nil {
		return []ValidationError{{Subject: subject, Message: err.Error(), Severity: SeverityError}}
	}
	var errs []ValidationError
	if ep.Direction != want {
		errs = append(errs, ValidationError{
			Subject:  subject,
			Message:  fmt.Sprintf("%s side holds %s endpoint %q", want, ep.Direction, id),
			Severity: SeverityError,
		})
	}
	if int(ep.Node) >= len(s.Nodes) {
		errs = append(errs, ValidationError{
			Subject:  subject,
			Message:  fmt.Sprintf("endpoint %q references non-existent node %d", id, ep.Node),
			Severity: SeverityError,
		})
	}
	return errs
}

// validateDuplicates warns about committed edges wiring the same pair twice.
func validateDuplicates(s Snapshot) []ValidationError {
	var errs []ValidationError
	seen := make(map[[2]string]int)
	for i, r := range s.Edges {
		if r.Output == "" || r.Input == "" {
			continue
		}
		key := [2]string{r.Output, r.Input}
		if first, ok := seen[key]; ok {
			errs = append(errs, ValidationError{
				Subject:  fmt.Sprintf("edge %d", i),
				Message:  fmt.Sprintf("duplicates edge %d", first),
				Severity: SeverityWarning,
			})
			continue
		}
		seen[key] = i
	}
	return errs
}
