package checklog

// ListOptions provides filtering options for listing checks.
type ListOptions struct {
	Kind    *Kind
	Outcome *Outcome
	Limit   int
	Offset  int
}
