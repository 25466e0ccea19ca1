package fuzzy

// Rule is a single antecedent/consequent pair keyed by variable name: each
// entry maps an input or output variable's name to the term it must match.
// A variable absent from the map is a wildcard, matching regardless of
// that variable's value — the persisted rule base represents this the same
// way, as a missing or null entry rather than an explicit "any" term. Valid
// carries forward the rule base's own soft-delete flag — a rule the user
// has disabled but not removed — so the engine can skip it without the
// caller having to filter rule sets before constructing an Engine.
type Rule struct {
	Antecedent map[string]string
	Consequent map[string]string
	Valid      bool
}
