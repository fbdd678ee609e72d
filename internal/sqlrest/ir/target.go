package ir

// Target is one item of a SELECT projection list. Exactly one of
// ColumnTarget, ResourceTarget, or AggregateTarget is populated.
type Target struct {
	Column   *ColumnTarget
	Resource *ResourceTarget
	Aggregate *AggregateTarget
}

// ColumnTarget projects a single column, possibly "*", with an optional
// cast and alias.
type ColumnTarget struct {
	Name  string
	Alias string
	Cast  string
}

// Star is the canonical "no projection" marker: a lone ColumnTarget("*")
// with no alias or cast.
var Star = Target{Column: &ColumnTarget{Name: "*"}}

// IsStar reports whether targets is the canonical single "*" projection.
func IsStar(targets []Target) bool {
	if len(targets) != 1 || targets[0].Column == nil {
		return false
	}
	c := targets[0].Column
	return c.Name == "*" && c.Alias == "" && c.Cast == ""
}

// ResourceTarget embeds a related relation via a foreign-key join,
// rendered as name(child,child) in PostgREST's select parameter.
type ResourceTarget struct {
	Name    string
	Alias   string
	Targets []Target
}

// AggregateTarget applies an aggregate function to a column or to "*".
type AggregateTarget struct {
	Func   string // count, sum, avg, min, max
	Column string // column name, or "*" for count(*)
	Alias  string
	Cast   string
}

// NewColumnTarget builds a Target wrapping a ColumnTarget.
func NewColumnTarget(t ColumnTarget) Target { return Target{Column: &t} }

// NewResourceTarget builds a Target wrapping a ResourceTarget.
func NewResourceTarget(t ResourceTarget) Target { return Target{Resource: &t} }

// NewAggregateTarget builds a Target wrapping an AggregateTarget.
func NewAggregateTarget(t AggregateTarget) Target { return Target{Aggregate: &t} }
