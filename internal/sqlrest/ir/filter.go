package ir

// FilterOperator enumerates the PostgREST column-comparison operators a
// ColumnFilter can carry: comparison, pattern, IS, IN, full-text, and
// the array/range/geometric containment and position operators (cs
// through adj). pgvector operators are not part of this subset.
type FilterOperator string

const (
	OpEq    FilterOperator = "eq"
	OpNeq   FilterOperator = "neq"
	OpGt    FilterOperator = "gt"
	OpGte   FilterOperator = "gte"
	OpLt    FilterOperator = "lt"
	OpLte   FilterOperator = "lte"
	OpLike  FilterOperator = "like"
	OpILike FilterOperator = "ilike"
	OpIs    FilterOperator = "is"
	OpIn    FilterOperator = "in"
	OpFts   FilterOperator = "fts"
	OpPlfts FilterOperator = "plfts"
	OpPhfts FilterOperator = "phfts"
	OpWfts  FilterOperator = "wfts"
	OpCs    FilterOperator = "cs"
	OpCd    FilterOperator = "cd"
	OpOv    FilterOperator = "ov"
	OpSl    FilterOperator = "sl"
	OpSr    FilterOperator = "sr"
	OpNxr   FilterOperator = "nxr"
	OpNxl   FilterOperator = "nxl"
	OpAdj   FilterOperator = "adj"
)

// BasicOperators is the operator subset permitted in UPDATE/DELETE
// filters.
var BasicOperators = map[FilterOperator]bool{
	OpEq: true, OpNeq: true, OpGt: true, OpGte: true, OpLt: true, OpLte: true,
}

// LogicalOperator is "and" or "or".
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "and"
	LogicalOr  LogicalOperator = "or"
)

// Filter is a node in a boolean filter tree. Exactly one of Column or
// Logical is populated. Filters form a strict tree: no node is ever
// shared between two parents, so the root-flattening renderer can
// freely reconstruct structure without aliasing concerns.
type Filter struct {
	Negate  bool
	Column  *ColumnFilter
	Logical *LogicalFilter
}

// ColumnFilter is a single column comparison.
type ColumnFilter struct {
	Column   string
	Operator FilterOperator
	Value    Atom   // scalar comparison value
	Values   []Atom // set of values, populated only when Operator == OpIn
}

// LogicalFilter is an AND/OR combination of child filters.
// Values is never empty — a one-element logical node is legal and
// behaves as its child, except that it keeps its own Negate flag.
type LogicalFilter struct {
	Operator LogicalOperator
	Values   []Filter
}

// NewColumnFilter builds a non-negated Filter wrapping a ColumnFilter.
func NewColumnFilter(c ColumnFilter) Filter { return Filter{Column: &c} }

// NewLogicalFilter builds a non-negated Filter wrapping a LogicalFilter.
func NewLogicalFilter(l LogicalFilter) Filter { return Filter{Logical: &l} }

// IsColumn reports whether f is a ColumnFilter node.
func (f Filter) IsColumn() bool { return f.Column != nil }

// IsLogical reports whether f is a LogicalFilter node.
func (f Filter) IsLogical() bool { return f.Logical != nil }
