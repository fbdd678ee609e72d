package ir

// Statement is the tagged sum Select | Insert | Update | Delete.
// Exactly one field is populated. Values are built once by a processor
// in internal/sqlrest/process and consumed exactly once by a renderer
// in internal/sqlrest/render; nothing mutates a Statement after
// construction.
type Statement struct {
	Select *Select
	Insert *Insert
	Update *Update
	Delete *Delete
}

// Select is a SELECT statement against exactly one relation.
type Select struct {
	From    string
	Targets []Target // non-empty; Star is the canonical "no projection" marker
	Filter  *Filter
	Sorts   []Sort
	Limit   *Limit
}

// Insert is an INSERT statement. Columns is the ordered column list;
// it may be empty iff every row's width equals the table's natural
// column order — this processor does not know schema order, so an
// empty Columns list is only ever produced when the source SQL omitted
// the column list entirely.
type Insert struct {
	Into      string
	Columns   []string
	Values    [][]Atom // rows; uniform length, equal to len(Columns) when Columns is given
	Returning []string
}

// Update is an UPDATE statement. Set is an ordered column->value
// mapping; Filter, when present, is restricted to the basic operator
// set.
type Update struct {
	Table     string
	Set       []SetClause
	Filter    *Filter
	Returning []string
}

// SetClause is one column = value assignment, kept as a slice rather
// than a map so SET clause order survives into the rendered JSON body.
type SetClause struct {
	Column string
	Value  Atom
}

// Delete is a DELETE statement. Filter, when present, is restricted to
// the basic operator set.
type Delete struct {
	From      string
	Filter    *Filter
	Returning []string
}

// NewSelect wraps a Select into a Statement.
func NewSelect(s Select) Statement { return Statement{Select: &s} }

// NewInsert wraps an Insert into a Statement.
func NewInsert(s Insert) Statement { return Statement{Insert: &s} }

// NewUpdate wraps an Update into a Statement.
func NewUpdate(s Update) Statement { return Statement{Update: &s} }

// NewDelete wraps a Delete into a Statement.
func NewDelete(s Delete) Statement { return Statement{Delete: &s} }
