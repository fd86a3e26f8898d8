package store

// Operator is the comparison applied by a Filter.
type Operator string

const (
	// OpEq matches rows whose column equals the value.
	OpEq Operator = "eq"
	// OpContains matches rows whose array column contains every value.
	OpContains Operator = "cs"
)

type Filter struct {
	Field  string
	Op     Operator
	Value  any
	Values []any
}

type Order struct {
	Field string
	Desc  bool
}

// Query describes a single table operation. Filters are AND-combined.
type Query struct {
	Table   string
	Filters []Filter
	Order   *Order
	Limit   int
}

func From(table string) *Query {
	return &Query{Table: table}
}

func (q *Query) Eq(field string, value any) *Query {
	q.Filters = append(q.Filters, Filter{Field: field, Op: OpEq, Value: value})
	return q
}

func (q *Query) Contains(field string, values ...any) *Query {
	q.Filters = append(q.Filters, Filter{Field: field, Op: OpContains, Values: values})
	return q
}

func (q *Query) OrderBy(field string, desc bool) *Query {
	q.Order = &Order{Field: field, Desc: desc}
	return q
}

// WithLimit caps the result size. Zero means no limit.
func (q *Query) WithLimit(n int) *Query {
	q.Limit = n
	return q
}
