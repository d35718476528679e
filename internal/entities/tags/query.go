package tags

// QueryType selects how a Query combines its tags or sub-expressions
type QueryType string

// Query types
const (
	QueryUndefined         QueryType = ""
	QueryAnyTagsMatch      QueryType = "AnyTagsMatch"
	QueryAllTagsMatch      QueryType = "AllTagsMatch"
	QueryNoTagsMatch       QueryType = "NoTagsMatch"
	QueryAnyTagsExactMatch QueryType = "AnyTagsExactMatch"
	QueryAllTagsExactMatch QueryType = "AllTagsExactMatch"
	QueryAnyExprMatch      QueryType = "AnyExprMatch"
	QueryAllExprMatch      QueryType = "AllExprMatch"
	QueryNoExprMatch       QueryType = "NoExprMatch"
)

// IsExpr reports whether the type combines sub-expressions rather than tags
func (q QueryType) IsExpr() bool {
	switch q {
	case QueryAnyExprMatch, QueryAllExprMatch, QueryNoExprMatch:
		return true
	default:
		return false
	}
}

// Query is a tag query expression tree
type Query struct {
	Type        QueryType `json:"type,omitempty"`
	Tags        Container `json:"tags"`
	Expressions []Query   `json:"expressions,omitempty"`
}

// AnyOf builds a query matching containers holding any of the tags
func AnyOf(values ...Tag) Query {
	return Query{Type: QueryAnyTagsMatch, Tags: New(values...)}
}

// AllOf builds a query matching containers holding all of the tags
func AllOf(values ...Tag) Query {
	return Query{Type: QueryAllTagsMatch, Tags: New(values...)}
}

// NoneOf builds a query matching containers holding none of the tags
func NoneOf(values ...Tag) Query {
	return Query{Type: QueryNoTagsMatch, Tags: New(values...)}
}

// AllExpr builds a query requiring every sub-expression to match
func AllExpr(exprs ...Query) Query {
	return Query{Type: QueryAllExprMatch, Expressions: exprs}
}

// AnyExpr builds a query requiring at least one sub-expression to match
func AnyExpr(exprs ...Query) Query {
	return Query{Type: QueryAnyExprMatch, Expressions: exprs}
}

// IsEmpty reports whether the query carries nothing to test
func (q Query) IsEmpty() bool {
	if q.Type == QueryUndefined {
		return true
	}
	if q.Type.IsExpr() {
		return len(q.Expressions) == 0
	}
	return q.Tags.IsEmpty()
}

// Matches evaluates the query against a container
func (q Query) Matches(c Container) bool {
	switch q.Type {
	case QueryAnyTagsMatch:
		return c.HasAny(q.Tags)
	case QueryAllTagsMatch:
		return c.HasAll(q.Tags)
	case QueryNoTagsMatch:
		return !c.HasAny(q.Tags)
	case QueryAnyTagsExactMatch:
		return c.HasAnyExact(q.Tags)
	case QueryAllTagsExactMatch:
		return c.HasAllExact(q.Tags)
	case QueryAnyExprMatch:
		for _, e := range q.Expressions {
			if e.Matches(c) {
				return true
			}
		}
		return false
	case QueryAllExprMatch:
		for _, e := range q.Expressions {
			if !e.Matches(c) {
				return false
			}
		}
		return true
	case QueryNoExprMatch:
		for _, e := range q.Expressions {
			if e.Matches(c) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// AllTags collects every tag referenced anywhere in the query tree
func (q Query) AllTags() Container {
	out := New(q.Tags.Tags()...)
	for _, e := range q.Expressions {
		out.Append(e.AllTags())
	}
	return out
}
