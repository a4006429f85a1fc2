package query

import "strings"

// BoolQuery 布尔组合查询
type BoolQuery struct {
	Must    []Query `json:"must,omitempty"`
	Should  []Query `json:"should,omitempty"`
	MustNot []Query `json:"must_not,omitempty"`
}

func (q *BoolQuery) Type() QueryType {
	return QueryTypeBool
}

func (q *BoolQuery) ToSQL() (string, []interface{}, error) {
	var conditions []string
	var args []interface{}

	if len(q.Must) > 0 {
		mustConditions := make([]string, 0, len(q.Must))
		for _, sub := range q.Must {
			sql, subArgs, err := sub.ToSQL()
			if err != nil {
				return "", nil, err
			}
			mustConditions = append(mustConditions, sql)
			args = append(args, subArgs...)
		}
		conditions = append(conditions, "("+strings.Join(mustConditions, " AND ")+")")
	}

	if len(q.Should) > 0 {
		shouldConditions := make([]string, 0, len(q.Should))
		for _, sub := range q.Should {
			sql, subArgs, err := sub.ToSQL()
			if err != nil {
				return "", nil, err
			}
			shouldConditions = append(shouldConditions, sql)
			args = append(args, subArgs...)
		}
		conditions = append(conditions, "("+strings.Join(shouldConditions, " OR ")+")")
	}

	if len(q.MustNot) > 0 {
		mustNotConditions := make([]string, 0, len(q.MustNot))
		for _, sub := range q.MustNot {
			sql, subArgs, err := sub.ToSQL()
			if err != nil {
				return "", nil, err
			}
			mustNotConditions = append(mustNotConditions, "NOT ("+sql+")")
			args = append(args, subArgs...)
		}
		conditions = append(conditions, "("+strings.Join(mustNotConditions, " AND ")+")")
	}

	if len(conditions) == 0 {
		return "1=1", nil, nil
	}

	return strings.Join(conditions, " AND "), args, nil
}
