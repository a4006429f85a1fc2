package query

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// InQuery 集合成员匹配查询
type InQuery struct {
	Field  string        `json:"field"`
	Values []interface{} `json:"values"`
}

func (q *InQuery) Type() QueryType {
	return QueryTypeIn
}

func (q *InQuery) ToSQL() (string, []interface{}, error) {
	if q.Field == "" {
		return "", nil, ErrEmptyField
	}
	if len(q.Values) == 0 {
		return "", nil, errors.WithMessagef(ErrEmptyValues, "in query on field %s", q.Field)
	}

	placeholders := make([]string, len(q.Values))
	args := make([]interface{}, len(q.Values))
	for i, value := range q.Values {
		placeholders[i] = "?"
		args[i] = value
	}

	return fmt.Sprintf("%s IN (%s)", q.Field, strings.Join(placeholders, ", ")), args, nil
}
