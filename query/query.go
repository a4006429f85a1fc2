package query

import "github.com/pkg/errors"

var (
	ErrEmptyField  = errors.New("empty field")
	ErrEmptyValues = errors.New("empty values")
)

// QueryType 查询类型
type QueryType string

const (
	QueryTypeBool  QueryType = "bool"
	QueryTypeTerm  QueryType = "term"
	QueryTypeIn    QueryType = "in"
	QueryTypeRange QueryType = "range"
)

// Query 查询节点接口，所有条件节点编译为带参数绑定的 SQL 片段
type Query interface {
	Type() QueryType
	ToSQL() (string, []interface{}, error)
}
