package query

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrMissingTable      = errors.New("missing table")
	ErrMissingProjection = errors.New("missing projection")
)

type joinClause struct {
	clause string
	args   []interface{}
}

type orderClause struct {
	column string
	desc   bool
}

// Builder 可组合的 SELECT 构造器，所有值通过参数绑定传递，子句可单独重置。
// Build 不修改构造器状态，同一个构造器可以反复构建。
type Builder struct {
	columns  []string
	distinct bool
	table    string
	alias    string
	joins    []joinClause
	wheres   []Query
	groupBys []string
	having   Query
	orderBys []orderClause
	limit    *int64
	offset   *int64
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Select(columns ...string) *Builder {
	b.columns = append(b.columns, columns...)
	return b
}

func (b *Builder) Distinct() *Builder {
	b.distinct = true
	return b
}

func (b *Builder) From(table string, alias string) *Builder {
	b.table = table
	b.alias = alias
	return b
}

// Join 追加一条 JOIN 子句，clause 为完整的 "LEFT JOIN ... ON ..." 片段
func (b *Builder) Join(clause string, args ...interface{}) *Builder {
	b.joins = append(b.joins, joinClause{clause: clause, args: args})
	return b
}

// Where 追加一个条件节点，多个条件按 AND 连接
func (b *Builder) Where(q Query) *Builder {
	b.wheres = append(b.wheres, q)
	return b
}

func (b *Builder) GroupBy(columns ...string) *Builder {
	b.groupBys = append(b.groupBys, columns...)
	return b
}

func (b *Builder) Having(q Query) *Builder {
	b.having = q
	return b
}

func (b *Builder) OrderBy(column string, desc bool) *Builder {
	b.orderBys = append(b.orderBys, orderClause{column: column, desc: desc})
	return b
}

func (b *Builder) Limit(n int64) *Builder {
	b.limit = &n
	return b
}

func (b *Builder) Offset(n int64) *Builder {
	b.offset = &n
	return b
}

func (b *Builder) ResetSelect() *Builder {
	b.columns = nil
	return b
}

func (b *Builder) ResetDistinct() *Builder {
	b.distinct = false
	return b
}

func (b *Builder) ResetOrderBy() *Builder {
	b.orderBys = nil
	return b
}

func (b *Builder) ResetGroupBy() *Builder {
	b.groupBys = nil
	return b
}

func (b *Builder) ResetHaving() *Builder {
	b.having = nil
	return b
}

func (b *Builder) ResetLimit() *Builder {
	b.limit = nil
	return b
}

func (b *Builder) ResetOffset() *Builder {
	b.offset = nil
	return b
}

// Clone 深拷贝所有子句。条件节点按不可变值处理，节点指针直接复用
func (b *Builder) Clone() *Builder {
	c := &Builder{
		columns:  append([]string(nil), b.columns...),
		distinct: b.distinct,
		table:    b.table,
		alias:    b.alias,
		joins:    append([]joinClause(nil), b.joins...),
		wheres:   append([]Query(nil), b.wheres...),
		groupBys: append([]string(nil), b.groupBys...),
		having:   b.having,
		orderBys: append([]orderClause(nil), b.orderBys...),
	}
	if b.limit != nil {
		limit := *b.limit
		c.limit = &limit
	}
	if b.offset != nil {
		offset := *b.offset
		c.offset = &offset
	}
	return c
}

// Build 按固定子句顺序生成 SQL 和绑定参数
func (b *Builder) Build() (string, []interface{}, error) {
	if b.table == "" {
		return "", nil, ErrMissingTable
	}
	if len(b.columns) == 0 {
		return "", nil, ErrMissingProjection
	}

	var sb strings.Builder
	var args []interface{}

	sb.WriteString("SELECT ")
	if b.distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(strings.Join(b.columns, ", "))

	sb.WriteString(" FROM ")
	sb.WriteString(b.table)
	if b.alias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(b.alias)
	}

	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(j.clause)
		args = append(args, j.args...)
	}

	if len(b.wheres) > 0 {
		conditions := make([]string, 0, len(b.wheres))
		for _, w := range b.wheres {
			sql, whereArgs, err := w.ToSQL()
			if err != nil {
				return "", nil, err
			}
			conditions = append(conditions, "("+sql+")")
			args = append(args, whereArgs...)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	if len(b.groupBys) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBys, ", "))
	}

	if b.having != nil {
		sql, havingArgs, err := b.having.ToSQL()
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(" HAVING ")
		sb.WriteString(sql)
		args = append(args, havingArgs...)
	}

	if len(b.orderBys) > 0 {
		orders := make([]string, len(b.orderBys))
		for i, o := range b.orderBys {
			direction := "ASC"
			if o.desc {
				direction = "DESC"
			}
			orders[i] = o.column + " " + direction
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(orders, ", "))
	}

	if b.limit != nil {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", *b.limit))
	}
	if b.offset != nil {
		sb.WriteString(fmt.Sprintf(" OFFSET %d", *b.offset))
	}

	return sb.String(), args, nil
}
