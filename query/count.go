package query

import "fmt"

// DeriveCountQuery 从已构造的数据查询派生总数查询：保留 FROM/JOIN/WHERE，
// 投影替换为 COUNT(DISTINCT 主键列)，去掉 ORDER BY/GROUP BY/HAVING/DISTINCT/
// LIMIT/OFFSET。不修改入参，数据查询和总数查询共享同一份过滤条件。
// JOIN 可能把一条逻辑资源放大成多行，所以必须按主键列去重计数。
func DeriveCountQuery(b *Builder, idColumn string) *Builder {
	c := b.Clone()
	c.ResetSelect().
		ResetDistinct().
		ResetOrderBy().
		ResetGroupBy().
		ResetHaving().
		ResetLimit().
		ResetOffset()
	c.Select(fmt.Sprintf("COUNT(DISTINCT %s)", idColumn))
	return c
}
