// Package resource 提供资源的通用只读访问层：任意资源类型通过一个
// Definition 描述自己的表结构和基础查询形态，共享同一套
// 存在性检查、单个获取、批量获取、按活跃时间分页和版本查询协议。
// 查询构造在 query 包，执行在 database 包，行到对象的还原在 hydrate 包。
package resource

import (
	"github.com/pkg/errors"

	"github.com/hatlonely/resource/database"
)

var (
	ErrRecordNotFound   = database.ErrRecordNotFound
	ErrInvalidCondition = errors.New("invalid condition")
)
