package resource

import (
	"github.com/pkg/errors"

	"github.com/hatlonely/resource/query"
)

// Definition 资源类型描述，每个资源类型提供一个实例注入 Repository。
// 核心只读消费，不会修改也不会长期持有传入的构造器
type Definition interface {
	Table() string
	Alias() string

	// 列名带表别名前缀，用于 WHERE 和 ORDER BY
	IDColumn() string
	VersionColumn() string
	LastActivityColumn() string

	// ApplyBase 在构造器上追加本类型的投影、JOIN 和基础过滤
	ApplyBase(b *query.Builder) *query.Builder

	// JSONFields 存有 JSON 编码子文档的列名，默认没有
	JSONFields() []string

	// NewNotFoundError 构造本类型的未找到错误，必须能被
	// errors.Is(err, ErrRecordNotFound) 识别
	NewNotFoundError(id any) error
}

// BaseDefinition Definition 的默认实现，具体资源类型内嵌后按需覆盖
type BaseDefinition struct {
	TableName    string
	TableAlias   string
	ID           string
	Version      string
	LastActivity string
	JSONColumns  []string
}

func (d *BaseDefinition) Table() string {
	return d.TableName
}

func (d *BaseDefinition) Alias() string {
	return d.TableAlias
}

func (d *BaseDefinition) IDColumn() string {
	return d.qualify(defaultColumn(d.ID, "id"))
}

func (d *BaseDefinition) VersionColumn() string {
	return d.qualify(defaultColumn(d.Version, "version"))
}

func (d *BaseDefinition) LastActivityColumn() string {
	return d.qualify(defaultColumn(d.LastActivity, "last_activity"))
}

func (d *BaseDefinition) ApplyBase(b *query.Builder) *query.Builder {
	return b.Select(d.qualify("*"))
}

func (d *BaseDefinition) JSONFields() []string {
	return d.JSONColumns
}

func (d *BaseDefinition) NewNotFoundError(id any) error {
	return errors.WithMessagef(ErrRecordNotFound, "%s with id %v", d.TableName, id)
}

func (d *BaseDefinition) qualify(column string) string {
	if d.TableAlias == "" {
		return column
	}
	return d.TableAlias + "." + column
}

func defaultColumn(column string, fallback string) string {
	if column == "" {
		return fallback
	}
	return column
}
