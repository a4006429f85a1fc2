package resource

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/hatlonely/resource/database"
	"github.com/hatlonely/resource/hydrate"
	"github.com/hatlonely/resource/query"
)

type RepositoryOptions struct {
	DefaultLimit int64 `cfg:"defaultLimit" def:"20"`

	// Hydrator 为空时使用反射填充器
	Hydrator hydrate.Hydrator
}

// Repository 单个资源类型的只读访问入口。无内部状态，每次调用独立执行
// 一到两条查询，可以被多个 goroutine 并发使用，前提是执行引擎自身并发安全
type Repository[T any] struct {
	db           database.Executor
	def          Definition
	hydrator     hydrate.Hydrator
	defaultLimit int64
}

func NewRepository[T any](db database.Executor, def Definition) (*Repository[T], error) {
	return NewRepositoryWithOptions[T](db, def, &RepositoryOptions{})
}

func NewRepositoryWithOptions[T any](db database.Executor, def Definition, options *RepositoryOptions) (*Repository[T], error) {
	if db == nil {
		return nil, errors.WithMessage(ErrInvalidCondition, "nil executor")
	}
	if def == nil {
		return nil, errors.WithMessage(ErrInvalidCondition, "nil definition")
	}
	if def.Table() == "" {
		return nil, errors.WithMessage(ErrInvalidCondition, "definition missing table")
	}

	hydrator := options.Hydrator
	if hydrator == nil {
		hydrator = hydrate.NewStructHydrator()
	}
	defaultLimit := options.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = 20
	}

	return &Repository[T]{
		db:           db,
		def:          def,
		hydrator:     hydrator,
		defaultLimit: defaultLimit,
	}, nil
}

// Exists 判断标识对应的资源是否存在
func (r *Repository[T]) Exists(ctx context.Context, id any) (bool, error) {
	sqlStr, args, err := query.NewBuilder().
		Select("COUNT(*)").
		From(r.def.Table(), r.def.Alias()).
		Where(&query.TermQuery{Field: r.def.IDColumn(), Value: id}).
		Build()
	if err != nil {
		return false, err
	}

	value, err := r.db.QueryScalar(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}
	count, err := toInt64(value)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetWithID 按标识获取单个资源，不存在时返回资源类型自己的未找到错误
func (r *Repository[T]) GetWithID(ctx context.Context, id any) (*T, error) {
	sqlStr, args, err := r.baseQuery().
		Where(&query.TermQuery{Field: r.def.IDColumn(), Value: id}).
		Limit(1).
		Build()
	if err != nil {
		return nil, err
	}

	row, err := r.db.QueryRow(ctx, sqlStr, args...)
	if err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			return nil, r.notFound(id)
		}
		return nil, err
	}
	return r.hydrateRow(row)
}

// GetCurrentVersion 查询资源当前版本号。执行引擎可能以文本返回版本列
func (r *Repository[T]) GetCurrentVersion(ctx context.Context, id any) (int64, error) {
	sqlStr, args, err := query.NewBuilder().
		Select(r.def.VersionColumn()).
		From(r.def.Table(), r.def.Alias()).
		Where(&query.TermQuery{Field: r.def.IDColumn(), Value: id}).
		Limit(1).
		Build()
	if err != nil {
		return 0, err
	}

	value, err := r.db.QueryScalar(ctx, sqlStr, args...)
	if err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			return 0, r.notFound(id)
		}
		return 0, err
	}
	return toInt64(value)
}

// GetWithIDs 按标识集合批量获取，总数是集合与存量的交集大小，
// 返回顺序为存储自然序
func (r *Repository[T]) GetWithIDs(ctx context.Context, ids []any) (*ResourceSet[T], error) {
	if len(ids) == 0 {
		return nil, errors.WithMessage(ErrInvalidCondition, "empty id set")
	}

	b := r.baseQuery().
		Where(&query.InQuery{Field: r.def.IDColumn(), Values: ids})
	return r.fetchSet(ctx, b)
}

// GetByLastActivity 按最近活跃时间倒序分页。相同活跃时间按标识列倒序兜底，
// 保证窗口滑动时不会丢行或重行
func (r *Repository[T]) GetByLastActivity(ctx context.Context, paginate *Paginate) (*ResourceSet[T], error) {
	if paginate == nil {
		paginate = &Paginate{Limit: r.defaultLimit}
	}
	if err := paginate.Validate(); err != nil {
		return nil, err
	}

	b := r.baseQuery().
		OrderBy(r.def.LastActivityColumn(), true).
		OrderBy(r.def.IDColumn(), true).
		Limit(paginate.Limit).
		Offset(paginate.Offset)
	return r.fetchSet(ctx, b)
}

func (r *Repository[T]) baseQuery() *query.Builder {
	b := query.NewBuilder().From(r.def.Table(), r.def.Alias())
	return r.def.ApplyBase(b)
}

// fetchSet 执行数据查询和由它派生的总数查询，两者共享同一份过滤条件
func (r *Repository[T]) fetchSet(ctx context.Context, b *query.Builder) (*ResourceSet[T], error) {
	sqlStr, args, err := b.Build()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}

	resources := make([]*T, 0, len(rows))
	for _, row := range rows {
		item, err := r.hydrateRow(row)
		if err != nil {
			return nil, err
		}
		resources = append(resources, item)
	}

	countStr, countArgs, err := query.DeriveCountQuery(b, r.def.IDColumn()).Build()
	if err != nil {
		return nil, err
	}
	value, err := r.db.QueryScalar(ctx, countStr, countArgs...)
	if err != nil {
		return nil, err
	}
	total, err := toInt64(value)
	if err != nil {
		return nil, err
	}

	return NewResourceSet(resources, total)
}

func (r *Repository[T]) hydrateRow(row database.Row) (*T, error) {
	decoded, err := hydrate.DecodeJSONFields(row, r.def.JSONFields())
	if err != nil {
		return nil, err
	}
	nested, err := hydrate.Unflatten(decoded)
	if err != nil {
		return nil, err
	}

	var item T
	if err := r.hydrator.Hydrate(nested, &item); err != nil {
		return nil, errors.WithMessagef(err, "hydrate %s", r.def.Table())
	}
	return &item, nil
}

func (r *Repository[T]) notFound(id any) error {
	if err := r.def.NewNotFoundError(id); err != nil {
		return err
	}
	return errors.WithMessagef(ErrRecordNotFound, "id %v", id)
}

// 辅助函数：不同驱动的标量返回类型不一致，统一转成 int64
func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, errors.Errorf("cannot parse %q as int64", v)
		}
		return n, nil
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return 0, errors.Errorf("cannot parse %q as int64", string(v))
		}
		return n, nil
	default:
		return 0, errors.Errorf("cannot convert %T to int64", value)
	}
}
