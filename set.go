package resource

import "github.com/pkg/errors"

// ResourceSet 一页已还原的资源序列加上过滤条件命中的总数，创建后不可变。
// 总数反映过滤条件命中的全部行数，与分页窗口无关
type ResourceSet[T any] struct {
	resources []*T
	total     int64
}

func NewResourceSet[T any](resources []*T, total int64) (*ResourceSet[T], error) {
	if total < 0 || int64(len(resources)) > total {
		return nil, errors.WithMessagef(ErrInvalidCondition,
			"resource count %d exceeds total %d", len(resources), total)
	}
	return &ResourceSet[T]{
		resources: append([]*T(nil), resources...),
		total:     total,
	}, nil
}

func (s *ResourceSet[T]) Resources() []*T {
	return append([]*T(nil), s.resources...)
}

func (s *ResourceSet[T]) Total() int64 {
	return s.total
}

func (s *ResourceSet[T]) Len() int {
	return len(s.resources)
}
