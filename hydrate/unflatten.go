package hydrate

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Unflatten 把点分隔的扁平键重建为嵌套 map。冲突一律报错而不是覆盖：
// 中间段上已有标量、或终点上已有值，都说明列命名自相矛盾。
// 因为冲突必然报错，合法输入在任意键序下都得到同一棵树；
// 这里按键排序只是让报出的冲突稳定可复现。
func Unflatten(flat map[string]any) (map[string]any, error) {
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make(map[string]any, len(flat))
	for _, key := range keys {
		if err := assign(result, key, flat[key]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func assign(root map[string]any, key string, value any) error {
	segments := strings.Split(key, ".")
	current := root

	for i, segment := range segments[:len(segments)-1] {
		existing, ok := current[segment]
		if !ok {
			next := make(map[string]any)
			current[segment] = next
			current = next
			continue
		}
		next, ok := existing.(map[string]any)
		if !ok {
			return errors.WithMessagef(ErrStructureConflict,
				"key %s: segment %s already holds a scalar", key, strings.Join(segments[:i+1], "."))
		}
		current = next
	}

	last := segments[len(segments)-1]
	if existing, ok := current[last]; ok {
		if _, isMap := existing.(map[string]any); isMap {
			return errors.WithMessagef(ErrStructureConflict,
				"key %s: already expanded as a nested mapping", key)
		}
		return errors.WithMessagef(ErrStructureConflict, "key %s: duplicate assignment", key)
	}
	current[last] = value
	return nil
}
