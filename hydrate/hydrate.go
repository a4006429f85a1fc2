package hydrate

import "github.com/pkg/errors"

var (
	// ErrDecode 声明为 JSON 的列里存的不是合法 JSON，属于写入方和读取方的契约被破坏
	ErrDecode = errors.New("decode error")
	// ErrStructureConflict 展开点分路径时发生结构冲突，属于列命名配置错误
	ErrStructureConflict = errors.New("structure conflict")
)

// Hydrator 把展开后的嵌套结构填充到目标类型
type Hydrator interface {
	Hydrate(data map[string]any, dest any) error
}
