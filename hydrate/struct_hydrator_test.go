package hydrate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOwner struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type testResource struct {
	ID           string         `json:"id"`
	Version      int64          `json:"version"`
	LastActivity time.Time      `json:"last_activity"`
	Active       bool           `json:"active"`
	Score        float64        `json:"score"`
	Owner        testOwner      `json:"owner"`
	Parent       *testOwner     `json:"parent"`
	Labels       []string       `json:"labels"`
	Metadata     map[string]any `json:"metadata"`
}

func TestStructHydratorHydrate(t *testing.T) {
	h := NewStructHydrator()

	t.Run("标量与嵌套结构", func(t *testing.T) {
		var r testResource
		err := h.Hydrate(map[string]any{
			"id":            "a1",
			"version":       int64(3),
			"last_activity": "2024-06-01 10:00:00",
			"active":        int64(1),
			"score":         95.5,
			"owner": map[string]any{
				"name":    "alice",
				"contact": "alice@example.com",
			},
			"parent": map[string]any{"name": "root"},
			"labels": []any{"x", "y"},
			"metadata": map[string]any{
				"kind": "user",
			},
		}, &r)
		require.NoError(t, err)
		assert.Equal(t, "a1", r.ID)
		assert.Equal(t, int64(3), r.Version)
		assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), r.LastActivity)
		assert.True(t, r.Active)
		assert.Equal(t, 95.5, r.Score)
		assert.Equal(t, testOwner{Name: "alice", Contact: "alice@example.com"}, r.Owner)
		require.NotNil(t, r.Parent)
		assert.Equal(t, "root", r.Parent.Name)
		assert.Equal(t, []string{"x", "y"}, r.Labels)
		assert.Equal(t, map[string]any{"kind": "user"}, r.Metadata)
	})

	t.Run("文本形式的数字列", func(t *testing.T) {
		var r testResource
		err := h.Hydrate(map[string]any{"version": "7", "score": "3.5"}, &r)
		require.NoError(t, err)
		assert.Equal(t, int64(7), r.Version)
		assert.Equal(t, 3.5, r.Score)
	})

	t.Run("驱动返回的 []byte 文本", func(t *testing.T) {
		var r testResource
		err := h.Hydrate(map[string]any{"id": []byte("a1"), "version": []byte("5")}, &r)
		require.NoError(t, err)
		assert.Equal(t, "a1", r.ID)
		assert.Equal(t, int64(5), r.Version)
	})

	t.Run("JSON 数字 float64 转整型", func(t *testing.T) {
		var r testResource
		err := h.Hydrate(map[string]any{"version": float64(4)}, &r)
		require.NoError(t, err)
		assert.Equal(t, int64(4), r.Version)
	})

	t.Run("nil 与缺失字段保持零值", func(t *testing.T) {
		var r testResource
		err := h.Hydrate(map[string]any{"id": nil}, &r)
		require.NoError(t, err)
		assert.Equal(t, "", r.ID)
		assert.Nil(t, r.Parent)
	})

	t.Run("类型不兼容报错并带字段上下文", func(t *testing.T) {
		var r testResource
		err := h.Hydrate(map[string]any{"version": "not-a-number"}, &r)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "version")
	})

	t.Run("目标必须是结构体指针", func(t *testing.T) {
		var n int
		require.Error(t, h.Hydrate(map[string]any{}, &n))
		require.Error(t, h.Hydrate(map[string]any{}, testResource{}))
	})
}

// 往返属性：写入端 flatten+encode 的行经过 decode+unflatten+hydrate 后还原原始结构
func TestHydratePipelineRoundTrip(t *testing.T) {
	row := map[string]any{
		"id":            "a1",
		"version":       "3",
		"last_activity": "2024-06-01 10:00:00",
		"owner.name":    "alice",
		"owner.contact": "alice@example.com",
		"metadata":      `{"kind":"user","note":"n"}`,
	}

	decoded, err := DecodeJSONFields(row, []string{"metadata"})
	require.NoError(t, err)
	nested, err := Unflatten(decoded)
	require.NoError(t, err)

	var r testResource
	require.NoError(t, NewStructHydrator().Hydrate(nested, &r))
	assert.Equal(t, "a1", r.ID)
	assert.Equal(t, int64(3), r.Version)
	assert.Equal(t, testOwner{Name: "alice", Contact: "alice@example.com"}, r.Owner)
	assert.Equal(t, map[string]any{"kind": "user", "note": "n"}, r.Metadata)
}
