package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBuilderBuild(t *testing.T) {
	Convey("测试 Builder Build 方法", t, func() {
		Convey("最小查询", func() {
			sql, args, err := NewBuilder().
				Select("r.*").
				From("resources", "r").
				Build()
			So(err, ShouldBeNil)
			So(sql, ShouldEqual, "SELECT r.* FROM resources AS r")
			So(args, ShouldBeNil)
		})

		Convey("无别名", func() {
			sql, _, err := NewBuilder().
				Select("COUNT(*)").
				From("resources", "").
				Build()
			So(err, ShouldBeNil)
			So(sql, ShouldEqual, "SELECT COUNT(*) FROM resources")
		})

		Convey("完整子句顺序", func() {
			sql, args, err := NewBuilder().
				Select("r.id", "r.version").
				Distinct().
				From("resources", "r").
				Join("LEFT JOIN tags AS t ON t.resource_id = r.id AND t.kind = ?", "label").
				Where(&TermQuery{Field: "r.status", Value: "active"}).
				GroupBy("r.id").
				Having(&RangeQuery{Field: "COUNT(t.id)", Gt: 0}).
				OrderBy("r.last_activity", true).
				Limit(10).
				Offset(20).
				Build()
			So(err, ShouldBeNil)
			So(sql, ShouldEqual, "SELECT DISTINCT r.id, r.version FROM resources AS r "+
				"LEFT JOIN tags AS t ON t.resource_id = r.id AND t.kind = ? "+
				"WHERE (r.status = ?) GROUP BY r.id HAVING COUNT(t.id) > ? "+
				"ORDER BY r.last_activity DESC LIMIT 10 OFFSET 20")
			So(args, ShouldResemble, []interface{}{"label", "active", 0})
		})

		Convey("多个 Where 按 AND 连接", func() {
			sql, args, err := NewBuilder().
				Select("r.*").
				From("resources", "r").
				Where(&TermQuery{Field: "r.status", Value: "active"}).
				Where(&InQuery{Field: "r.id", Values: []interface{}{"a", "b"}}).
				Build()
			So(err, ShouldBeNil)
			So(sql, ShouldEqual, "SELECT r.* FROM resources AS r WHERE (r.status = ?) AND (r.id IN (?, ?))")
			So(args, ShouldResemble, []interface{}{"active", "a", "b"})
		})

		Convey("多个排序键", func() {
			sql, _, err := NewBuilder().
				Select("r.*").
				From("resources", "r").
				OrderBy("r.last_activity", true).
				OrderBy("r.id", true).
				Build()
			So(err, ShouldBeNil)
			So(sql, ShouldEqual, "SELECT r.* FROM resources AS r ORDER BY r.last_activity DESC, r.id DESC")
		})

		Convey("缺少表名", func() {
			_, _, err := NewBuilder().Select("r.*").Build()
			So(err, ShouldEqual, ErrMissingTable)
		})

		Convey("缺少投影", func() {
			_, _, err := NewBuilder().From("resources", "r").Build()
			So(err, ShouldEqual, ErrMissingProjection)
		})

		Convey("Where 条件错误向上传递", func() {
			_, _, err := NewBuilder().
				Select("r.*").
				From("resources", "r").
				Where(&InQuery{Field: "r.id"}).
				Build()
			So(err, ShouldNotBeNil)
		})

		Convey("Build 不修改构造器，可重复构建", func() {
			b := NewBuilder().
				Select("r.*").
				From("resources", "r").
				Where(&TermQuery{Field: "r.id", Value: "a"})
			first, firstArgs, err := b.Build()
			So(err, ShouldBeNil)
			second, secondArgs, err := b.Build()
			So(err, ShouldBeNil)
			So(second, ShouldEqual, first)
			So(secondArgs, ShouldResemble, firstArgs)
		})
	})
}

func TestBuilderReset(t *testing.T) {
	Convey("测试 Builder 子句重置", t, func() {
		b := NewBuilder().
			Select("r.id").
			Distinct().
			From("resources", "r").
			GroupBy("r.id").
			Having(&RangeQuery{Field: "COUNT(*)", Gt: 1}).
			OrderBy("r.last_activity", true).
			Limit(5).
			Offset(10)

		Convey("逐个重置后回到最小查询", func() {
			sql, args, err := b.
				ResetSelect().
				ResetDistinct().
				ResetGroupBy().
				ResetHaving().
				ResetOrderBy().
				ResetLimit().
				ResetOffset().
				Select("r.*").
				Build()
			So(err, ShouldBeNil)
			So(sql, ShouldEqual, "SELECT r.* FROM resources AS r")
			So(args, ShouldBeNil)
		})
	})
}

func TestBuilderClone(t *testing.T) {
	Convey("测试 Builder Clone 方法", t, func() {
		b := NewBuilder().
			Select("r.*").
			From("resources", "r").
			Where(&TermQuery{Field: "r.status", Value: "active"}).
			OrderBy("r.last_activity", true).
			Limit(10)

		c := b.Clone()

		Convey("副本构建结果一致", func() {
			origin, originArgs, err := b.Build()
			So(err, ShouldBeNil)
			cloned, clonedArgs, err := c.Build()
			So(err, ShouldBeNil)
			So(cloned, ShouldEqual, origin)
			So(clonedArgs, ShouldResemble, originArgs)
		})

		Convey("修改副本不影响原构造器", func() {
			c.ResetOrderBy().ResetLimit().Where(&TermQuery{Field: "r.kind", Value: "user"})
			origin, _, err := b.Build()
			So(err, ShouldBeNil)
			So(origin, ShouldEqual, "SELECT r.* FROM resources AS r WHERE (r.status = ?) ORDER BY r.last_activity DESC LIMIT 10")
		})
	})
}
