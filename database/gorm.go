package database

import (
	"context"

	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type GormOptions struct {
	Driver   string `cfg:"driver" def:"mysql"`
	DSN      string `cfg:"dsn"`
	Host     string `cfg:"host" def:"localhost"`
	Port     string `cfg:"port" def:"3306"`
	Database string `cfg:"database"`
	Username string `cfg:"username"`
	Password string `cfg:"password"`
	Charset  string `cfg:"charset" def:"utf8mb4"`
}

// Gorm 基于 gorm 的执行引擎，行为与 SQL 引擎一致，
// 供已经用 gorm 管理连接的服务复用同一个连接池
type Gorm struct {
	observer

	db *gorm.DB
}

func NewGormWithOptions(options *GormOptions) (*Gorm, error) {
	dsn, err := buildDSN(options.Driver, options.DSN, options.Username, options.Password,
		options.Host, options.Port, options.Database, options.Charset)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch options.Driver {
	case "mysql":
		dialector = gormmysql.Open(dsn)
	case "sqlite3":
		dialector = gormsqlite.Open(dsn)
	default:
		return nil, errors.Errorf("unsupported driver: %s", options.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		return nil, err
	}

	return &Gorm{
		observer: newObserver(options.Driver),
		db:       db,
	}, nil
}

func NewGormWithDB(driver string, db *gorm.DB) *Gorm {
	return &Gorm{
		observer: newObserver(driver),
		db:       db,
	}
}

func (g *Gorm) Query(ctx context.Context, sqlStr string, args ...any) (result []Row, err error) {
	ctx, span, startAt := g.start(ctx, "gorm.Query")
	defer func() { g.finish(span, startAt, sqlStr, args, err) }()

	rows, err := g.db.WithContext(ctx).Raw(sqlStr, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

func (g *Gorm) QueryRow(ctx context.Context, sqlStr string, args ...any) (row Row, err error) {
	ctx, span, startAt := g.start(ctx, "gorm.QueryRow")
	defer func() { g.finish(span, startAt, sqlStr, args, err) }()

	rows, err := g.db.WithContext(ctx).Raw(sqlStr, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrRecordNotFound
	}
	return scanRow(rows)
}

func (g *Gorm) QueryScalar(ctx context.Context, sqlStr string, args ...any) (value any, err error) {
	ctx, span, startAt := g.start(ctx, "gorm.QueryScalar")
	defer func() { g.finish(span, startAt, sqlStr, args, err) }()

	rows, err := g.db.WithContext(ctx).Raw(sqlStr, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScalar(rows)
}

func (g *Gorm) Close() error {
	db, err := g.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
