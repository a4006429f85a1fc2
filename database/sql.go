package database

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

type SQLOptions struct {
	Driver   string `cfg:"driver" def:"mysql"`
	DSN      string `cfg:"dsn"`
	Host     string `cfg:"host" def:"localhost"`
	Port     string `cfg:"port" def:"3306"`
	Database string `cfg:"database"`
	Username string `cfg:"username"`
	Password string `cfg:"password"`
	Charset  string `cfg:"charset" def:"utf8mb4"`
	MaxConns int    `cfg:"maxConns" def:"10"`
	MaxIdle  int    `cfg:"maxIdle" def:"5"`
}

// SQL 基于 database/sql 的执行引擎，支持 mysql 和 sqlite3
type SQL struct {
	observer

	db *sql.DB
}

func NewSQLWithOptions(options *SQLOptions) (*SQL, error) {
	dsn, err := buildDSN(options.Driver, options.DSN, options.Username, options.Password,
		options.Host, options.Port, options.Database, options.Charset)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(options.Driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(options.MaxConns)
	db.SetMaxIdleConns(options.MaxIdle)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &SQL{
		observer: newObserver(options.Driver),
		db:       db,
	}, nil
}

func (s *SQL) Query(ctx context.Context, sqlStr string, args ...any) (result []Row, err error) {
	ctx, span, startAt := s.start(ctx, "sql.Query")
	defer func() { s.finish(span, startAt, sqlStr, args, err) }()

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

func (s *SQL) QueryRow(ctx context.Context, sqlStr string, args ...any) (row Row, err error) {
	ctx, span, startAt := s.start(ctx, "sql.QueryRow")
	defer func() { s.finish(span, startAt, sqlStr, args, err) }()

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
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

func (s *SQL) QueryScalar(ctx context.Context, sqlStr string, args ...any) (value any, err error) {
	ctx, span, startAt := s.start(ctx, "sql.QueryScalar")
	defer func() { s.finish(span, startAt, sqlStr, args, err) }()

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScalar(rows)
}

func (s *SQL) Close() error {
	return s.db.Close()
}

// DB 暴露底层连接，供测试和迁移脚本建表灌数据
func (s *SQL) DB() *sql.DB {
	return s.db
}
