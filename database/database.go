package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
)

var ErrRecordNotFound = errors.New("record not found")

// Row 查询结果行，列名到标量值的映射
type Row map[string]any

// Executor 查询执行引擎。连接与事务管理由实现负责，
// 调用方只拿到行映射、单行或单个标量
type Executor interface {
	Query(ctx context.Context, sqlStr string, args ...any) ([]Row, error)
	QueryRow(ctx context.Context, sqlStr string, args ...any) (Row, error)
	QueryScalar(ctx context.Context, sqlStr string, args ...any) (any, error)
}

// 辅助函数：拼接数据源连接串
func buildDSN(driver, dsn, username, password, host, port, database, charset string) (string, error) {
	if dsn != "" {
		return dsn, nil
	}
	switch driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
			username, password, host, port, database, charset), nil
	case "sqlite3":
		return database, nil
	default:
		return "", errors.Errorf("unsupported driver: %s", driver)
	}
}

// 辅助函数：扫描单行到 Row，TEXT 列统一归一为 string
func scanRow(rows *sql.Rows) (Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]any, len(columns))
	valuePtrs := make([]any, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	if err := rows.Scan(valuePtrs...); err != nil {
		return nil, err
	}

	row := make(Row, len(columns))
	for i, column := range columns {
		if bs, ok := values[i].([]byte); ok {
			row[column] = string(bs)
			continue
		}
		row[column] = values[i]
	}
	return row, nil
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	var result []Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func scanScalar(rows *sql.Rows) (any, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrRecordNotFound
	}
	var value any
	if err := rows.Scan(&value); err != nil {
		return nil, err
	}
	if bs, ok := value.([]byte); ok {
		return string(bs), nil
	}
	return value, nil
}
