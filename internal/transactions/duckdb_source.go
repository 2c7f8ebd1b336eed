// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
)

// DefaultTable is the table DuckDBSource reads when Database is set.
const DefaultTable = "transactions"

// DuckDBSource reads rows through an embedded DuckDB instance.
//
// With CSVPath set, the file is scanned with read_csv_auto inside an
// in-memory database. With Database set, rows come from Table (default
// "transactions") in that database file, opened read-only.
type DuckDBSource struct {
	CSVPath  string
	Database string
	Table    string
}

// Name implements Source.
func (s *DuckDBSource) Name() string {
	if s.CSVPath != "" {
		return "duckdb:" + s.CSVPath
	}
	return "duckdb:" + s.Database + "#" + s.table()
}

func (s *DuckDBSource) table() string {
	if s.Table == "" {
		return DefaultTable
	}
	return s.Table
}

// query builds the SELECT for the configured input.
func (s *DuckDBSource) query() (string, error) {
	const columns = `CAST(CustomerID AS BIGINT), CAST(Product AS VARCHAR), CAST(Date AS DATE)`

	if s.CSVPath != "" {
		return fmt.Sprintf("SELECT %s FROM read_csv_auto(%s, header=true)", columns, quoteLiteral(s.CSVPath)), nil
	}
	if s.Database == "" {
		return "", errors.New("duckdb source requires a csv path or a database path")
	}
	return fmt.Sprintf("SELECT %s FROM %s", columns, quoteIdentifier(s.table())), nil
}

func (s *DuckDBSource) connString() string {
	if s.CSVPath != "" {
		return ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false"
	}
	return s.Database + "?access_mode=READ_ONLY"
}

// Rows implements Source.
func (s *DuckDBSource) Rows(ctx context.Context) ([]Row, error) {
	path := s.CSVPath
	if path == "" {
		path = s.Database
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", ErrDataUnavailable, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	query, err := s.query()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("duckdb", s.connString())
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer closeQuietly(db)

	result, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer closeQuietly(result)

	var rows []Row
	for result.Next() {
		var (
			customerID int64
			product    string
			date       time.Time
		)
		if err := result.Scan(&customerID, &product, &date); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		rows = append(rows, NewRow(int(customerID), product, date))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return rows, nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
