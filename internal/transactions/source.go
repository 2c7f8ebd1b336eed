// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package transactions

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// Column names expected in transaction input.
const (
	ColumnCustomerID = "CustomerID"
	ColumnProduct    = "Product"
	ColumnDate       = "Date"
)

// Source yields transaction rows.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// Rows reads every row from the source.
	Rows(ctx context.Context) ([]Row, error)
}

// CSVSource reads rows from a CSV file whose header names the
// CustomerID, Product and Date columns in any order.
type CSVSource struct {
	Path string
}

// Name implements Source.
func (s *CSVSource) Name() string { return "csv:" + s.Path }

// Rows implements Source.
func (s *CSVSource) Rows(ctx context.Context) ([]Row, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", ErrDataUnavailable, s.Path)
		}
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer closeQuietly(f)

	return ReadCSV(ctx, f)
}

// ReadCSV parses transaction rows from r.
func ReadCSV(ctx context.Context, r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)

	// UTF-8 BOM
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty csv", ErrDataUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if line%1024 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		row, err := parseRecord(record, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

type columnIndex struct {
	customer, product, date int
}

func headerIndex(header []string) (columnIndex, error) {
	idx := columnIndex{customer: -1, product: -1, date: -1}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case ColumnCustomerID:
			idx.customer = i
		case ColumnProduct:
			idx.product = i
		case ColumnDate:
			idx.date = i
		}
	}

	var missing []string
	if idx.customer < 0 {
		missing = append(missing, ColumnCustomerID)
	}
	if idx.product < 0 {
		missing = append(missing, ColumnProduct)
	}
	if idx.date < 0 {
		missing = append(missing, ColumnDate)
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRecord(record []string, idx columnIndex) (Row, error) {
	field := func(i int) string {
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	customerID, err := strconv.Atoi(field(idx.customer))
	if err != nil {
		return Row{}, fmt.Errorf("invalid %s %q: %w", ColumnCustomerID, field(idx.customer), err)
	}

	product := field(idx.product)
	if product == "" {
		return Row{}, fmt.Errorf("empty %s", ColumnProduct)
	}

	date, err := parseDate(field(idx.date))
	if err != nil {
		return Row{}, fmt.Errorf("invalid %s %q: %w", ColumnDate, field(idx.date), err)
	}

	return NewRow(customerID, product, date), nil
}
