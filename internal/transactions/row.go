// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package transactions

import (
	"time"
)

// DateLayout is the ISO calendar date format used for input and output.
const DateLayout = "2006-01-02"

// Season is the meteorological season of a purchase date.
type Season string

// Seasons in display order.
const (
	Spring Season = "Spring"
	Summer Season = "Summer"
	Fall   Season = "Fall"
	Winter Season = "Winter"
)

// Seasons returns all seasons in display order.
func Seasons() []Season {
	return []Season{Spring, Summer, Fall, Winter}
}

// SeasonOf maps a month to its season.
// December through February is Winter, March through May Spring,
// June through August Summer, and September through November Fall.
func SeasonOf(month time.Month) Season {
	switch month {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Fall
	}
}

// Row is one purchase event. Rows are immutable once loaded.
type Row struct {
	CustomerID int       `json:"customer_id"`
	Product    string    `json:"product"`
	Date       time.Time `json:"date"`
}

// NewRow builds a row, truncating the timestamp to its UTC calendar day.
func NewRow(customerID int, product string, date time.Time) Row {
	y, m, d := date.Date()
	return Row{
		CustomerID: customerID,
		Product:    product,
		Date:       time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
}

// Year returns the calendar year of the purchase.
func (r Row) Year() int { return r.Date.Year() }

// Month returns the calendar month of the purchase.
func (r Row) Month() time.Month { return r.Date.Month() }

// DayOfWeek returns the weekday of the purchase.
func (r Row) DayOfWeek() time.Weekday { return r.Date.Weekday() }

// Season returns the season of the purchase.
func (r Row) Season() Season { return SeasonOf(r.Date.Month()) }

// DateKey returns the purchase date in DateLayout form.
func (r Row) DateKey() string { return r.Date.Format(DateLayout) }

// parseDate accepts a plain ISO date or a timestamp and keeps the day.
func parseDate(value string) (time.Time, error) {
	layouts := []string{
		DateLayout,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
