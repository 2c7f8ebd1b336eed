// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package insights

import (
	"github.com/tomtom215/stylehive/internal/transactions"
)

// Segment is a customer value tier.
type Segment string

// Customer value segments.
const (
	HighValue   Segment = "High Value"
	MediumValue Segment = "Medium Value"
	LowValue    Segment = "Low Value"
)

// Classify assigns a segment from total purchases and average purchases per
// active day.
func (t SegmentThresholds) Classify(totalPurchases int, perDay float64) Segment {
	switch {
	case totalPurchases >= t.HighValueMinPurchases && perDay >= t.HighValueMinPerDay:
		return HighValue
	case totalPurchases >= t.MediumValueMinPurchases:
		return MediumValue
	default:
		return LowValue
	}
}

// ClassifyCustomer applies the default thresholds: at least 10 purchases
// and 0.5 purchases per active day is High Value, at least 5 purchases is
// Medium Value, anything else Low Value.
func ClassifyCustomer(totalPurchases int, perDay float64) Segment {
	return DefaultSegmentThresholds().Classify(totalPurchases, perDay)
}

// CustomerSegment is one customer's activity and segment.
type CustomerSegment struct {
	transactions.CustomerActivity
	Segment Segment `json:"segment"`
}

// Segments is the segmentation report.
type Segments struct {
	Distribution map[Segment]int   `json:"distribution"`
	Customers    []CustomerSegment `json:"customers"`
}

// HighValueShare returns the percentage of customers in the High Value
// segment.
func (s Segments) HighValueShare() float64 {
	if len(s.Customers) == 0 {
		return 0
	}
	return float64(s.Distribution[HighValue]) / float64(len(s.Customers)) * 100
}

// CustomerSegments classifies every customer, ordered by customer ID.
func (a *Analyzer) CustomerSegments() Segments {
	activity := a.ds.CustomerActivity()
	out := Segments{
		Distribution: make(map[Segment]int, 3),
		Customers:    make([]CustomerSegment, len(activity)),
	}
	for i, c := range activity {
		seg := a.cfg.Segments.Classify(c.TotalPurchases, c.AvgPurchasesPerDay)
		out.Customers[i] = CustomerSegment{CustomerActivity: c, Segment: seg}
		out.Distribution[seg]++
	}
	return out
}
