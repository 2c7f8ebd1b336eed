// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package insights

import (
	"fmt"
	"strings"

	"github.com/tomtom215/stylehive/internal/transactions"
)

// BusinessRecommendations turns the reports into merchandising actions:
// promote the top three sellers, bundle the strongest co-purchase, promote
// the summer champion, and report the high-value customer share.
func (a *Analyzer) BusinessRecommendations() []string {
	return a.businessRecommendations(a.CoPurchaseInsights(), a.SeasonalInsights(), a.CustomerSegments())
}

//nolint:gocritic // reports are passed by value once per summary
func (a *Analyzer) businessRecommendations(coPurchases []CoPurchase, seasonal Seasonal, segments Segments) []string {
	var recs []string

	top := a.TopProducts(3)
	names := make([]string, len(top))
	for i, p := range top {
		names[i] = p.Product
	}
	recs = append(recs, fmt.Sprintf("Focus on promoting %s as they are your top sellers", strings.Join(names, ", ")))

	if len(coPurchases) > 0 {
		c := coPurchases[0]
		recs = append(recs, fmt.Sprintf("Bundle %s with %s (%.1f%% co-purchase rate)", c.Product1, c.Product2, c.Percentage))
	}

	if champ, ok := seasonal.Champions[transactions.Summer]; ok {
		recs = append(recs, fmt.Sprintf("Promote %s during summer months (%d summer purchases)", champ.Product, champ.Purchases))
	}

	recs = append(recs, fmt.Sprintf("Focus on customer retention - %.1f%% are high-value customers", segments.HighValueShare()))
	return recs
}

// Summary aggregates every report for the dashboard.
type Summary struct {
	KPIs            KPIs            `json:"kpis"`
	TopProducts     []TopProduct    `json:"top_products"`
	CoPurchases     []CoPurchase    `json:"co_purchase_insights"`
	Seasonal        Seasonal        `json:"seasonal_insights"`
	Segments        Segments        `json:"customer_segments"`
	Customers       CustomerSummary `json:"customers"`
	Recommendations []string        `json:"business_recommendations"`
}

// DashboardSummary builds every report once. The co-purchase list is cut to
// the configured summary size.
func (a *Analyzer) DashboardSummary() Summary {
	coPurchases := a.CoPurchaseInsights()
	seasonal := a.SeasonalInsights()
	segments := a.CustomerSegments()

	summaryCo := coPurchases
	if len(summaryCo) > a.cfg.SummaryCoPurchases {
		summaryCo = summaryCo[:a.cfg.SummaryCoPurchases]
	}

	return Summary{
		KPIs:            a.KPIs(),
		TopProducts:     a.TopProducts(0),
		CoPurchases:     summaryCo,
		Seasonal:        seasonal,
		Segments:        segments,
		Customers:       a.CustomerInsights(),
		Recommendations: a.businessRecommendations(coPurchases, seasonal, segments),
	}
}
