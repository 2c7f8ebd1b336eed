// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

/*
Package transactions loads retail transaction logs and derives the views the
recommendation and insight layers consume.

A Dataset is an immutable, in-memory batch of rows. Every derived view
(baskets, the customer-product matrix, per-product statistics) is recomputed
from the rows on each call; nothing is cached here. Callers that need reuse
go through the explicit fit cache in the recommend package.

# Sources

Rows come from a Source:

  - CSVSource reads a CSV file with a CustomerID,Product,Date header
  - DuckDBSource queries a CSV file or a transactions table through DuckDB

	ds, err := transactions.Load(ctx, &transactions.CSVSource{Path: "data/transactions.csv"})
	if errors.Is(err, transactions.ErrDataUnavailable) {
	    // nothing to analyze
	}

# Baskets

A basket is the set of rows sharing a (customer, date) key. Only baskets with
more than one product carry co-purchase signal, so MiningBaskets drops the
rest and caps the list for Apriori.
*/
package transactions
