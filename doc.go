// Package rappen is a personal multi-account, multi-currency ledger engine.
//
// It reconstructs, as of any historical date, each account's balance and share
// quantity from an append-only transaction ledger, converts native-currency
// values into a home currency using date-indexed exchange rates, and derives
// gain/loss, money-weighted (XIRR) and time-weighted (TWR) return metrics for
// investment holdings.
//
// The engine is built from immutable inputs (a Ledger, a RateTable and a
// MarkTable) and stateless calculators: a Snapshot values the portfolio at a
// single point in time, a Review compares two snapshots over a period, and the
// AccountingSystem ties everything together for the report layer. All derived
// state is recomputed on demand; nothing is cached between calls.
package rappen
