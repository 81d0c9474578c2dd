// Package fundsight turns semi-structured tables extracted from fund report
// documents into auditable performance metrics.
//
// The package is built around two pure components, composed in a pipeline:
//
//   - Table Classifier & Parser: classifies a raw table (header plus body
//     rows) as capital calls, distributions or adjustments, and converts each
//     body row into a typed, validated Transaction. Rows that cannot be parsed
//     produce Diagnostics, never silent drops.
//   - Metrics Calculator: derives fund-level performance ratios (PIC, DPI,
//     NAV, TVPI, RVPI, IRR) from a fund's full transaction set, together with
//     a per-metric Breakdown listing the exact contributing transactions so
//     every number can be audited without re-deriving it.
//
// Both components are synchronous and side-effect free: they own no global
// state and may be invoked concurrently for different funds. All monetary
// amounts are fixed-point decimals, never binary floats.
//
// Everything else in this repository (the fsc command line tool, the sqlite
// store, the Excel export, the LLM extraction fallback) is plumbing around
// this core.
package fundsight
