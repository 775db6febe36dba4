// Package dataprocessing implements the transformation pipeline that turns an
// uploaded marketing-performance table into the two analytical views served by
// the API: the ranked per-campaign summary and the daily trend / acquisition
// cohort view.
//
// The package is built around a small set of leaf utilities shared by both
// pipelines:
//
//   - ParseNumber: tolerant numeric parsing of messy cells ($, thousands
//     separators, blanks) that defaults to zero instead of failing
//   - Categorize / NormalizeSource: keyword classification of campaign names
//     and media sources
//   - ResolveWeek: ISO-8601 week resolution with a synthetic "Unknown" bucket
//     for unparseable dates
//
// Pipelines are pure functions of the parsed Table: they hold no state between
// requests and are safe for concurrent use.
package dataprocessing
