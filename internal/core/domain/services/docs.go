// Package services provides domain services that orchestrate business
// operations across multiple domain entities. It implements workflows that
// don't naturally belong to a single aggregate root.
//
// The package includes:
//   - OrderBuilder: assembles outbound carrier order requests from partner
//     submissions, batching vehicles into bounded-size orders and numbering
//     them per day and region.
//   - CleanPayload: strips absent values from outbound JSON payloads while
//     preserving legitimate zero values.
package services
