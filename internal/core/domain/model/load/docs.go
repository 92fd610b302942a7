// Package load contains the Load aggregate and the snapshot types that feed
// it: the loose wire shape of carrier order payloads, its resolved canonical
// form, and the additive merge rules that keep the ledger at one entry per
// physical shipment.
package load
