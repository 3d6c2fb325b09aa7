// Package stockledger is the Stock Ledger: it owns the count of copies of every book on every shelf.
//
// StockLedger is a facade over the placestock, deductstock, totalstock and findonshelf features.
// Every handler is wrapped with the observability configured by the options.
// The ledger keeps no state of its own: the injected event store is the single source of truth,
// so any number of ledgers may share one store.
package stockledger
