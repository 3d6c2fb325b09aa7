// Package catalog provides the book catalog collaborator of the order manager: it answers whether a book exists.
//
// StaticCatalog knows a fixed set of books, SQLCatalog looks them up in a books table (PostgreSQL or SQLite),
// and CachedCatalog puts an LRU cache in front of either one.
package catalog
