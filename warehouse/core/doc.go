// Package core contains the domain events, errors and projections of the book warehouse:
// stock of books on shelves and customer orders.
//
// Everything in here is pure. The features decide on the events of this package, the shell
// turns them into storable events and back.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
