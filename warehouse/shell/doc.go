// Package shell is the imperative shell of the warehouse: it converts between the domain events of
// the functional core and the storable events of the eventstore, and provides what all command and
// query handlers share, like retry with exponential backoff and observability helpers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
