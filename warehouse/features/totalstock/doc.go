// Package totalstock provides the total number of copies of a book over all shelves.
// A book that was never placed has a total of 0, that is not an error.
package totalstock
