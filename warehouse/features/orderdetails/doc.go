// Package orderdetails provides the full record of one order, or core.ErrNotFound.
package orderdetails
