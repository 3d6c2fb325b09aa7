// Package httpadapter exposes the stock ledger and the order manager as a JSON API under /warehouse.
//
//	GET  /warehouse/stock/{bookId}
//	POST /warehouse/stock
//	POST /warehouse/stock/deduct
//	GET  /warehouse/books/{bookId}/shelves
//	POST /warehouse/orders
//	GET  /warehouse/orders/pending
//	GET  /warehouse/orders/{orderId}
//	POST /warehouse/orders/{orderId}/fulfill
//
// Errors are answered with {"error": message}: invalid input and fulfilled orders with 400,
// unknown orders, books and stock entries with 404, insufficient stock with 409, everything else with 500.
package httpadapter
