// Package order provides domain entities and business logic for order
// lifecycle management in the shop. It implements the Order aggregate root
// with its line items, shipments, and loyalty point amounts, and the Status
// state machine that fixes which lifecycle transitions are legal.
//
// The package includes:
//   - Order: the aggregate root owning items, shipments, points, and status
//   - Item: a product or charge line of an order
//   - Shipment: a grouping of items to ship, stamped when it goes out
//   - Status: the closed status set and its fixed transition graph
//
// Key business rules:
//   - Orders must have a valid identifier, at least one item, and at least
//     one shipment; guest orders have no customer
//   - Status follows the fixed graph; self-transitions are never allowed
//   - Cancel->InProgress and Returned->Delivered are deliberate compensating
//     back-transitions
//   - Status changes happen only through the OrderStateMachine domain
//     service, which couples them to stock and loyalty point adjustments
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are
// enforced.
package order
