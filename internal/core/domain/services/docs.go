// Package services contains stateless domain services implementing business
// logic that spans multiple aggregates in the order lifecycle.
//
// The package includes:
//   - ResolveTransitionEffects: classifies a status transition into the
//     side effects it carries (stock, points, timestamps) without executing
//     them
//   - InventoryAdjuster: releases and consumes variant stock under a
//     configurable negative-stock policy
//   - LoyaltyAdjuster: applies point deltas to customer balances
//   - OrderStateMachine: validates a requested transition and executes the
//     resolved effects over the order, its variants, and its customer
//
// Services are created through constructor functions and hold no mutable
// state of their own; all mutation happens on the aggregates passed in.
// Callers persist every touched aggregate within a single transaction, so
// an error from any step means the loaded aggregates must be discarded
// along with the transaction.
package services
