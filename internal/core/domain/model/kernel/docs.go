// Package kernel contains shared value objects used across the shop domain
// model. It currently provides the UUID identifier type that all aggregates
// (orders, product variants, customers, shipments) use as their identity.
//
// Kernel types are immutable value objects: they are created through
// constructor functions, validate themselves, and are safe for concurrent
// use.
package kernel
