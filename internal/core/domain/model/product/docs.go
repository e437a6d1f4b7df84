// Package product provides the ProductVariant aggregate: a saleable SKU
// with a tracked stock quantity or an unlimited-stock flag. The state
// machine's inventory side effects mutate only the quantity; variants are
// created and deleted by catalogue flows outside this core.
package product
