// Package reaction implements the reaction aggregate service.
//
// The Service is the only path through which a content item's reaction counts
// change. It validates kinds against the deployment variant, checks the item
// against the content store, and applies mutations atomically through a Store.
// Counts never go negative; a mutation is either fully applied or not at all.
package reaction
