// Package pagination coordinates incremental fetching of a paginated post
// collection for an infinitely scrolling list.
//
// The Coordinator owns the fetch state (items, current page, hasMore and the
// in-flight phase) and decides, on each trigger, whether a page is requested
// and how its result is folded back into the list. At most one fetch is
// outstanding per coordinator: triggers that arrive while a page is loading
// are absorbed as no-ops, never queued.
//
// Example usage:
//
//	coord := pagination.NewCoordinator(apiClient, notifier, pagination.DefaultConfig())
//	coord.Subscribe(func(s pagination.Snapshot) { render(s) })
//	coord.Mount(ctx, permissions)   // page 1
//	coord.OnEndReached(ctx)         // page currentPage+1 while hasMore
//
// Merge rules:
//   - page 1 replaces the list (pull-to-refresh semantics)
//   - page N > 1 is appended in order
//   - hasMore is true only while a page comes back full (len == PageSize)
//   - a failed fetch leaves items, currentPage and hasMore untouched
package pagination
