// Package todo implements the locally persisted todo list.
//
// State changes go through a small reducer (Add, Toggle, Remove, Select,
// ClearSelection). List wraps the reducer and writes the whole state to a
// Store after every change, under a single key ("root").
//
// # Basic Usage
//
//	store := todo.NewRedisStore(redisClient, todo.DefaultKey())
//	list, err := todo.Open(ctx, store)
//	if err != nil {
//		return err
//	}
//	item, err := list.Add(ctx, "buy milk")
//
// # Backends
//
//   - RedisStore: JSON value in Redis, no expiry
//   - SQLiteStore: JSON value in a key/value table (modernc.org/sqlite, no cgo)
//   - MemoryStore: process memory, for tests and --store=memory
package todo
