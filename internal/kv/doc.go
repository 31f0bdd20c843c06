// Package kv provides SQLite-backed local key/value storage for the diary.
//
// It is the device-local store every persisted record lives in:
//   - workout_diary_v1: the state tree (JSON)
//   - category_order_v1: the user's category order (JSON array)
//   - theme_pref_v1: the theme preference ("dark" | "light")
//
// Values are opaque strings; callers own their encoding. Writes overwrite
// the previous value and complete before Set returns.
//
// # Database Configuration
//
//   - WAL mode: readers never block the single writer
//   - synchronous=FULL: a returned Set survives power loss
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - one open connection: SQLite allows a single writer
package kv
