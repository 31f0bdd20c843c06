// Package diary provides the domain types for the workout diary.
//
// This package contains type definitions and small pure helpers only. All
// other internal packages import diary; diary imports nothing internal.
//
// Key design constraints:
//   - Dates are fixed-width "YYYY-MM-DD" strings so lexicographic order
//     equals chronological order
//   - Tree.Exercises and Exercise.Entries are never nil once constructed
//     through this package or decoded by the persistence layer
//   - "All" is a filter value only, never a stored category
//   - JSON tags match the persisted store record exactly
package diary
