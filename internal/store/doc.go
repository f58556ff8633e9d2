// Package store defines interfaces for task persistence.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, so the same service runs against a
// relational database or an in-process map.
package store
