// Package memory provides a process-local implementation of store.TaskStore.
// Data lives only for the lifetime of the process.
package memory
