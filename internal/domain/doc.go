// Package domain defines the core task entity, its status enumeration,
// identity, and the errors shared by every layer above it.
package domain
