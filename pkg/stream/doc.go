// Package stream defines the push-sequence capability consumed by
// StreamBuilder, the Snapshot type describing its latest emission, and a
// broadcast Subject implementation.
package stream
