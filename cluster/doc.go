// Package cluster assembles components into a wired system. A Cluster owns
// a set of components keyed by id, acts as the Facade they resolve peers
// through, and drives the bidirectional wiring protocol when components are
// connected: reference injection into matching setters and listener
// registration through Register hooks.
//
// Assembly is serialized through the cluster; proxy dispatch on wired
// components is safe to run concurrently afterwards.
package cluster
