// Package catalog records completed annotation builds in a small SQLite
// database: which source tree was scanned, where the artifact landed, how
// many rows each partition received, and the artifact checksum. The
// catalog is bookkeeping only; annotation files remain the sole durable
// dataset artifact.
package catalog
