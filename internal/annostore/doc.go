// Package annostore persists annotation records as a flat CSV table and
// loads them back for consumption by partition views. A store is built
// wholesale from collected records, written once, and thereafter only
// read; rows are never patched in place.
package annostore
