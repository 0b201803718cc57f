// Package imaging is the default image decode and transform collaborator
// consumed by partition views. The annotation core only depends on the
// narrow Decoder contract; everything here can be swapped for another
// pipeline without touching the store or the views.
package imaging
