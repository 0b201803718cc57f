// Package dataset defines the annotation records for a person
// re-identification image collection and the build-phase transformations
// that produce them: filename metadata parsing, directory collection, and
// training class index assignment.
package dataset
