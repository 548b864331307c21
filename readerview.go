// Package readerview extracts the primary article content and metadata
// from HTML documents, discarding navigation, ads and other boilerplate.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., html/, goquery/, htmltomarkdown/).
package readerview
