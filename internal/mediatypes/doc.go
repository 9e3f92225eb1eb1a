// Package mediatypes provides shared type definitions and utilities for media
// file classification across the folder statistics service.
//
// This package exists as a dependency-free foundation that can be imported by
// other packages without creating import cycles. It contains primitive types,
// constants, and pure utility functions with no external dependencies beyond
// the standard library.
//
// # Classification
//
// Use TypeOf to determine the type of a file from its path:
//
//	switch mediatypes.TypeOf(path) {
//	case mediatypes.FileTypeImage:
//	    // Handle image
//	case mediatypes.FileTypeVideo:
//	    // Handle video
//	}
//
// IsMediaFile and IsVideo are convenience predicates over the same extension
// tables; the tables themselves (ImageExtensions, VideoExtensions) are
// exported for direct validation or iteration.
package mediatypes
