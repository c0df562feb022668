// Package types defines the core data types shared across dotprofile:
// the Profile record and its optional sub-configurations, the
// ProfileDescriptor projection produced by directory scans, and the FS
// interface every filesystem-touching component is written against.
package types
