// Package filesystem adapts afero to the types.FS interface.
//
// NewOS backs production code with afero.OsFs and NewMemory backs tests
// with afero.MemMapFs, so both run through the same adapter. Writes that
// must land whole (WriteFileAtomic, CopyFile) are expressed as synthfs
// operations executed by Run against that same adapter. WalkFiles serves
// the overlay engine and template renderer.
package filesystem
