// Package filesystem provides the filesystem abstraction used by ownerswap.
//
// Commands work against the FS interface so they can run on the real
// filesystem (NewOS) or on an in-memory afero filesystem in tests
// (NewAferoFS(afero.NewMemMapFs())).
package filesystem
