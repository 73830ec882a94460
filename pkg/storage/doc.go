// Package storage implements the save backend on top of the fileio layer.
//
// One FileBackend serves every platform. Platform differences are limited
// to the save root and path separator, both resolved by package platform;
// the header layout, obfuscation, checksum and validation come from package
// format, so files written on one platform load on any other.
package storage
