// Package deps locates the external executables the bootstrap depends on and
// interprets their version banners.
package deps
