// Package platform provides the few OS-specific operations the bootstrap
// needs: permission tightening, exclusive file copies, executable naming and
// switching the Windows console to UTF-8.
package platform
