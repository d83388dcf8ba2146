//go:build !windows

package platform

// EnableUTF8Console is a no-op outside Windows; terminals there already use UTF-8.
func EnableUTF8Console() error { return nil }
