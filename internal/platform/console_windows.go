//go:build windows

package platform

import "golang.org/x/sys/windows"

const codePageUTF8 = 65001

// EnableUTF8Console switches the console input and output code pages to UTF-8
// so status markers and non-ASCII paths render correctly in cmd.exe.
func EnableUTF8Console() error {
	if err := windows.SetConsoleOutputCP(codePageUTF8); err != nil {
		return err
	}
	return windows.SetConsoleCP(codePageUTF8)
}
