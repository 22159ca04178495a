package rembg

import (
	"os"
	"path/filepath"
	"runtime"
)

// SystemInterpreter is used when no bundled interpreter is found.
const SystemInterpreter = "python"

// BundledInterpreter returns where the virtualenv interpreter lives under baseDir.
func BundledInterpreter(baseDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(baseDir, "venv", "Scripts", "python.exe")
	}
	return filepath.Join(baseDir, "venv", "bin", "python")
}

// ResolveInterpreter prefers the bundled interpreter and falls back to the
// system one. It never fails: a missing fallback surfaces later as a failed run.
func ResolveInterpreter(baseDir string) string {
	bundled := BundledInterpreter(baseDir)
	if info, err := os.Stat(bundled); err == nil && !info.IsDir() {
		return bundled
	}
	return SystemInterpreter
}
