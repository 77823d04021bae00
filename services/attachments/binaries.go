package attachments

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

var sofficeNames = []string{"soffice", "libreoffice"}

// findSoffice looks for LibreOffice on PATH first, then in the usual install
// locations for the current OS.
func findSoffice(configured string) (string, bool) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, true
		}
		return "", false
	}

	for _, name := range sofficeNames {
		if runtime.GOOS == "windows" {
			name += ".exe"
		}
		if p, err := exec.LookPath(name); err == nil {
			return p, true
		}
		for _, dir := range sofficeDirs() {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p, true
			}
		}
	}
	return "", false
}

func sofficeDirs() []string {
	switch runtime.GOOS {
	case "linux":
		return []string{
			"/usr/bin",
			"/usr/local/bin",
			"/usr/lib/libreoffice/program",
			"/opt/libreoffice/program",
			"/snap/bin",
		}
	case "darwin":
		return []string{
			"/Applications/LibreOffice.app/Contents/MacOS",
			"/opt/homebrew/bin",
			"/usr/local/bin",
		}
	case "windows":
		pf := os.Getenv("ProgramFiles")
		if pf == "" {
			pf = `C:\Program Files`
		}
		return []string{filepath.Join(pf, "LibreOffice", "program")}
	default:
		return nil
	}
}
