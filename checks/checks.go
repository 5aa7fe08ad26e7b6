package checks

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
)

// InstallPrivileges verifies the process may write the system bin directory
// before any other side effect happens. On unix that means running as root.
// Windows has no effective uid, so the directory itself is probed instead.
func InstallPrivileges(binDir string) error {
	if runtime.GOOS == "windows" {
		probe := filepath.Join(binDir, ".gost-installer-probe")
		f, err := os.OpenFile(probe, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return errors.Wrapf(err, "%s is not writable", binDir)
		}
		f.Close()
		os.Remove(probe)
		return nil
	}

	if os.Geteuid() != 0 {
		return errors.New("this installer must be run as root")
	}
	return nil
}
