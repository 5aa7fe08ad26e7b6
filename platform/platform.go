package platform

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Platform identifies which release asset variant fits the current host.
type Platform struct {
	OS   string
	Arch string
}

func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// Detect maps host-reported OS and machine names to the tokens gost uses in
// its release asset names. The mapping is closed world: anything outside the
// enumeration is an error, never a guess.
func Detect(osName, machine string) (Platform, error) {
	var p Platform

	switch strings.ToLower(osName) {
	case "linux":
		p.OS = "linux"
	case "darwin":
		p.OS = "darwin"
	case "windows":
		p.OS = "windows"
	default:
		return Platform{}, fmt.Errorf("unsupported operating system: %q", osName)
	}

	switch strings.ToLower(machine) {
	case "x86_64", "amd64":
		p.Arch = "amd64"
	case "i386", "i486", "i586", "i686", "386":
		p.Arch = "386"
	case "aarch64", "arm64":
		p.Arch = "arm64"
	case "armv5l", "armv5tel", "armv5":
		p.Arch = "armv5"
	case "armv6l", "armv6":
		p.Arch = "armv6"
	case "armv7l", "armv7":
		p.Arch = "armv7"
	case "mips64":
		p.Arch = "mips64"
	case "mips":
		p.Arch = "mips"
	case "mipsel", "mipsle":
		p.Arch = "mipsle"
	default:
		return Platform{}, fmt.Errorf("unsupported architecture: %q", machine)
	}

	return p, nil
}

// Host detects the platform of the running machine. GOARCH reports a bare
// "arm" for every 32-bit ARM subarchitecture, so those are refined through
// uname before mapping.
func Host() (Platform, error) {
	machine := runtime.GOARCH
	if machine == "arm" {
		out, err := exec.Command("uname", "-m").Output()
		if err != nil {
			return Platform{}, errors.Wrap(err, "detecting arm subarchitecture")
		}
		machine = strings.TrimSpace(string(out))
	}
	return Detect(runtime.GOOS, machine)
}
