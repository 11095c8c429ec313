package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// RegistryFileName is the name of the profile registry file.
	RegistryFileName = "profiles.ini"
	// ProfilesDirName is the name of the default profile storage directory.
	ProfilesDirName = "Profiles"
)

// ErrNoAppData is returned when the application data directory can't be found.
var ErrNoAppData = errors.New("application data directory not found")

// Locations holds the filesystem locations of a Firefox installation's
// profile data.
type Locations struct {
	// AppDataDir is the per-user application data root.
	AppDataDir string
	// RegistryFile is the path of profiles.ini.
	RegistryFile string
	// ProfilesDir is the default profile storage directory.
	ProfilesDir string
}

// NewLocations returns the [Locations] for the given GOOS value, rooted at
// appDataDir.
func NewLocations(goos, appDataDir string) Locations {
	root := filepath.Join(appDataDir, firefoxDir(goos))

	return Locations{
		AppDataDir:   appDataDir,
		RegistryFile: filepath.Join(root, RegistryFileName),
		ProfilesDir:  filepath.Join(root, ProfilesDirName),
	}
}

func firefoxDir(goos string) string {
	switch goos {
	case "windows":
		return filepath.Join("Mozilla", "Firefox")
	case "darwin":
		return "Firefox"
	}

	return "firefox"
}

// DefaultAppDataDir returns the application data root used by Firefox for the
// given GOOS value: the user config directory on Windows and macOS, and
// ~/.mozilla elsewhere.
func DefaultAppDataDir(goos string) (string, error) {
	switch goos {
	case "windows", "darwin":
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoAppData, err)
		}

		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoAppData, err)
	}

	return filepath.Join(home, ".mozilla"), nil
}
