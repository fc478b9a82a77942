// Package application holds the application identity and resolves the
// per-user directory where vaultbak keeps its configuration.
package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "vaultbak"

	// DefaultRepoDirName is the directory created under the user's home
	// when no backup repository has been configured yet.
	DefaultRepoDirName = "vault-backup"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// ConfigDir returns the vaultbak configuration directory path.
// Linux: ~/.config/vaultbak (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\vaultbak (via os.UserCacheDir)
func ConfigDir() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

// DefaultRepoDir returns the default location for the local backup
// repository, created on first-run setup when the user has not chosen one.
func DefaultRepoDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, DefaultRepoDirName), nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		// Windows: use AppData\Local (via UserCacheDir)
		baseDir, err = os.UserCacheDir()
	default:
		// Linux/others: use ~/.config (via UserConfigDir)
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
