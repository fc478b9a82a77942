package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// settingsFileName is the optional INI file with tunables that rarely
// change. Absence of the file means all defaults.
const settingsFileName = "settings.ini"

// Settings holds the optional knobs read from settings.ini.
type Settings struct {
	// RemoteName is the git remote the backup is pushed to.
	RemoteName string
	// ArchiveName is the fixed name of the encrypted archive inside the
	// backup repository.
	ArchiveName string
	// Cipher is the symmetric cipher algorithm passed to gpg.
	Cipher string
	// HistoryKeep bounds how many snapshot rows are retained; 0 keeps all.
	HistoryKeep int
}

// DefaultSettings returns the settings used when settings.ini is absent.
func DefaultSettings() Settings {
	return Settings{
		RemoteName:  "origin",
		ArchiveName: "vault.tar.gz.gpg",
		Cipher:      "AES256",
		HistoryKeep: 0,
	}
}

// LoadSettings reads settings.ini from dir, falling back to defaults for
// a missing file or missing keys.
func LoadSettings(dir string) (Settings, error) {
	s := DefaultSettings()

	path := filepath.Join(dir, settingsFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return s, fmt.Errorf("failed to parse %s: %w", settingsFileName, err)
	}

	remote := f.Section("remote")
	s.RemoteName = remote.Key("name").MustString(s.RemoteName)

	archive := f.Section("archive")
	s.ArchiveName = archive.Key("name").MustString(s.ArchiveName)
	s.Cipher = archive.Key("cipher").MustString(s.Cipher)

	history := f.Section("history")
	s.HistoryKeep = history.Key("keep").MustInt(s.HistoryKeep)

	return s, nil
}
