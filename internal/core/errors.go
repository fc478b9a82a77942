package core

import "errors"

var (
	// ErrVaultNotConfigured indicates setup has not stored a vault path yet.
	ErrVaultNotConfigured = errors.New("vault path not configured; run setup first")

	// ErrRepoNotConfigured indicates setup has not stored a repository path yet.
	ErrRepoNotConfigured = errors.New("backup repository not configured; run setup first")

	// ErrArchiveMissing indicates the encrypted archive is absent from the
	// backup repository.
	ErrArchiveMissing = errors.New("no encrypted archive found in the backup repository")
)
