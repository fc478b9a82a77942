// Package core implements the vaultbak flows: first-run setup, the
// archive-encrypt-publish flow, and the fetch-decrypt-restore flow.
// Flows are sequential and blocking; every piece of heavy lifting is
// delegated to external tools through the git client and the stage
// pipeline.
package core
