package shared

import "os"

const (
	OwnerReadWriteExec = os.FileMode(0o700)

	// StdinSource is the source argument that makes commands read stdin.
	StdinSource = "-"
)
