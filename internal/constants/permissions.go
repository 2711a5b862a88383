package constants

import "os"

// Directory permission constants.
const (
	// DirPermStandard is the standard directory permission (owner rwx, group r-x).
	DirPermStandard os.FileMode = 0750
)
