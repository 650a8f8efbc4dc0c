package create

import (
	_ "embed"
	"strings"
)

// Message constants
const (
	MsgShort             = "Create a new project from a scaffold"
	MsgFlagScaffoldsRoot = "Directory containing the built-in scaffolds (defaults to the install location)"
	MsgCreated           = "Project created in %s"
	MsgCleanupHint       = "Downloaded scaffold kept at %s, remove it with: aidd clean"
)

// Embedded message files
var (
	//go:embed create-long.txt
	msgLongRaw string
	MsgLong    = strings.TrimSpace(msgLongRaw)

	//go:embed create-example.txt
	msgExampleRaw string
	MsgExample    = strings.TrimSpace(msgExampleRaw)
)
