package config

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, config file parsing, and environment variable
// loading.

const (
	// DefaultHost is where the companion socket binds.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the companion socket port.
	DefaultPort = 7777

	// DefaultPlaylistMode is the traversal mode on startup.
	DefaultPlaylistMode = "sequential"

	// DefaultLogMaxSize is the rotation threshold in MiB.
	DefaultLogMaxSize = 10

	// DefaultLogBackups is how many rotated log files to keep.
	DefaultLogBackups = 3
)
