package forge

// Version information for the forge module.
const (
	// Version is the current version of the forge module.
	Version = "0.3.0"

	// MinCompatibleVersion is the oldest version whose composed requests match this one.
	MinCompatibleVersion = "0.3.0"
)
