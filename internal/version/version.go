package version

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// Schema interface version spoken by this module. Stamped on every granted
// configuration and every encoded detection record; never negotiated.
const (
	SchemaMajor uint32 = 3
	SchemaMinor uint32 = 7
	SchemaPatch uint32 = 0
)
