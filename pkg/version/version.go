package version

// version is set at build time with -ldflags.
var version = "dev"

func Version() string {
	return version
}
