package config

const (
	defaultProbeBinary         = "ffprobe"
	defaultProbeTimeoutSeconds = 30
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

func defaultExtensions() []string {
	return []string{".mkv", ".mp4", ".avi", ".webm", ".mov"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Probe: Probe{
			Binary:         defaultProbeBinary,
			TimeoutSeconds: defaultProbeTimeoutSeconds,
		},
		Scan: Scan{
			Extensions: defaultExtensions(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
