package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# TruthLens configuration file
# Place at ./.truthlens.yaml, ~/.config/truthlens/config.yaml,
# or /etc/truthlens/config.yaml.

version: "1.0"

# Analysis backend
server:
  # Backend origin. The hosted service or a local instance.
  url: "http://localhost:8000"
  # Whole-request timeout. Image analysis can take a while on large
  # files; 0 disables the client-side timeout entirely.
  timeout: 120s

# One-shot CLI output (analyze / verify commands)
output:
  # text, json or markdown
  default_format: "text"
  # auto, always or never
  color_mode: "auto"
  verbose: false

# Interactive viewer
ui:
  # default, high-contrast or minimal
  theme: "default"
  no_emoji: false

# Directory watch mode
watch:
  # Settle time before a newly written file is submitted
  debounce: 500ms

# Environment variables with the TRUTHLENS_ prefix override file
# settings, e.g. TRUTHLENS_SERVER_URL, TRUTHLENS_OUTPUT_FORMAT.
`
}

// MinimalSampleConfig returns a compact configuration with only the
// settings most installs change
func MinimalSampleConfig() string {
	return `# TruthLens configuration
version: "1.0"

server:
  url: "http://localhost:8000"
  timeout: 120s

output:
  default_format: "text"
`
}

// GetConfigPaths returns the config search paths with ~ expanded
func GetConfigPaths() []string {
	paths := make([]string, len(ConfigPaths))
	for i, path := range ConfigPaths {
		paths[i] = expandPath(path)
	}
	return paths
}

// FindConfigFile returns the highest-priority config file that exists
func FindConfigFile() (string, bool) {
	for _, path := range GetConfigPaths() {
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}
