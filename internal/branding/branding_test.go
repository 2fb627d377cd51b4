package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "devdeck" {
		t.Errorf("CLIName() = %q, want %q", got, "devdeck")
	}
	if got := HomeDir(); got != ".devdeck" {
		t.Errorf("HomeDir() = %q, want %q", got, ".devdeck")
	}
}

func TestEnvVar(t *testing.T) {
	tests := []struct {
		suffix string
		want   string
	}{
		{"HOME", "DEVDECK_HOME"},
		{"store_file", "DEVDECK_STORE_FILE"},
	}
	for _, tt := range tests {
		t.Run(tt.suffix, func(t *testing.T) {
			if got := EnvVar(tt.suffix); got != tt.want {
				t.Errorf("EnvVar(%q) = %q, want %q", tt.suffix, got, tt.want)
			}
		})
	}
}
