package credentials

import (
	"testing"

	"github.com/devdeck-labs/devdeck/internal/store"
	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		creds       Credentials
		want        Validation
		wantMissing []string
	}{
		{"none", Credentials{}, Validation{}, []string{"GitHub", "Linear"}},
		{"github only", Credentials{GitHub: "ghp"}, Validation{GitHub: true}, []string{"Linear"}},
		{"linear only", Credentials{Linear: "lin"}, Validation{Linear: true}, []string{"GitHub"}},
		{"both", Credentials{GitHub: "ghp", Linear: "lin"}, Validation{GitHub: true, Linear: true, Valid: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.creds.Validate()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantMissing, got.Missing()); diff != "" {
				t.Errorf("Missing mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	kv := store.NewMemory()

	c, err := Load(kv)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c != (Credentials{}) {
		t.Errorf("fresh store credentials = %+v", c)
	}

	if err := SaveGitHub(kv, "ghp_abc"); err != nil {
		t.Fatal(err)
	}
	if err := SaveLinear(kv, "lin_xyz"); err != nil {
		t.Fatal(err)
	}

	got, err := NewSource(kv).Credentials()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Credentials{GitHub: "ghp_abc", Linear: "lin_xyz"}, got); diff != "" {
		t.Errorf("credentials mismatch (-want +got):\n%s", diff)
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "***"},
		{"ghp_1234567890", "ghp_***"},
		{"lin_", "lin_***"},
	}
	for _, tt := range tests {
		if got := Redact(tt.in); got != tt.want {
			t.Errorf("Redact(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
