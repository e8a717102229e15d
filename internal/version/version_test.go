package version

import "testing"

func TestGetVersionDefaultsToDev(t *testing.T) {
	if got := GetVersion(); got != "dev" {
		t.Errorf("GetVersion() = %q; want %q", got, "dev")
	}
}

func TestGetVersionReflectsOverride(t *testing.T) {
	original := buildVersion
	defer func() { buildVersion = original }()

	buildVersion = "1.2.3"
	if got := GetVersion(); got != "1.2.3" {
		t.Errorf("GetVersion() = %q; want %q", got, "1.2.3")
	}
}
