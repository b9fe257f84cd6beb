package app

import "testing"

func TestConfigPath(t *testing.T) {
	t.Setenv("LOCAL", "")
	if got := configPath(""); got != "/config/config.yaml" {
		t.Fatalf("configPath() = %q", got)
	}

	t.Setenv("LOCAL", "true")
	if got := configPath(""); got != "./config/config.yaml" {
		t.Fatalf("configPath() with LOCAL = %q", got)
	}

	if got := configPath("/etc/goviz.yaml"); got != "/etc/goviz.yaml" {
		t.Fatalf("configPath() with flag = %q", got)
	}
}
