package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	// Point the config search path at an empty directory so a developer's
	// real config file cannot leak into the test.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	d := Default()
	if cfg.Refresh != d.Refresh {
		t.Errorf("refresh = %#v, want defaults %#v", cfg.Refresh, d.Refresh)
	}
	if cfg.Layout != d.Layout {
		t.Errorf("layout = %#v, want defaults %#v", cfg.Layout, d.Layout)
	}
	if cfg.Refresh.ProcessPoll() != 500*time.Millisecond {
		t.Errorf("ProcessPoll = %v", cfg.Refresh.ProcessPoll())
	}
	if cfg.Refresh.RerenderDelay() != 5*time.Second {
		t.Errorf("RerenderDelay = %v", cfg.Refresh.RerenderDelay())
	}
}

func TestConfigNormalizeClampsBadValues(t *testing.T) {
	cfg := &Config{
		Refresh: RefreshConfig{ProcessPollMs: -5, FilePollMs: 0, RerenderDelayMs: -1, StatusDurationMs: 0},
		Layout:  LayoutConfig{LandscapeDivisor: 0, FallbackColumns: -80, FallbackLines: 0},
	}
	cfg.normalize()

	d := Default()
	if cfg.Refresh != d.Refresh {
		t.Errorf("refresh = %#v, want defaults", cfg.Refresh)
	}
	if cfg.Layout != d.Layout {
		t.Errorf("layout = %#v, want defaults", cfg.Layout)
	}
}

func TestConfigEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PROCSWEEP_REFRESH_PROCESS_POLL_MS", "250")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Refresh.ProcessPollMs != 250 {
		t.Errorf("ProcessPollMs = %d, want 250 from env", cfg.Refresh.ProcessPollMs)
	}
}
