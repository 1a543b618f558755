package timeouts

import (
	"testing"
	"time"
)

func TestConfigure_IgnoresZeroValues(t *testing.T) {
	Reset()
	defer Reset()

	Configure(Config{Long: 45 * time.Second})

	if got := Long(); got != 45*time.Second {
		t.Errorf("Long() = %v, want 45s", got)
	}
	if got := Short(); got != DefaultShort {
		t.Errorf("Short() = %v, want default %v", got, DefaultShort)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	Reset()
	defer Reset()

	t.Setenv("TIMEOUT_PING", "750ms")
	t.Setenv("TIMEOUT_BATCH", "5m")
	t.Setenv("TIMEOUT_MEDIUM", "bogus")
	t.Setenv("TIMEOUT_SHORT", "-1s")

	if n := ConfigureFromEnv(); n != 2 {
		t.Errorf("ConfigureFromEnv() = %d, want 2", n)
	}
	if got := Ping(); got != 750*time.Millisecond {
		t.Errorf("Ping() = %v", got)
	}
	if got := Batch(); got != 5*time.Minute {
		t.Errorf("Batch() = %v", got)
	}
	if got := Medium(); got != DefaultMedium {
		t.Errorf("Medium() = %v, want default", got)
	}
}
