package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get home dir: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "tilde slash expands",
			input: "~/registries",
			want:  filepath.Join(homeDir, "registries"),
		},
		{
			name:  "tilde alone expands",
			input: "~",
			want:  homeDir,
		},
		{
			name:  "absolute path unchanged",
			input: "/tmp/cache",
			want:  "/tmp/cache",
		},
		{
			name:  "relative path unchanged",
			input: "relative/path",
			want:  "relative/path",
		},
		{
			name:  "empty string unchanged",
			input: "",
			want:  "",
		},
		{
			name:  "tilde in middle unchanged",
			input: "/some/~/path",
			want:  "/some/~/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandPath(tt.input)
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}
	if cfg.OutputFormat != "text" {
		t.Errorf("OutputFormat = %q, want %q", cfg.OutputFormat, "text")
	}
	if cfg.Strict {
		t.Error("Strict = true, want false")
	}
	if cfg.CacheDir != "" {
		t.Errorf("CacheDir = %q, want empty (use default)", cfg.CacheDir)
	}
}

func TestGetCacheDirPriority(t *testing.T) {
	origOverride := GetCacheDirOverride()
	origEnv := os.Getenv("SEMCONV_CACHE_DIR")
	defer func() {
		SetCacheDirOverride(origOverride)
		os.Setenv("SEMCONV_CACHE_DIR", origEnv)
	}()

	t.Run("default when nothing set", func(t *testing.T) {
		SetCacheDirOverride("")
		os.Unsetenv("SEMCONV_CACHE_DIR")
		cfg := &Config{}

		got := cfg.GetCacheDir()
		want := DefaultCacheDir()
		if got != want {
			t.Errorf("GetCacheDir() = %q, want default %q", got, want)
		}
	})

	t.Run("config file value used", func(t *testing.T) {
		SetCacheDirOverride("")
		os.Unsetenv("SEMCONV_CACHE_DIR")
		cfg := &Config{CacheDir: "/opt/cache"}

		got := cfg.GetCacheDir()
		if got != "/opt/cache" {
			t.Errorf("GetCacheDir() = %q, want %q", got, "/opt/cache")
		}
	})

	t.Run("env var overrides config", func(t *testing.T) {
		SetCacheDirOverride("")
		os.Setenv("SEMCONV_CACHE_DIR", "/env/cache")
		cfg := &Config{CacheDir: "/opt/cache"}

		got := cfg.GetCacheDir()
		if got != "/env/cache" {
			t.Errorf("GetCacheDir() = %q, want %q", got, "/env/cache")
		}
	})

	t.Run("CLI flag overrides env and config", func(t *testing.T) {
		SetCacheDirOverride("/cli/cache")
		os.Setenv("SEMCONV_CACHE_DIR", "/env/cache")
		cfg := &Config{CacheDir: "/opt/cache"}

		got := cfg.GetCacheDir()
		if got != "/cli/cache" {
			t.Errorf("GetCacheDir() = %q, want %q", got, "/cli/cache")
		}
	})

	t.Run("tilde expansion in config", func(t *testing.T) {
		SetCacheDirOverride("")
		os.Unsetenv("SEMCONV_CACHE_DIR")
		cfg := &Config{CacheDir: "~/my-cache"}

		got := cfg.GetCacheDir()
		homeDir, _ := os.UserHomeDir()
		want := filepath.Join(homeDir, "my-cache")
		if got != want {
			t.Errorf("GetCacheDir() = %q, want %q", got, want)
		}
	})
}

func TestPathExists(t *testing.T) {
	tmpDir := t.TempDir()

	if !PathExists(tmpDir) {
		t.Error("PathExists() = false for existing dir")
	}

	if PathExists(filepath.Join(tmpDir, "nonexistent")) {
		t.Error("PathExists() = true for nonexistent path")
	}
}
