package domain

import (
	"errors"
	"testing"
)

func TestHostPlatformName(t *testing.T) {
	tests := []struct {
		goos     string
		goarch   string
		expected string
		wantErr  bool
	}{
		{goos: "windows", goarch: "386", expected: "win32"},
		{goos: "windows", goarch: "amd64", expected: "win64"},
		{goos: "windows", goarch: "arm64", expected: "win64"},
		{goos: "linux", goarch: "amd64", expected: "linux64"},
		{goos: "linux", goarch: "arm64", expected: "linux64"},
		{goos: "darwin", goarch: "arm64", expected: "mac64"},
		{goos: "darwin", goarch: "amd64", expected: "mac64"},
		{goos: "plan9", goarch: "amd64", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			name, err := HostPlatformNameFor(tt.goos, tt.goarch)
			if tt.wantErr {
				if !errors.Is(err, ErrHostPlatformUnsupported) {
					t.Errorf("expected ErrHostPlatformUnsupported, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, name)
			}
		})
	}
}
