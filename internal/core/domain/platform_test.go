package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/nativ/internal/core/domain"
)

func TestRegistry_Register(t *testing.T) {
	r := domain.NewRegistry()

	if err := r.Register("linuxarm64", domain.ArchAarch64, domain.OSLinux); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := r.Lookup("linuxarm64")
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	if p.Arch != domain.ArchAarch64 || p.OS != domain.OSLinux {
		t.Errorf("unexpected platform: %+v", p)
	}

	if err := r.Register("linuxarm64", domain.ArchAarch64, domain.OSLinux); !errors.Is(err, domain.ErrPlatformAlreadyExists) {
		t.Errorf("expected ErrPlatformAlreadyExists, got %v", err)
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := domain.NewRegistry()

	_, err := r.Lookup("atari")
	if !errors.Is(err, domain.ErrPlatformNotFound) {
		t.Errorf("expected ErrPlatformNotFound, got %v", err)
	}
}

func TestRegistry_Freeze(t *testing.T) {
	r := domain.DefaultRegistry()
	r.Freeze()

	if err := r.Register("late", domain.ArchX86, domain.OSLinux); !errors.Is(err, domain.ErrRegistryFrozen) {
		t.Errorf("expected ErrRegistryFrozen, got %v", err)
	}

	// Lookups stay available after freeze.
	if _, err := r.Lookup("win64"); err != nil {
		t.Errorf("unexpected lookup error after freeze: %v", err)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := domain.DefaultRegistry()

	expected := []string{"win32", "win64", "linux64", "mac64"}
	names := r.Names()
	if len(names) != len(expected) {
		t.Fatalf("expected %d platforms, got %d", len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("expected platform %d to be %s, got %s", i, name, names[i])
		}
	}

	win32, err := r.Lookup("win32")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if win32.Arch != domain.ArchX86 || win32.OS != domain.OSWindows {
		t.Errorf("unexpected win32 platform: %+v", win32)
	}
}
