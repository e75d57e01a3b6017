package domain_test

import (
	"sync"
	"testing"

	"go.trai.ch/nativ/internal/core/domain"
)

func TestUnitKind_Valid(t *testing.T) {
	for _, kind := range []domain.UnitKind{domain.UnitExecutable, domain.UnitSharedLibrary, domain.UnitMakeStep} {
		if !kind.Valid() {
			t.Errorf("expected kind %q to be valid", kind)
		}
	}
	if domain.UnitKind("jar").Valid() {
		t.Error("expected kind jar to be invalid")
	}
}

func TestBuildUnit_TargetPlatform(t *testing.T) {
	unit := domain.NewBuildUnit("libfoo", domain.UnitSharedLibrary, "linux64")
	if got := unit.TargetPlatform(); got != "linux64" {
		t.Errorf("expected linux64, got %s", got)
	}
}

func TestBuildUnit_TargetPlatformLazy(t *testing.T) {
	calls := 0
	unit := domain.NewDeferredBuildUnit("libfoo", domain.UnitSharedLibrary, func() string {
		calls++
		return "mac64"
	})

	// The resolver must not run before the platform is first needed.
	if calls != 0 {
		t.Fatalf("expected resolver not to run at declaration, ran %d times", calls)
	}

	// Concurrent resolution runs the resolver exactly once.
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := unit.TargetPlatform(); got != "mac64" {
				t.Errorf("expected mac64, got %s", got)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("expected resolver to run exactly once, ran %d times", calls)
	}
}

func TestBuildUnit_MatchesMakeStep(t *testing.T) {
	tests := []struct {
		name     string
		kind     domain.UnitKind
		platform string
		expected bool
	}{
		{name: "linux64Make", kind: domain.UnitMakeStep, platform: "linux64", expected: true},
		{name: "win64ClientMake", kind: domain.UnitMakeStep, platform: "win64", expected: true},
		{name: "linux64Make", kind: domain.UnitMakeStep, platform: "win64", expected: false},
		{name: "linux64Build", kind: domain.UnitMakeStep, platform: "linux64", expected: false},
		{name: "linux64Make", kind: domain.UnitExecutable, platform: "linux64", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name+"_"+tt.platform, func(t *testing.T) {
			unit := domain.NewBuildUnit(tt.name, tt.kind, "")
			if got := unit.MatchesMakeStep(tt.platform); got != tt.expected {
				t.Errorf("MatchesMakeStep(%q) = %v, expected %v", tt.platform, got, tt.expected)
			}
		})
	}
}
