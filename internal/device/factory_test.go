package device

import (
	"errors"
	"strings"
	"testing"
)

func TestCatalog_CreateEachKind(t *testing.T) {
	catalog := DefaultCatalog()

	for _, kind := range AllKinds() {
		t.Run(string(kind), func(t *testing.T) {
			d, err := catalog.Create(kind, "Test "+string(kind), nil)
			if err != nil {
				t.Fatalf("Create(%q) error = %v", kind, err)
			}
			if d.Kind() != kind {
				t.Errorf("expected kind %q, got %q", kind, d.Kind())
			}
			if d.ID() == "" {
				t.Error("expected generated ID")
			}
		})
	}
}

func TestCatalog_UnknownKind(t *testing.T) {
	catalog := DefaultCatalog()

	_, err := catalog.Create(Kind("toaster"), "Kitchen Toaster", nil)
	if !errors.Is(err, ErrUnknownDeviceKind) {
		t.Errorf("expected ErrUnknownDeviceKind, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "toaster") {
		t.Errorf("error should name the kind, got %q", err.Error())
	}
}

func TestFactory_UnknownKindDirect(t *testing.T) {
	// Each family factory rejects kinds outside its family.
	_, err := LightingFactory{}.Create(KindLock, "Front Door", nil)
	if !errors.Is(err, ErrUnknownDeviceKind) {
		t.Errorf("LightingFactory: expected ErrUnknownDeviceKind, got %v", err)
	}

	_, err = SecurityFactory{}.Create(KindLight, "Hall Lamp", nil)
	if !errors.Is(err, ErrUnknownDeviceKind) {
		t.Errorf("SecurityFactory: expected ErrUnknownDeviceKind, got %v", err)
	}
}

func TestLightingFactory_Config(t *testing.T) {
	d, err := LightingFactory{}.Create(KindLight, "Hall Lamp", Config{
		"dimmable":         false,
		"color_adjustable": false,
		"id":               "light-1",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if d.ID() != "light-1" {
		t.Errorf("expected supplied ID, got %q", d.ID())
	}
	if d.Supports(CapBrightness) {
		t.Error("dimmable disabled but brightness supported")
	}
}

func TestClimateFactory_InvalidRange(t *testing.T) {
	_, err := ClimateFactory{}.Create(KindThermostat, "Landing Stat", Config{
		"min_temp": 30.0,
		"max_temp": 20.0,
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSecurityFactory_CameraConfig(t *testing.T) {
	d, err := SecurityFactory{}.Create(KindCamera, "Porch Cam", Config{
		"motion_detection": false,
		"audio":            true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if d.Supports(CapMotion) {
		t.Error("motion detection disabled but supported")
	}
	if !d.Supports(CapAudio) {
		t.Error("audio requested but not supported")
	}
}

func TestFactory_InvalidName(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"too long", strings.Repeat("x", 101)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultCatalog().Create(KindLight, tt.value, nil)
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("expected ErrInvalidName, got %v", err)
			}
		})
	}
}

func TestCatalog_Kinds(t *testing.T) {
	kinds := DefaultCatalog().Kinds()
	if len(kinds) != len(AllKinds()) {
		t.Errorf("expected %d kinds, got %d", len(AllKinds()), len(kinds))
	}
}
