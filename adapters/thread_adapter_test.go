package adapters_test

import (
	"errors"
	"testing"

	"github.com/momentics/hioload-fiber/adapters"
	"github.com/momentics/hioload-fiber/api"
	"github.com/momentics/hioload-fiber/emulated"
)

func TestNewThreadFactoryBackends(t *testing.T) {
	native, err := adapters.NewThreadFactory(api.BackendNative)
	if err != nil {
		t.Fatalf("native factory: %v", err)
	}
	if native.Cooperative() {
		t.Error("native factory reports cooperative scheduling")
	}

	emu, err := adapters.NewThreadFactory(api.BackendEmulated)
	if err != nil {
		t.Fatalf("emulated factory: %v", err)
	}
	if !emu.Cooperative() {
		t.Error("emulated factory does not report cooperative scheduling")
	}
	if _, ok := emu.(*emulated.Factory); !ok {
		t.Errorf("emulated factory has type %T", emu)
	}

	if _, err := adapters.NewThreadFactory(api.Backend(99)); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("unknown backend error = %v, want %v", err, api.ErrInvalidArgument)
	}
}
