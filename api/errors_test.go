package api_test

import (
	"errors"
	"testing"

	"github.com/rexlin1010/synergy-stable-builds/api"
)

func TestErrorWithoutContext(t *testing.T) {
	e := api.NewError(api.ErrCodeInvalidArgument, "bad argument")
	if e.Error() != "bad argument" {
		t.Errorf("Error() = %q, want %q", e.Error(), "bad argument")
	}
	if e.Code != api.ErrCodeInvalidArgument {
		t.Errorf("Code = %v, want ErrCodeInvalidArgument", e.Code)
	}
}

func TestErrorWithContextChaining(t *testing.T) {
	e := api.NewError(api.ErrCodeResourceExhausted, api.ErrResourceExhausted.Error()).
		WithContext("id", uint32(7)).
		WithContext("type", 3)

	if e.Context["id"] != uint32(7) || e.Context["type"] != 3 {
		t.Fatalf("Context = %+v, want id=7, type=3", e.Context)
	}
	if errors.Is(e, e) == false {
		t.Error("an *Error must at least be comparable to itself via errors.Is")
	}
	if e.Error() == api.ErrResourceExhausted.Error() {
		t.Error("Error() with context attached should differ from the bare message")
	}
}

func TestErrorCodeNotFoundCarriesSentinelMessage(t *testing.T) {
	e := api.NewError(api.ErrCodeNotFound, api.ErrNotFound.Error())
	if e.Error() != api.ErrNotFound.Error() {
		t.Errorf("Error() = %q, want %q", e.Error(), api.ErrNotFound.Error())
	}
}
