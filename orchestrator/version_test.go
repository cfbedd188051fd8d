package orchestrator

import (
	"testing"

	"iaicallgrind-go/bmerrors"
)

func TestCheckVersionMatch(t *testing.T) {
	if err := CheckVersion("0.4.0", "0.4.0"); err != nil {
		t.Errorf("CheckVersion() error = %v, want nil", err)
	}
}

func TestCheckVersionMismatch(t *testing.T) {
	err := CheckVersion("0.4.0", "0.5.0")
	if err == nil {
		t.Fatal("expected error for version mismatch")
	}
	if !bmerrors.IsKind(err, bmerrors.KindVersionMismatch) {
		t.Errorf("expected KindVersionMismatch, got %v", err)
	}
}

func TestCheckVersionMalformed(t *testing.T) {
	err := CheckVersion("not-a-version", "0.4.0")
	if err == nil {
		t.Fatal("expected error for malformed version")
	}
}
