package version

import "testing"

func TestInfo_Defaults(t *testing.T) {
	bi := Info("")
	if bi.Service != "sttsynth" {
		t.Fatalf("service = %q", bi.Service)
	}
	if bi.Version != "dev" || bi.Commit != "none" || bi.Date != "unknown" {
		t.Fatalf("unexpected stamp: %+v", bi)
	}
	if Info("sttsynth-gen").Service != "sttsynth-gen" {
		t.Fatalf("service override ignored")
	}
}
