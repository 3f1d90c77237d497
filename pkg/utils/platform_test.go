//go:build !mobile

package utils

import "testing"

func TestTouchControls(t *testing.T) {
	t.Setenv(TouchEnvVar, "")
	if TouchControls() {
		t.Error("touch controls should be off on desktop by default")
	}
	if NewPoller().Stick != nil {
		t.Error("poller should not track touches without touch controls")
	}

	t.Setenv(TouchEnvVar, "1")
	if !TouchControls() {
		t.Error("touch controls should follow the environment variable")
	}
	if NewPoller().Stick == nil {
		t.Error("poller should create a touch stick")
	}
}
