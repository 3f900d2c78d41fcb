package main

import "testing"

func TestEnableVerboseLogging(t *testing.T) {
	if err := enableVerboseLogging(); err != nil {
		t.Fatalf("enableVerboseLogging: %v", err)
	}
}
