package elog

import "testing"

func TestSetLevelParsesNames(t *testing.T) {
	defer SetLevel("info")
	SetLevel("debug")
	if GetLevel() != LevelDebug {
		t.Fatalf("expected debug, got %v", GetLevel())
	}
	SetLevel(" WARNING ")
	if GetLevel() != LevelWarn {
		t.Fatalf("expected warn, got %v", GetLevel())
	}
	// Unknown names leave the level untouched.
	SetLevel("chatty")
	if GetLevel() != LevelWarn {
		t.Fatalf("unknown level must be ignored, got %v", GetLevel())
	}
}
