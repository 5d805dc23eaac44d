package common

import "testing"

func TestDefaultKeyMap_HasCriticalBindings(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.Quit.Keys()) == 0 || km.Quit.Keys()[0] != "q" {
		t.Fatalf("expected q quit binding")
	}
	if len(km.Like.Keys()) == 0 || km.Like.Keys()[0] != "l" {
		t.Fatalf("expected l like binding")
	}
	if len(km.Back.Keys()) == 0 || km.Back.Keys()[0] != "esc" {
		t.Fatalf("expected esc back binding")
	}
	if len(km.Enter.Keys()) == 0 || km.Enter.Keys()[0] != "enter" {
		t.Fatalf("expected enter open binding")
	}
}
