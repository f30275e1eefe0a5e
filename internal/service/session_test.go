package service_test

import (
	"errors"
	"testing"

	"github.com/vortex/wordcore/internal/service"
)

func TestStore_Open_InvalidData(t *testing.T) {
	t.Parallel()
	store := service.NewStore()
	_, _, err := store.Open([]byte("not a zip"))
	if err == nil {
		t.Fatal("expected error for invalid data, got nil")
	}
}

func TestStore_UnknownSession(t *testing.T) {
	t.Parallel()
	store := service.NewStore()

	if _, err := store.Export("nonexistent"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Export: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := store.Summary("nonexistent"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Summary: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := store.Undo("nonexistent"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Undo: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := store.Redo("nonexistent"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Redo: expected ErrSessionNotFound, got %v", err)
	}
	if err := store.Close("nonexistent"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Close: expected ErrSessionNotFound, got %v", err)
	}
}
