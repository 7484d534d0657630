package creds

import (
	"sync"
	"testing"
)

func TestCellReplaceSemantics(t *testing.T) {
	cell := NewCell()
	if got := cell.Get(); got != "" {
		t.Fatalf("fresh cell should be empty, got %q", got)
	}

	cell.Set("token-a")
	if got := cell.Get(); got != "token-a" {
		t.Fatalf("expected token-a, got %q", got)
	}

	cell.Set("")
	if got := cell.Get(); got != "" {
		t.Fatalf("expected cleared cell, got %q", got)
	}
}

func TestCellConcurrentReaders(t *testing.T) {
	cell := NewCell()
	cell.Set("stable")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := cell.Get(); got != "stable" && got != "next" {
					t.Errorf("unexpected token %q", got)
					return
				}
			}
		}()
	}
	cell.Set("next")
	wg.Wait()
}

func TestNilCellIsSafe(t *testing.T) {
	var cell *Cell
	cell.Set("ignored")
	if got := cell.Get(); got != "" {
		t.Fatalf("nil cell should read empty, got %q", got)
	}
}
