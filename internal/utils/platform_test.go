package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestIsTTY(t *testing.T) {
	t.Run("buffer is not a terminal", func(t *testing.T) {
		if IsTTY(&bytes.Buffer{}) {
			t.Error("IsTTY(buffer) = true, want false")
		}
	})

	t.Run("regular file is not a terminal", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if IsTTY(f) {
			t.Error("IsTTY(file) = true, want false")
		}
	})

	t.Run("closed file is not a terminal", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "closed.txt"))
		if err != nil {
			t.Fatal(err)
		}
		f.Close()
		if IsTTY(f) {
			t.Error("IsTTY(closed file) = true, want false")
		}
	})
}
