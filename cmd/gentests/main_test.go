package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vic/golambda/pkg/lambda"
)

func TestWriteFixture(t *testing.T) {
	dir := t.TempDir()
	if err := writeFixture(dir, "001_id", []byte("var: x\n"), lambda.NewVar("x")); err != nil {
		t.Fatalf("writeFixture error: %v", err)
	}
	out, err := os.ReadFile(filepath.Join(dir, "output.txt"))
	if err != nil || string(out) != "x" {
		t.Errorf("output.txt = %q (err=%v)", out, err)
	}
	src, err := os.ReadFile(filepath.Join(dir, "reduction_test.go"))
	if err != nil || !strings.Contains(string(src), "func Test_001_id_Reduction(") {
		t.Errorf("reduction_test.go = %q (err=%v)", src, err)
	}
}

// TestWriteFixtureMissingDir: a failed write is reported so the case is not
// counted as generated.
func TestWriteFixtureMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")
	if err := writeFixture(dir, "001_id", []byte("var: x\n"), lambda.NewVar("x")); err == nil {
		t.Error("expected an error writing into a missing directory")
	}
}
