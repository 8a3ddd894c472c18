// Package testutil provides a small -update-flag-gated golden-file
// comparison helper shared across packages, grounded on
// internal/parser/testutil.go's goldenCompare (flag.Bool("update", ...),
// cmp.Diff against testdata/<pkg>/<name>.golden).
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Update controls whether GoldenCompare overwrites golden files instead
// of comparing against them.
//
// Usage: go test -update ./internal/...
var Update = flag.Bool("update", false, "update golden files")

// GoldenCompare compares got against testdata/<pkg>/<name>.golden. With
// -update set, it writes got as the new golden content instead.
func GoldenCompare(t *testing.T, pkg, name, got string) {
	t.Helper()

	path := filepath.Join("testdata", pkg, name+".golden")

	if *Update {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("testutil: creating %s: %v", dir, err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("testutil: writing %s: %v", path, err)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("testutil: reading %s: %v\nrun with -update to create it", path, err)
	}

	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("golden mismatch for %s/%s (-want +got):\n%s", pkg, name, diff)
	}
}
