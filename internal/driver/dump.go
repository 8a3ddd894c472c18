package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sunholo/ownhir/internal/hir"
)

// dumpFunction writes a plain-text rendering of fn's body to
// dir/<function-name>.hir.txt. spec.md §6 deliberately leaves the dump
// format out of the contract ("the format is not part of the contract"),
// so this is a minimal textual form good enough for a human to read
// block-by-block, not a format any other package parses back.
func dumpFunction(dir string, fn *hir.Function) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("driver: creating dump dir: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "function %s\n", fn.Name.String())
	if fn.HasBody() {
		for _, blk := range fn.Body.Blocks() {
			fmt.Fprintf(&b, "%s:\n", blockLabel(blk.ID))
			for _, ins := range blk.Instructions() {
				fmt.Fprintf(&b, "    %s\n", ins.String())
			}
		}
	}

	name := sanitizeFileName(fn.Name.String()) + ".hir.txt"
	return os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644)
}

func blockLabel(id hir.BlockId) string {
	return fmt.Sprintf("B%d", id)
}

func sanitizeFileName(s string) string {
	r := strings.NewReplacer("/", "_", ":", "_", "\\", "_", " ", "_")
	return r.Replace(s)
}
