package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/testutil"
)

func TestDumpFunctionMatchesGolden(t *testing.T) {
	v := hir.NewVariable(hir.Local{Name: "v", ID: 0}, hir.Pos{})

	blk := hir.NewBlock(hir.BlockId(0))
	blk.Append(&hir.DeclareVar{Var: v, Block: hir.RootSyntaxBlock()})
	blk.Append(&hir.Return{Value: v})

	body := hir.NewBody()
	body.AddBlock(blk)
	fn := &hir.Function{Name: fname("dumped"), Body: body}

	dir := t.TempDir()
	if err := dumpFunction(dir, fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "test.dumped.hir.txt"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.GoldenCompare(t, "driver", "dump_declare_return", string(got))
}
