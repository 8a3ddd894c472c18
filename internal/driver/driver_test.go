package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/names"
	"github.com/sunholo/ownhir/internal/types"
)

func fname(n string) names.QualifiedName {
	return names.Item{Parent: names.Module{Path: "test"}, Name: n}
}

func TestRunCleanFunctionProducesNoReports(t *testing.T) {
	v := hir.NewVariable(hir.Local{Name: "v", ID: 0}, hir.Pos{})
	v.TypeCell.Set(types.Named{Name: fname("Int")})

	blk := hir.NewBlock(hir.BlockId(0))
	blk.Append(&hir.DeclareVar{Var: v, Block: hir.RootSyntaxBlock()})
	blk.Append(&hir.Return{Value: v})

	body := hir.NewBody()
	body.AddBlock(blk)

	fn := &hir.Function{
		Name:   fname("f"),
		Result: hir.Result{Single: types.Named{Name: fname("Int")}},
		Body:   body,
	}

	prog := hir.NewProgram()
	prog.AddFunction(fn)

	result, err := Run(Config{}, prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Reports) != 0 {
		t.Fatalf("expected no reports, got %+v", result.Reports)
	}
	if result.Profiles == nil || result.Profiles.Get(fname("f").String()) == nil {
		t.Fatalf("expected a profile to be recorded for f")
	}
}

func TestRunReportsAssignMismatch(t *testing.T) {
	x := hir.NewVariable(hir.Local{Name: "x", ID: 0}, hir.Pos{})
	x.TypeCell.Set(types.Named{Name: fname("Int")})
	y := hir.NewVariable(hir.Local{Name: "y", ID: 1}, hir.Pos{})
	y.TypeCell.Set(types.Named{Name: fname("String")})

	blk := hir.NewBlock(hir.BlockId(0))
	blk.Append(&hir.DeclareVar{Var: x, Block: hir.RootSyntaxBlock()})
	blk.Append(&hir.DeclareVar{Var: y, Block: hir.RootSyntaxBlock()})
	blk.Append(&hir.Assign{Dest: x, Src: y})
	blk.Append(&hir.Return{})

	body := hir.NewBody()
	body.AddBlock(blk)
	fn := &hir.Function{Name: fname("f"), Body: body}

	prog := hir.NewProgram()
	prog.AddFunction(fn)

	result, err := Run(Config{FailFast: true}, prog)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if len(result.Reports) == 0 {
		t.Fatalf("expected at least one report")
	}
	if result.Profiles != nil {
		t.Fatalf("expected FailFast to stop before function-group profiling")
	}
}

func TestRunDumpsChangedFunctions(t *testing.T) {
	dir := t.TempDir()

	v := hir.NewVariable(hir.Local{Name: "v", ID: 0}, hir.Pos{})
	v.TypeCell.Set(types.Named{Name: fname("Int")})

	b0 := hir.NewBlock(hir.BlockId(0))
	b0.Append(&hir.Jump{Target: hir.BlockId(1)})
	b1 := hir.NewBlock(hir.BlockId(1))
	b1.Append(&hir.Return{Value: v})

	body := hir.NewBody()
	body.AddBlock(b0)
	body.AddBlock(b1)
	fn := &hir.Function{Name: fname("g"), Body: body}

	prog := hir.NewProgram()
	prog.AddFunction(fn)

	if _, err := Run(Config{DumpDir: dir}, prog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(dir, "test.g.hir.txt")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected a dump file at %s: %v", path, err)
	}
}

func TestLoadConfigMissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DumpDir != "" || cfg.DumpEachPass || cfg.FailFast || cfg.LedgerHook != nil {
		t.Fatalf("expected a zero Config, got %+v", cfg)
	}
}
