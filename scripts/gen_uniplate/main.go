// Command gen_uniplate regenerates pkg/essence/zz_uniplate.go by scanning
// pkg/essence for every type that implements essence.Uniplate (has both a
// Children() []Expression and a Rebuild([]Expression) Expression method)
// and emitting a name-lookup switch plus an ordered name list for it. It is
// the Go-side equivalent of the uniplate_derive proc-macro the Rust
// original relies on (see original_source/crates/uniplate_derive): since Go
// has no macros, the "derive" step runs as a separate build step instead
// of inline in the compiler, and its output is committed like any other
// generated file.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"go/format"
	"log"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"
)

func main() {
	pkgDir := flag.String("pkg", "./pkg/essence", "package directory to scan")
	out := flag.String("out", "", "output file (default <pkg>/zz_uniplate.go)")
	flag.Parse()

	outPath := *out
	if outPath == "" {
		outPath = filepath.Join(*pkgDir, "zz_uniplate.go")
	}

	names, err := findUniplateTypes(*pkgDir)
	if err != nil {
		log.Fatalf("gen_uniplate: %v", err)
	}
	sort.Strings(names)

	src := render(names)
	formatted, err := format.Source(src)
	if err != nil {
		log.Fatalf("gen_uniplate: formatting generated source: %v", err)
	}
	if err := os.WriteFile(outPath, formatted, 0o644); err != nil {
		log.Fatalf("gen_uniplate: writing %s: %v", outPath, err)
	}
}

// findUniplateTypes loads dir's package, walks every file's declarations
// looking for `func (recv *T) Children() []Expression` and `func (recv *T)
// Rebuild(...) Expression` method pairs, and returns the receiver type
// names that have both.
func findUniplateTypes(dir string) ([]string, error) {
	cfg := &packages.Config{Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo}
	pkgs, err := packages.Load(cfg, dir)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dir, err)
	}
	hasChildren := map[string]bool{}
	hasRebuild := map[string]bool{}

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				fn, ok := decl.(*ast.FuncDecl)
				if !ok || fn.Recv == nil || len(fn.Recv.List) != 1 {
					continue
				}
				recvType := receiverTypeName(fn.Recv.List[0].Type)
				if recvType == "" {
					continue
				}
				switch fn.Name.Name {
				case "Children":
					hasChildren[recvType] = true
				case "Rebuild":
					hasRebuild[recvType] = true
				}
			}
		}
	}

	var names []string
	for t := range hasChildren {
		if hasRebuild[t] {
			names = append(names, t)
		}
	}
	return names, nil
}

func receiverTypeName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

func render(names []string) []byte {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by scripts/gen_uniplate from the Uniplate-implementing\n")
	buf.WriteString("// types in this package. DO NOT EDIT.\n\n")
	buf.WriteString("package essence\n\n")
	buf.WriteString("// exprTypeName returns the generated-registry name of e's concrete type,\n")
	buf.WriteString("// a stable variant name obtained without reflection.\n")
	buf.WriteString("func exprTypeName(e Expression) string {\n\tswitch e.(type) {\n")
	for _, n := range names {
		fmt.Fprintf(&buf, "\tcase *%s:\n\t\treturn %q\n", n, n)
	}
	buf.WriteString("\tdefault:\n\t\treturn \"unknown\"\n\t}\n}\n\n")

	buf.WriteString("// allExpressionTypeNames lists every generated variant name.\n")
	buf.WriteString("var allExpressionTypeNames = []string{\n")
	for _, n := range names {
		fmt.Fprintf(&buf, "\t%q,\n", n)
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}
