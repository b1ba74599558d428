package sqlinline

import (
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

var markerLine = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// collectQueries parses the package source and returns every exported Q*
// string constant by name.
func collectQueries(t *testing.T) map[string]string {
	t.Helper()
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, ".", nil, 0)
	if err != nil {
		t.Fatal(err)
	}

	queries := make(map[string]string)
	for _, pkg := range pkgs {
		for _, file := range pkg.Files {
			for _, decl := range file.Decls {
				gen, ok := decl.(*ast.GenDecl)
				if !ok || gen.Tok != token.CONST {
					continue
				}
				for _, spec := range gen.Specs {
					vs, ok := spec.(*ast.ValueSpec)
					if !ok {
						continue
					}
					for i, name := range vs.Names {
						if !strings.HasPrefix(name.Name, "Q") || i >= len(vs.Values) {
							continue
						}
						lit, ok := vs.Values[i].(*ast.BasicLit)
						if !ok || lit.Kind != token.STRING {
							continue
						}
						value, err := strconv.Unquote(lit.Value)
						if err != nil {
							t.Fatalf("%s: %v", name.Name, err)
						}
						queries[name.Name] = value
					}
				}
			}
		}
	}
	if len(queries) == 0 {
		t.Fatal("no inline queries found")
	}
	return queries
}

func TestQueriesCarryValidMarkers(t *testing.T) {
	for name, query := range collectQueries(t) {
		first := strings.TrimSpace(strings.SplitN(strings.TrimSpace(query), "\n", 2)[0])
		if !markerLine.MatchString(first) {
			t.Errorf("%s: first line %q is not a valid sql marker", name, first)
		}
	}
}

func TestQueryMarkersAreUnique(t *testing.T) {
	seen := make(map[string]string)
	for name, query := range collectQueries(t) {
		first := strings.TrimSpace(strings.SplitN(strings.TrimSpace(query), "\n", 2)[0])
		marker := strings.TrimPrefix(first, "--sql ")
		if prev, dup := seen[marker]; dup {
			t.Errorf("marker %s shared by %s and %s", marker, prev, name)
		}
		seen[marker] = name
	}
}

func TestQueriesEndWithSemicolon(t *testing.T) {
	for name, query := range collectQueries(t) {
		if !strings.HasSuffix(strings.TrimSpace(query), ";") {
			t.Errorf("%s: query does not end with a semicolon", name)
		}
	}
}
