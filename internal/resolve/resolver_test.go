package resolve

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		source string
		target string
		level  int
		want   string
	}{
		{"absolute verbatim", "pkg.b", "os.path", 0, "os.path"},
		{"absolute project target", "pkg.b", "pkg.a", 0, "pkg.a"},
		{"sibling name", "pkg.b", "a", 1, "pkg.a"},
		{"parent module part", "a.b.c", "x", 2, "a.x"},
		{"level one with dotted target", "a.b.c", "x.y", 1, "a.b.x.y"},
		{"level equals segment count", "a.b", "x", 2, "x"},
		{"level exceeds segment count", "a", "x", 3, "x"},
		{"empty target joins base", "pkg.b", "", 1, "pkg"},
		{"empty target empty base", "a", "", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.source, tt.target, tt.level)
			if got != tt.want {
				t.Errorf("Resolve(%q, %q, %d) = %q, want %q", tt.source, tt.target, tt.level, got, tt.want)
			}
		})
	}
}

func TestResolverExactMatchOnly(t *testing.T) {
	modules := map[string]bool{
		"pkg.a":      true,
		"pkg.b":      true,
		"pkg.a.deep": true,
	}
	r := NewResolver(modules)

	r.Add("pkg.b", Import{Target: "pkg.a"})
	r.Add("pkg.b", Import{Target: "pkg.a.deep.extra"}) // prefix of no module, no edge
	r.Add("pkg.b", Import{Target: "pkg"})              // prefix of pkg.a, not a module
	r.Add("pkg.b", Import{Target: "os"})               // external

	deps := r.Dependencies()
	targets := deps["pkg.b"]
	if len(targets) != 1 || !targets["pkg.a"] {
		t.Errorf("expected exactly {pkg.a}, got %v", targets)
	}
}

func TestResolverDeduplicatesPerSource(t *testing.T) {
	r := NewResolver(map[string]bool{"pkg.a": true, "pkg.b": true})

	r.Add("pkg.b", Import{Target: "pkg.a"})
	r.Add("pkg.b", Import{Target: "a", Level: 1})
	r.Add("pkg.b", Import{Target: "pkg.a"})

	if got := len(r.Dependencies()["pkg.b"]); got != 1 {
		t.Errorf("expected 1 deduplicated edge, got %d", got)
	}
}

func TestResolverDegenerateLevelDoesNotRecord(t *testing.T) {
	r := NewResolver(map[string]bool{"a.x": true})

	// Dropping more segments than exist leaves just the target.
	r.Add("a", Import{Target: "x", Level: 5})

	if len(r.Dependencies()) != 0 {
		t.Errorf("expected no edges, got %v", r.Dependencies())
	}
}

func TestResolverRelativeScenario(t *testing.T) {
	// `from .. import x` inside a.b.c resolves to a.x.
	r := NewResolver(map[string]bool{"a.x": true, "a.b.c": true})
	r.Add("a.b.c", Import{Target: "x", Level: 2})

	if !r.Dependencies()["a.b.c"]["a.x"] {
		t.Errorf("expected edge a.b.c -> a.x, got %v", r.Dependencies())
	}

	// Same import when a.x is unknown records nothing.
	r2 := NewResolver(map[string]bool{"a.b.c": true})
	r2.Add("a.b.c", Import{Target: "x", Level: 2})
	if len(r2.Dependencies()) != 0 {
		t.Errorf("expected no edge for unknown target, got %v", r2.Dependencies())
	}
}
