// internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	// Lower layers must not reach up into the CLI/app layers.
	upper := []string{"ixrna/internal/appcore", "ixrna/internal/app", "ixrna/internal/cli", "ixrna/internal/config", "ixrna/cmd/"}
	bans := map[string][]string{
		"ixrna/internal/pipeline": upper,
		"ixrna/internal/writers":  append([]string{"ixrna/internal/pipeline", "ixrna/internal/storage"}, upper...),
		"ixrna/internal/output":   append([]string{"ixrna/internal/pipeline", "ixrna/internal/writers"}, upper...),
		"ixrna/internal/pretty":   append([]string{"ixrna/internal/pipeline", "ixrna/internal/output"}, upper...),
		"ixrna/internal/storage":  append([]string{"ixrna/internal/pipeline", "ixrna/internal/writers"}, upper...),
		"ixrna/internal/metrics":  append([]string{"ixrna/internal/pipeline", "ixrna/internal/writers"}, upper...),
		"ixrna/pkg/":              {"ixrna/internal/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "ixrna/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "ixrna/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
