//go:build !sqlite

package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBRequiresSQLiteBuild(t *testing.T) {
	code, _, errOut := run(t, "--tseq", "GGGG", "--qseq", "CCCC", "--db", filepath.Join(t.TempDir(), "x.db"))
	assert.Equal(t, 3, code)
	assert.Contains(t, errOut, "rebuild with -tags sqlite")
}
