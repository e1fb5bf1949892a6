package integration

import (
	"context"
	"io"
	"testing"

	"ixrna/internal/app"
)

func TestCancelledRunExits130(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := app.RunContext(ctx, []string{"--tseq", "GGGG", "--qseq", "CCCC", "--quiet"}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
