// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"ixrna/pkg/api"
)

// StreamTSV prints one row per interaction as it arrives.
func StreamTSV(w io.Writer, in <-chan api.InteractionV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for v := range in {
		if _, err := fmt.Fprintln(w, FormatRowTSV(v)); err != nil {
			return err
		}
	}
	return nil
}

// StreamText prints each interaction through render.
func StreamText(w io.Writer, in <-chan api.InteractionV1, render func(api.InteractionV1) string) error {
	for v := range in {
		if _, err := io.WriteString(w, render(v)); err != nil {
			return err
		}
	}
	return nil
}
