package writers

import (
	"encoding/json"
	"io"

	"ixrna/internal/jsonlutil"
	"ixrna/internal/output"
	"ixrna/internal/pretty"
	"ixrna/pkg/api"
)

func init() {
	Register("text", StartText)
	Register("tsv", StartTSV)
	Register("json", StartJSON)
	Register("jsonl", StartJSONL)
}

// StartText renders each interaction as an ASCII duplex.
func StartText(out io.Writer, _ bool, bufSize int) (chan<- api.InteractionV1, <-chan error) {
	return StartTextWithPrettyOptions(out, pretty.DefaultOptions, bufSize)
}

// StartTextWithPrettyOptions allows customizing the pretty renderer.
func StartTextWithPrettyOptions(out io.Writer, popt pretty.Options, bufSize int) (chan<- api.InteractionV1, <-chan error) {
	return startFunc(bufSize, func(in <-chan api.InteractionV1) error {
		err := output.StreamText(out, in, func(v api.InteractionV1) string { return pretty.Render(v, popt) })
		if IsBrokenPipe(err) {
			return nil
		}
		return err
	})
}

// StartTSV streams one row per interaction.
func StartTSV(out io.Writer, header bool, bufSize int) (chan<- api.InteractionV1, <-chan error) {
	return startFunc(bufSize, func(in <-chan api.InteractionV1) error {
		err := output.StreamTSV(out, in, header)
		if IsBrokenPipe(err) {
			return nil
		}
		return err
	})
}

// StartJSON buffers everything and writes one JSON array on close.
func StartJSON(out io.Writer, _ bool, bufSize int) (chan<- api.InteractionV1, <-chan error) {
	return startFunc(bufSize, func(in <-chan api.InteractionV1) error {
		var buf []api.InteractionV1
		for v := range in {
			buf = append(buf, v)
		}
		err := output.WriteJSON(out, buf)
		if IsBrokenPipe(err) {
			return nil
		}
		return err
	})
}

// StartJSONL streams one JSON object per line.
func StartJSONL(out io.Writer, _ bool, bufSize int) (chan<- api.InteractionV1, <-chan error) {
	return jsonlutil.Start(out, bufSize,
		func(enc *json.Encoder, v api.InteractionV1) error { return enc.Encode(v) },
		IsBrokenPipe,
	)
}
