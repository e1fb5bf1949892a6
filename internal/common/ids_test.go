package common

import (
	"reflect"
	"testing"

	"ixrna-core/fasta"
)

func TestDuplicateIDs(t *testing.T) {
	recs := []fasta.Record{{ID: "a"}, {ID: "b"}, {ID: "a"}, {ID: "c"}, {ID: "b"}, {ID: "a"}}
	if got := DuplicateIDs(recs); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("got %v", got)
	}
	if got := DuplicateIDs(recs[:2]); got != nil {
		t.Fatalf("want none, got %v", got)
	}
}
