package storage

import (
	"encoding/json"
	"fmt"
)

// EncodePairs serializes the base-pair list of an interaction row.
func EncodePairs(p [][2]int) ([]byte, error) {
	if p == nil {
		p = [][2]int{}
	}
	return json.Marshal(p)
}

func DecodePairs(data []byte) ([][2]int, error) {
	var p [][2]int
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode pairs: %w", err)
	}
	if len(p) == 0 {
		return nil, nil
	}
	return p, nil
}

func EncodeArgs(a []string) ([]byte, error) {
	if a == nil {
		a = []string{}
	}
	return json.Marshal(a)
}

func DecodeArgs(data []byte) ([]string, error) {
	var a []string
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode args: %w", err)
	}
	return a, nil
}
