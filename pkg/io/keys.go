package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/arbor/pkg/graph"
)

// KeyPair holds the two public graphs of a proof. G1 is a relabeling of G0
// when the prover knows a secret isomorphism between them.
type KeyPair struct {
	G0 *graph.Graph[graph.Label]
	G1 *graph.Graph[graph.Label]
}

type keyObject struct {
	G0 *graph.Graph[graph.Label] `json:"g0"`
	G1 *graph.Graph[graph.Label] `json:"g1"`
}

type tomlKeys struct {
	G0 *tomlGraph `toml:"g0"`
	G1 *tomlGraph `toml:"g1"`
}

// MarshalJSON writes the pair as [G0, G1].
func (k KeyPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]*graph.Graph[graph.Label]{k.G0, k.G1})
}

// UnmarshalJSON accepts [G0, G1] or {"g0": G0, "g1": G1}.
func (k *KeyPair) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj keyObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.G0 == nil || obj.G1 == nil {
			return fmt.Errorf("key object needs both g0 and g1")
		}
		k.G0, k.G1 = obj.G0, obj.G1
		return nil
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("want [G0, G1], got %d elements", len(parts))
	}
	k.G0, k.G1 = graph.Empty[graph.Label](), graph.Empty[graph.Label]()
	if err := json.Unmarshal(parts[0], k.G0); err != nil {
		return fmt.Errorf("g0: %w", err)
	}
	if err := json.Unmarshal(parts[1], k.G1); err != nil {
		return fmt.Errorf("g1: %w", err)
	}
	return nil
}

// ReadKeyPair decodes a key file from r.
func ReadKeyPair(r io.Reader, format Format) (KeyPair, error) {
	if format == FormatTOML {
		var doc tomlKeys
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return KeyPair{}, formatErr("decode toml", err)
		}
		if doc.G0 == nil || doc.G1 == nil {
			return KeyPair{}, formatErr("decode toml", fmt.Errorf("key file needs [g0] and [g1] tables"))
		}
		g0, err := doc.G0.build()
		if err != nil {
			return KeyPair{}, formatErr("g0", err)
		}
		g1, err := doc.G1.build()
		if err != nil {
			return KeyPair{}, formatErr("g1", err)
		}
		return KeyPair{G0: g0, G1: g1}, nil
	}
	var k KeyPair
	if err := json.NewDecoder(r).Decode(&k); err != nil {
		return KeyPair{}, formatErr("decode json", err)
	}
	return k, nil
}

// ImportKeyPair reads the key file at path.
func ImportKeyPair(path string) (KeyPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return KeyPair{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	k, err := ReadKeyPair(f, FormatFromPath(path))
	if err != nil {
		return KeyPair{}, fmt.Errorf("%s: %w", path, err)
	}
	return k, nil
}

// WriteKeyPair encodes k to w.
func WriteKeyPair(k KeyPair, w io.Writer, format Format) error {
	if format == FormatTOML {
		g0, g1 := toTOMLGraph(k.G0), toTOMLGraph(k.G1)
		if err := toml.NewEncoder(w).Encode(tomlKeys{G0: &g0, G1: &g1}); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	}
	if err := json.NewEncoder(w).Encode(k); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// ExportKeyPair writes k to path.
func ExportKeyPair(k KeyPair, path string) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteKeyPair(k, w, FormatFromPath(path))
	})
}
