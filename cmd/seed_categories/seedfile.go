package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	appcategory "github.com/zmitacart/catalog-api/internal/application/category"
)

// readSeedFile decodifica el árbol JSON. charset vacío o utf-8 lee tal cual;
// ISO-8859-1 / latin1 se transcodifica antes de decodificar.
func readSeedFile(r io.Reader, charset string) ([]*appcategory.SeedNode, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
	case "iso-8859-1", "iso8859-1", "latin1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case "windows-1252", "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("charset no soportado: %q", charset)
	}

	var nodes []*appcategory.SeedNode
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&nodes); err != nil {
		return nil, fmt.Errorf("decodificar JSON: %w", err)
	}
	return nodes, nil
}
