package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSeedFile_UTF8(t *testing.T) {
	nodes, err := readSeedFile(strings.NewReader(`[
		{"name": "Electrónica", "icon_name": "bolt", "children": [{"name": "Teléfonos"}]}
	]`), "")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Electrónica", nodes[0].Name)
	require.NotNil(t, nodes[0].IconName)
	assert.Equal(t, "bolt", *nodes[0].IconName)
	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, "Teléfonos", nodes[0].Children[0].Name)
}

func TestReadSeedFile_Latin1(t *testing.T) {
	// "Electrónica" con ó = 0xF3 en ISO-8859-1
	raw := []byte(`[{"name": "Electr` + "\xf3" + `nica"}]`)

	nodes, err := readSeedFile(bytes.NewReader(raw), "ISO-8859-1")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Electrónica", nodes[0].Name)
}

func TestReadSeedFile_Errores(t *testing.T) {
	_, err := readSeedFile(strings.NewReader(`[]`), "ebcdic")
	assert.ErrorContains(t, err, "charset")

	_, err = readSeedFile(strings.NewReader(`[{"nombre": "X"}]`), "")
	assert.Error(t, err)
}
