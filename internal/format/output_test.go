package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rows struct{}

func (rows) Header() []string { return []string{"ID", "TITLE"} }
func (rows) Rows() [][]string { return [][]string{{"clip_1", "Hello"}} }

func TestWrite_JSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Envelope{Data: map[string]any{"n": 1}, Meta: map[string]any{"count": 1}}, "json", false)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got), buf.String())
	assert.Contains(t, got, "data")
	assert.Contains(t, got, "meta")
	assert.NotContains(t, got, "_hints")
}

func TestWrite_EDN(t *testing.T) {
	var buf bytes.Buffer
	v := Envelope{Data: []any{map[string]any{"id": "a", "ok": true, "n": 2, "weird key": nil}}}
	require.NoError(t, Write(&buf, v, "edn", false))
	assert.Equal(t, `{:data [{:id "a" :n 2 :ok true "weird key" nil}]}`+"\n", buf.String())
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Envelope{Data: rows{}}, "table", false))
	out := buf.String()
	for _, s := range []string{"ID", "TITLE", "clip_1", "Hello"} {
		assert.Contains(t, out, s)
	}
}

func TestWrite_TableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Envelope{Data: map[string]any{"x": 1}}, "table", false))
	assert.Contains(t, buf.String(), `"x": 1`)
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, Envelope{}, "xml", false))
}
