package format

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/storacha/ramd/pkg/admin"
	"github.com/storacha/ramd/pkg/node"
)

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("")
	require.NoError(t, err)
	require.Equal(t, TableFormat, f)

	f, err = ParseOutputFormat("json")
	require.NoError(t, err)
	require.Equal(t, JSONFormat, f)

	_, err = ParseOutputFormat("yaml")
	require.Error(t, err)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(TableFormat, &buf)

	require.NoError(t, f.Format(&admin.ListLogLevelsResponse{Levels: map[string]string{
		"rpc":    "info",
		"config": "error",
	}}))
	out := buf.String()
	require.Contains(t, out, "SUBSYSTEM")
	require.Contains(t, out, "rpc")
	require.Contains(t, out, "config")
	require.Less(t, bytes.Index(buf.Bytes(), []byte("config")), bytes.Index(buf.Bytes(), []byte("rpc")))

	buf.Reset()
	require.NoError(t, f.Format(&node.Info{ID: "12D3KooWTest", Name: "ramd", StartedAt: time.Unix(0, 0).UTC()}))
	require.Contains(t, buf.String(), "12D3KooWTest")

	require.Error(t, f.Format(42))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(JSONFormat, &buf)

	in := &admin.ListLogLevelsResponse{Levels: map[string]string{"rpc": "info"}}
	require.NoError(t, f.Format(in))

	var out admin.ListLogLevelsResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, in.Levels, out.Levels)
}
