package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storacha/ramd/pkg/admin"
)

func TestLogListCmd(t *testing.T) {
	expected := map[string]string{
		"system1": "info",
		"system2": "debug",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/log/level", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)

		resp := admin.ListLogLevelsResponse{
			Levels: expected,
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	t.Run("table", func(t *testing.T) {
		rootCmd := newRootCmd()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"log", "list", "--rpc-api", strings.TrimPrefix(server.URL, "http://")})
		require.NoError(t, rootCmd.Execute())

		for k, v := range expected {
			require.Contains(t, out.String(), k)
			require.Contains(t, out.String(), v)
		}
	})

	t.Run("json", func(t *testing.T) {
		rootCmd := newRootCmd()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"log", "list", "-o", "json", "--rpc-api", strings.TrimPrefix(server.URL, "http://")})
		require.NoError(t, rootCmd.Execute())

		var resp admin.ListLogLevelsResponse
		require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
		require.Equal(t, expected, resp.Levels)
	})
}

func TestLogSetLevelCmd(t *testing.T) {
	t.Run("sets level for a single system", func(t *testing.T) {
		rootCmd := newRootCmd()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/admin/log/level", r.URL.Path)
			require.Equal(t, http.MethodPost, r.Method)

			var req admin.SetLogLevelRequest
			json.NewDecoder(r.Body).Decode(&req)

			require.Equal(t, "system1", req.Subsystem)
			require.Equal(t, "DEBUG", req.Level)
		}))
		defer server.Close()

		rootCmd.SetArgs([]string{"log", "set-level", "--system", "system1", "DEBUG", "--rpc-api", strings.TrimPrefix(server.URL, "http://")})
		require.NoError(t, rootCmd.Execute())
	})

	t.Run("sets level for multiple systems", func(t *testing.T) {
		rootCmd := newRootCmd()
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			require.Equal(t, "/admin/log/level", r.URL.Path)
			require.Equal(t, http.MethodPost, r.Method)

			var req admin.SetLogLevelRequest
			json.NewDecoder(r.Body).Decode(&req)

			require.Contains(t, []string{"system1", "system2"}, req.Subsystem)
			require.Equal(t, "WARN", req.Level)
		}))
		defer server.Close()

		rootCmd.SetArgs([]string{"log", "set-level", "--system", "system1", "--system", "system2", "WARN", "--rpc-api", strings.TrimPrefix(server.URL, "http://")})
		require.NoError(t, rootCmd.Execute())
		require.EqualValues(t, 2, requests.Load())
	})

	t.Run("sets level for all systems", func(t *testing.T) {
		rootCmd := newRootCmd()
		var postRequests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/admin/log/level", r.URL.Path)

			if r.Method == http.MethodGet {
				resp := admin.ListLogLevelsResponse{
					Levels: map[string]string{"system1": "INFO", "system2": "INFO"},
				}
				json.NewEncoder(w).Encode(resp)
				return
			}

			postRequests.Add(1)
			require.Equal(t, http.MethodPost, r.Method)

			var req admin.SetLogLevelRequest
			json.NewDecoder(r.Body).Decode(&req)

			require.Contains(t, []string{"system1", "system2"}, req.Subsystem)
			require.Equal(t, "FATAL", req.Level)
		}))
		defer server.Close()

		rootCmd.SetArgs([]string{"log", "set-level", "FATAL", "--rpc-api", strings.TrimPrefix(server.URL, "http://")})
		require.NoError(t, rootCmd.Execute())
		require.EqualValues(t, 2, postRequests.Load())
	})
}

func TestVersionCmd(t *testing.T) {
	rootCmd := newRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "version: ")
	require.Contains(t, out.String(), "commit: ")
}
