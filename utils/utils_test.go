package utils

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "2m:5s", FormatTime(2*time.Minute+5*time.Second))
	assert.Equal(t, "1h:2m:3s", FormatTime(time.Hour+2*time.Minute+3*time.Second))
}

func TestDecorate(t *testing.T) {
	assert.Equal(t, "done", Decorate("done", SuccessColor, false))
	assert.Equal(t, SuccessColor+"done"+DefaultColor, Decorate("done", SuccessColor, true))
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/a.png"))
	assert.True(t, IsURL("http://example.com/a.png"))
	assert.False(t, IsURL("images/a.png"))
	assert.False(t, IsURL("ftp://example.com/a.png"))
}

func TestDownloadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/face.png" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "not really a png")
	}))
	defer srv.Close()

	f, err := DownloadImage(srv.URL + "/face.png")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "not really a png", string(data))

	_, err = DownloadImage(srv.URL + "/missing.png")
	assert.Error(t, err)
}

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf)
	s.Stop() // not started

	s.Start("Morphing...")
	s.SetMessage("Morphing frame 1/5")
	assert.Equal(t, "Morphing frame 1/5", s.Message())
	s.Stop()

	assert.True(t, strings.HasSuffix(buf.String(), "\r\x1b[K"))
}
