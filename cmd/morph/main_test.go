package main

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFormat(t *testing.T) {
	for _, f := range []string{"png", "jpg", "jpeg"} {
		assert.NoError(t, checkFormat(f), f)
	}
	for _, f := range []string{"gif", "PNG", "", "webp"} {
		assert.Error(t, checkFormat(f), f)
	}
}

func TestRunRejectsFormat(t *testing.T) {
	err := run(context.Background(), options{format: "bmp", output: t.TempDir()}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported frame format")
}

func TestFrameName(t *testing.T) {
	assert.Equal(t, "frame_007.png", frameName(7, "png"))
	assert.Equal(t, "frame_012.jpg", frameName(12, "jpeg"))
	assert.Equal(t, "frame_000.jpg", frameName(0, "jpg"))
}

func TestEncode(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))

	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img, "png"))
	_, err := png.Decode(&buf)
	assert.NoError(t, err)

	buf.Reset()
	require.NoError(t, encode(&buf, img, "jpg"))
	_, err = jpeg.Decode(&buf)
	assert.NoError(t, err)
}
