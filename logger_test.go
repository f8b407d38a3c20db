package morph

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	prev := *Logger()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	g := DefaultGrid(1, 1, 10, 10)
	_, err := BuildMesh(g, g, TopologyGrid)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"component":"mesh"`)
	assert.Contains(t, buf.String(), `"faces":2`)

	buf.Reset()
	c := newCompositor(t, solid(10, 10, red), solid(10, 10, blue), g, g, TopologyDelaunay)
	c.Compose(3, 0.5)
	assert.Contains(t, buf.String(), `"component":"compositor"`)
	assert.Contains(t, buf.String(), `"frame":3`)
}
