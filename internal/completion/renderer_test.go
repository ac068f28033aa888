package completion

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCobraRenderer_AllDialects(t *testing.T) {
	for _, d := range AllDialects {
		t.Run(d.String(), func(t *testing.T) {
			var buf bytes.Buffer
			err := NewCobraRenderer(true).Render(&buf, newTestSchema(), d)
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "foo")
		})
	}
}

func TestCobraRenderer_Descriptions(t *testing.T) {
	var withDesc, withoutDesc bytes.Buffer
	require.NoError(t, NewCobraRenderer(true).Render(&withDesc, newTestSchema(), Fish))
	require.NoError(t, NewCobraRenderer(false).Render(&withoutDesc, newTestSchema(), Fish))

	assert.Contains(t, withDesc.String(), "__complete")
	assert.Contains(t, withoutDesc.String(), "__completeNoDesc")
}

func TestCobraRenderer_UnknownDialect(t *testing.T) {
	var buf bytes.Buffer
	err := NewCobraRenderer(true).Render(&buf, newTestSchema(), Dialect("tcsh"))
	assert.ErrorIs(t, err, ErrUnknownDialect)
	assert.Zero(t, buf.Len())
}
