package completion

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyScript(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		script  string
		wantErr bool
	}{
		{"valid bash", Bash, "_foo() { COMPREPLY=($(compgen -W \"a b\" -- \"$2\")); }\ncomplete -F _foo foo\n", false},
		{"broken bash", Bash, "case $x in\n", true},
		{"zsh is not parsed", Zsh, "#compdef foo\n(((", false},
		{"fish is not parsed", Fish, "complete -c foo ((", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyScript(tt.dialect, []byte(tt.script), "test")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerifyScript_CobraBashOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCobraRenderer(true).Render(&buf, newTestSchema(), Bash))
	assert.NoError(t, VerifyScript(Bash, buf.Bytes(), "foo.bash"))
}
