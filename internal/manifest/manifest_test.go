package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultManifest(t *testing.T) {
	m, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "counter-contract", m.Name)
	assert.Equal(t, 1, m.Protocol)
	assert.Equal(t, "INFO", m.LogLevel)
	assert.Equal(t, []string{"initialize", "increment", "list_methods"}, m.Names())
	assert.Equal(t, []string{"initialize", "increment"}, m.GetWriteCommands())
	typ, ok := m.CommandTypeFor("list_methods")
	assert.True(t, ok)
	assert.Equal(t, CommandTypeRead, typ)
}

func TestCommandLookup(t *testing.T) {
	m, err := Default()
	require.NoError(t, err)

	typ, ok := m.CommandTypeFor("increment")
	assert.True(t, ok)
	assert.Equal(t, CommandTypeWrite, typ)

	for _, name := range []string{"Increment", "decrement", ""} {
		_, ok := m.CommandTypeFor(name)
		assert.False(t, ok, "command %q", name)
	}
}

func TestParseLegacyStringCommands(t *testing.T) {
	m, err := Parse([]byte(`
name: counter-contract
protocol: 1
commands: [initialize, " increment ", list_methods]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"initialize", "increment", "list_methods"}, m.Names())
	assert.Equal(t, []string{"initialize", "increment", "list_methods"}, m.GetWriteCommands())
}

func TestParseMixedCommandForms(t *testing.T) {
	m, err := Parse([]byte(`
name: counter-contract
protocol: 1
commands:
  - initialize
  - name: increment
    description: add one
  - name: list_methods
    type: read
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"initialize", "increment"}, m.GetWriteCommands())
	assert.Equal(t, "add one", m.Commands[1].Description)
	typ, ok := m.CommandTypeFor("list_methods")
	assert.True(t, ok)
	assert.Equal(t, CommandTypeRead, typ)
}

func TestParseRejectsInvalidManifests(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "missing name",
			doc:     "protocol: 1\ncommands: [increment]\n",
			wantErr: "name is required",
		},
		{
			name:    "wrong protocol",
			doc:     "name: c\nprotocol: 2\ncommands: [increment]\n",
			wantErr: "unsupported protocol version: 2",
		},
		{
			name:    "no commands",
			doc:     "name: c\nprotocol: 1\n",
			wantErr: "at least one command is required",
		},
		{
			name:    "duplicate command",
			doc:     "name: c\nprotocol: 1\ncommands: [increment, increment]\n",
			wantErr: `duplicate command "increment"`,
		},
		{
			name:    "bad command type",
			doc:     "name: c\nprotocol: 1\ncommands:\n  - name: increment\n    type: admin\n",
			wantErr: "invalid type",
		},
		{
			name:    "commands not a sequence",
			doc:     "name: c\nprotocol: 1\ncommands: increment\n",
			wantErr: "commands must be a sequence",
		},
		{
			name:    "command entry is a list",
			doc:     "name: c\nprotocol: 1\ncommands:\n  - [increment]\n",
			wantErr: "entry must be a name or an object",
		},
		{
			name:    "blank command name",
			doc:     "name: c\nprotocol: 1\ncommands: [\" \"]\n",
			wantErr: "command name is empty",
		},
		{
			name:    "not YAML",
			doc:     "name: [unterminated\n",
			wantErr: "failed to parse manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
