package manifest

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const supportedProtocol = 1

//go:embed manifest.yaml
var embedded []byte

// CommandType is a coarse hint for a command: read commands never touch
// state, write commands mutate it and announce the change with an event.
type CommandType string

const (
	CommandTypeRead  CommandType = "read"
	CommandTypeWrite CommandType = "write"
)

func (t CommandType) valid() bool {
	return t == CommandTypeRead || t == CommandTypeWrite
}

// Command declares a supported contract method and its type.
type Command struct {
	Name        string      `yaml:"name"`
	Type        CommandType `yaml:"type"`
	Description string      `yaml:"description,omitempty"`
}

// Commands is the ordered command list. Entries are either a bare name,
// which declares a write command, or a {name, type, description} object.
type Commands []Command

func (c *Commands) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("commands must be a sequence")
	}

	list := make(Commands, len(n.Content))
	for i, item := range n.Content {
		cmd, err := decodeCommand(item)
		if err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
		list[i] = cmd
	}
	*c = list
	return nil
}

func decodeCommand(n *yaml.Node) (Command, error) {
	var cmd Command
	switch n.Kind {
	case yaml.ScalarNode:
		cmd.Name = n.Value
	case yaml.MappingNode:
		if err := n.Decode(&cmd); err != nil {
			return Command{}, fmt.Errorf("invalid command object: %w", err)
		}
	default:
		return Command{}, fmt.Errorf("entry must be a name or an object")
	}

	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Type == "" {
		cmd.Type = CommandTypeWrite
	}
	return cmd, nil
}

// Manifest describes the contract: its identity and the methods it accepts.
type Manifest struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Protocol    int      `yaml:"protocol"`
	Description string   `yaml:"description,omitempty"`
	LogLevel    string   `yaml:"log_level,omitempty"`
	Commands    Commands `yaml:"commands"`
}

// Default returns the manifest compiled into the binary.
func Default() (*Manifest, error) {
	return Parse(embedded)
}

// Parse decodes and validates a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if m.Protocol != supportedProtocol {
		return fmt.Errorf("unsupported protocol version: %d (expected %d)", m.Protocol, supportedProtocol)
	}
	if len(m.Commands) == 0 {
		return fmt.Errorf("at least one command is required")
	}

	seen := make(map[string]struct{}, len(m.Commands))
	for _, c := range m.Commands {
		if c.Name == "" {
			return fmt.Errorf("command name is empty")
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("duplicate command %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if !c.Type.valid() {
			return fmt.Errorf("command %q has invalid type %q (must be read or write)", c.Name, c.Type)
		}
	}
	return nil
}

// CommandTypeFor returns the declared type for a command.
func (m *Manifest) CommandTypeFor(cmd string) (CommandType, bool) {
	for _, c := range m.Commands {
		if c.Name == cmd {
			return c.Type, true
		}
	}
	return "", false
}

// Names returns every declared command name, preserving manifest order.
func (m *Manifest) Names() []string {
	out := make([]string, 0, len(m.Commands))
	for _, c := range m.Commands {
		out = append(out, c.Name)
	}
	return out
}

// GetWriteCommands returns the state-mutating command names in manifest order.
func (m *Manifest) GetWriteCommands() []string {
	out := []string{}
	for _, c := range m.Commands {
		if c.Type == CommandTypeWrite {
			out = append(out, c.Name)
		}
	}
	return out
}
