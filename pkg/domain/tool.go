package domain

import "context"

// ParamType names the accepted type of a tool parameter.
// Values follow the schema package type names ("string", "int", "float", "bool", "[string]", ...).
type ParamType string

const (
	ParamString ParamType = "string"
	ParamInt    ParamType = "int"
	ParamFloat  ParamType = "float"
	ParamBool   ParamType = "bool"
)

// Parameter is one declared argument of a tool.
type Parameter struct {
	Name        string    `json:"name" yaml:"name" mapstructure:"name"`
	Type        ParamType `json:"type" yaml:"type" mapstructure:"type"`
	Required    bool      `json:"required" yaml:"required" mapstructure:"required"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
}

// ToolSpec describes a tool available to clients. It is immutable once registered.
type ToolSpec struct {
	Name        string      `json:"name" yaml:"name" mapstructure:"name"`
	Description string      `json:"description" yaml:"description" mapstructure:"description"`
	Parameters  []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty" mapstructure:"parameters"`
}

// Required returns the names of the required parameters in declaration order.
func (s ToolSpec) Required() []string {
	var names []string
	for _, p := range s.Parameters {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// ToolHandler produces the text reply of a tool from validated arguments.
type ToolHandler func(ctx context.Context, args map[string]any) (string, error)

// InvocationRequest is a single call of a tool by name.
type InvocationRequest struct {
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// PromptArgument is one named input of a prompt template.
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// PromptSpec is a canned prompt template exposed next to the tools.
type PromptSpec struct {
	Name        string
	Description string
	Arguments   []PromptArgument
	// Render interpolates the arguments into the template. It must not perform I/O.
	Render func(args map[string]string) (string, error)
}
