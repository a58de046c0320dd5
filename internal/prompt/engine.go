// Package prompt renders extraction instructions from YAML templates with
// {{name}} placeholders.
package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultType is the prompt type used when a request does not name one
const DefaultType = "calendar_event"

// Built-in variable names filled by the relay
const (
	VarInput      = "input"
	VarPromptType = "prompt_type"
	VarToday      = "today"
	VarLang       = "lang"
)

const defaultPrompt = `Extract structured {{prompt_type}} information from the following text.
Always return valid JSON.
Convert relative dates to absolute (today is {{today}}).
Input: {{input}}
`

var (
	// ErrInvalidPromptType is returned for names that are not safe file stems
	ErrInvalidPromptType = errors.New("invalid prompt type")
	// ErrEmptyTemplate is returned for a template file without a prompt
	ErrEmptyTemplate = errors.New("template has no prompt")

	placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)
	promptTypePattern  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Template is one prompt definition
type Template struct {
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
	System      string `yaml:"system,omitempty"`
	Prompt      string `yaml:"prompt"`
}

// Engine loads templates from a directory, falling back to the built-in one
type Engine struct {
	dir string
}

// NewEngine creates an engine reading <dir>/<type>.yaml. dir may be empty.
func NewEngine(dir string) *Engine {
	return &Engine{dir: dir}
}

// ValidType reports whether promptType can name a template
func ValidType(promptType string) bool {
	return promptTypePattern.MatchString(promptType)
}

// Load returns the template for promptType
func (e *Engine) Load(promptType string) (*Template, error) {
	if !ValidType(promptType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPromptType, promptType)
	}

	if e.dir != "" {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(e.dir, promptType+ext)
			tpl, err := LoadFile(path)
			if err == nil {
				if tpl.Name == "" {
					tpl.Name = promptType
				}
				return tpl, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	return &Template{
		Name:        promptType,
		Description: "Built-in structured extraction prompt",
		Prompt:      defaultPrompt,
	}, nil
}

// LoadFile parses a single YAML template file
func LoadFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	if strings.TrimSpace(tpl.Prompt) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTemplate, path)
	}
	return &tpl, nil
}

// Variables returns the sorted, unique placeholder names used by tpl
func Variables(tpl *Template) []string {
	seen := make(map[string]struct{})
	for _, text := range []string{tpl.System, tpl.Prompt} {
		for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
			seen[match[1]] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render substitutes vars into text. Unknown placeholders are left as is.
func Render(text string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[2 : len(match)-2]
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

// Rendered is a template with its variables substituted
type Rendered struct {
	System string
	Prompt string
}

// Build loads promptType and renders it. userVars override systemVars.
func (e *Engine) Build(promptType string, userVars, systemVars map[string]string) (*Rendered, error) {
	tpl, err := e.Load(promptType)
	if err != nil {
		return nil, err
	}

	vars := make(map[string]string, len(userVars)+len(systemVars))
	for k, v := range systemVars {
		vars[k] = v
	}
	for k, v := range userVars {
		vars[k] = v
	}

	return &Rendered{
		System: Render(tpl.System, vars),
		Prompt: Render(tpl.Prompt, vars),
	}, nil
}

// List returns the prompt types with a template file, plus the default
func (e *Engine) List() ([]string, error) {
	types := map[string]struct{}{DefaultType: {}}

	if e.dir != "" {
		entries, err := os.ReadDir(e.dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to list templates in %s: %w", e.dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			ext := filepath.Ext(name)
			if ext != ".yaml" && ext != ".yml" {
				continue
			}
			if stem := strings.TrimSuffix(name, ext); ValidType(stem) {
				types[stem] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
