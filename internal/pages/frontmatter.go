package pages

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Frontmatter represents the YAML metadata block at the top of a page.
type Frontmatter struct {
	// Title overrides the title derived from the file name. May contain ${NAME} placeholders.
	Title string `yaml:"title"`

	// Subtitle is an optional secondary title. May contain ${NAME} placeholders.
	Subtitle string `yaml:"subtitle"`

	// Order is the page's declared position among its siblings.
	Order *float64 `yaml:"order"`

	// Hidden removes the page and its subtree from the output.
	Hidden Hidden `yaml:"hidden"`

	// Author credits the writer of the page.
	Author *Author `yaml:"author"`
}

// Hidden is the value of the "hidden" frontmatter key: either an unconditional boolean or
// the name of a variable that hides the page when it is set.
type Hidden struct {
	Always   bool
	Variable string
}

// UnmarshalYAML accepts a boolean or a variable name.
func (h *Hidden) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: hidden must be a boolean or a variable name", value.Line)
	}

	switch value.Tag {
	case "!!null":
		*h = Hidden{}
	case "!!bool":
		var always bool
		if err := value.Decode(&always); err != nil {
			return err
		}
		*h = Hidden{Always: always}
	default:
		*h = Hidden{Variable: strings.TrimSpace(value.Value)}
	}

	return nil
}

// yamlFormat recognises "---" delimited YAML blocks and decodes them with yaml.v3.
//
//nolint:gochecknoglobals // Immutable format definition shared by all parses.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// SplitFrontmatter separates the metadata block of a page from its body.
// Content without a metadata block yields an empty Frontmatter and the whole content as body.
func SplitFrontmatter(content []byte) (*Frontmatter, []byte, error) {
	var fm Frontmatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &fm, yamlFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse frontmatter YAML: %w", err)
	}

	return &fm, body, nil
}

// ReadPage reads a page file and splits it into frontmatter and body.
func ReadPage(fsys afero.Fs, path string) (*Frontmatter, []byte, error) {
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read page: %w", err)
	}

	fm, body, err := SplitFrontmatter(content)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return fm, body, nil
}
