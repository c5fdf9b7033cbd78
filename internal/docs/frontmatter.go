package docs

import (
	"bytes"

	"github.com/adrg/frontmatter"
)

// frontmatterEnvelope maps the recognized keys; everything else lands in the
// inline map.
type frontmatterEnvelope struct {
	Title       string         `yaml:"title"`
	Subtitle    string         `yaml:"subtitle"`
	Description string         `yaml:"description"`
	Slug        string         `yaml:"slug"`
	Weight      *float64       `yaml:"weight"`
	Extra       map[string]any `yaml:",inline"`
}

// ParseFrontmatter splits source into its YAML metadata header and markdown
// body. A malformed header is fail-soft: the whole source becomes the body
// and the metadata comes back empty.
func ParseFrontmatter(source []byte) (Frontmatter, string) {
	var env frontmatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &env)
	if err != nil {
		return Frontmatter{Extra: map[string]any{}}, string(source)
	}

	extra := env.Extra
	if extra == nil {
		extra = map[string]any{}
	}

	return Frontmatter{
		Title:       env.Title,
		Subtitle:    env.Subtitle,
		Description: env.Description,
		Slug:        env.Slug,
		Weight:      env.Weight,
		Extra:       extra,
	}, string(body)
}
