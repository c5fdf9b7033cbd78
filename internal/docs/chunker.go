package docs

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"

	korrektly "github.com/korrektly/korrektly-go"
)

const (
	defaultWeight = 1.0
	// Level-1 headings carry a ranking boost unless the frontmatter sets an
	// explicit weight.
	topHeadingWeight = 1.2
	maxWeight        = 2.0
)

// componentTag detects embedded JSX-style component syntax. Files using
// components are not plain content and are skipped wholesale.
var componentTag = regexp.MustCompile(`<[A-Z][A-Za-z0-9]*[\s/>]`)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	trackingChars = regexp.MustCompile(`[^a-z0-9\-_/]`)
)

// Chunker converts one markdown/MDX file into upload-ready chunk records.
type Chunker struct {
	BaseDir string
	RootURL string
	Upsert  bool
	Logger  *slog.Logger

	md goldmark.Markdown
}

// NewChunker creates a chunker rooted at baseDir. rootURL, when non-empty,
// prefixes every generated source URL.
func NewChunker(baseDir, rootURL string, upsert bool, logger *slog.Logger) *Chunker {
	return &Chunker{
		BaseDir: baseDir,
		RootURL: strings.TrimSuffix(rootURL, "/"),
		Upsert:  upsert,
		Logger:  logger,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(htmlrenderer.WithUnsafe()),
		),
	}
}

// ChunkFile reads and converts one file, identified by its slash-separated
// path relative to BaseDir. Failures are local: the file contributes zero
// records and the error is logged, never returned.
func (c *Chunker) ChunkFile(rel string) []korrektly.ChunkData {
	source, err := os.ReadFile(filepath.Join(c.BaseDir, filepath.FromSlash(rel)))
	if err != nil {
		c.Logger.Warn("skipping unreadable file", "path", rel, "error", err)
		return nil
	}
	return c.Chunk(rel, source)
}

// Chunk converts raw document bytes into chunk records.
func (c *Chunker) Chunk(rel string, source []byte) []korrektly.ChunkData {
	fm, body := ParseFrontmatter(source)

	if componentTag.MatchString(body) {
		c.Logger.Info("skipping file with embedded components", "path", rel)
		return nil
	}

	var rendered bytes.Buffer
	if err := c.md.Convert([]byte(body), &rendered); err != nil {
		c.Logger.Warn("skipping file: markdown render failed", "path", rel, "error", err)
		return nil
	}

	// Title and subtitle are prepended as plain heading strings rather than
	// injected into the parsed tree; fragment parsers are unreliable targets
	// for DOM mutation.
	var fragments []string
	if fm.Title != "" {
		fragments = append(fragments, "<h1>"+htmlEscape(fm.Title)+"</h1>")
	}
	if fm.Subtitle != "" {
		fragments = append(fragments, "<h2>"+htmlEscape(fm.Subtitle)+"</h2>")
	}
	fragments = append(fragments, rendered.String())

	sections := SplitSections(strings.Join(fragments, "\n"))
	if len(sections) == 0 {
		return nil
	}

	slug := fm.Slug
	if slug == "" {
		slug = strings.Join(ExtractHierarchy(rel), "/")
	}
	slug = strings.TrimLeft(slug, "/")

	pageURL := slug
	if c.RootURL != "" {
		pageURL = c.RootURL + "/" + slug
	}
	if !validPageURL(pageURL, c.RootURL != "") {
		c.Logger.Warn("skipping file: generated URL is not well-formed", "path", rel, "url", pageURL)
		return nil
	}

	hierarchy := ExtractHierarchy(rel)

	records := make([]korrektly.ChunkData, 0, len(sections))
	for _, section := range sections {
		records = append(records, c.sectionRecord(rel, slug, pageURL, hierarchy, fm, section))
	}
	return records
}

func (c *Chunker) sectionRecord(rel, slug, pageURL string, hierarchy []string, fm Frontmatter, section Section) korrektly.ChunkData {
	weight := defaultWeight
	if fm.Weight != nil {
		weight = *fm.Weight
	} else if section.Level == 1 {
		weight = topHeadingWeight
	}
	weight = clampWeight(weight)

	metadata := map[string]any{
		"heading":   section.Heading,
		"url":       pageURL,
		"hierarchy": hierarchy,
	}
	if fm.Title != "" {
		metadata["title"] = fm.Title
	}
	if fm.Subtitle != "" {
		metadata["subtitle"] = fm.Subtitle
	}
	if fm.Description != "" {
		metadata["description"] = fm.Description
	}

	return korrektly.ChunkData{
		ChunkHTML:          sectionHTML(section),
		TrackingID:         GenerateTrackingID(slug, section.Heading),
		Link:               pageURL,
		TagSet:             hierarchy,
		Metadata:           metadata,
		SemanticContent:    joinNonEmpty("\n", fm.Subtitle, fm.Title, section.Heading, section.Body),
		FulltextContent:    joinNonEmpty("\n", section.Heading, section.Body),
		Weight:             weight,
		UpsertByTrackingID: c.Upsert,
		GroupTrackingIDs:   []string{rel},
	}
}

func sectionHTML(section Section) string {
	heading := fmt.Sprintf("<h%d>%s</h%d>", section.Level, htmlEscape(section.Heading), section.Level)
	if section.Body == "" {
		return heading
	}
	return heading + "\n<p>" + htmlEscape(section.Body) + "</p>"
}

// ExtractHierarchy derives the ordered path-segment tags of a file: relative
// path with any leading ./ and ../ removed, backslashes normalized, extension
// dropped, empty and "." segments filtered.
func ExtractHierarchy(rel string) []string {
	rel = strings.ReplaceAll(rel, "\\", "/")
	for {
		switch {
		case strings.HasPrefix(rel, "./"):
			rel = rel[2:]
		case strings.HasPrefix(rel, "../"):
			rel = rel[3:]
		default:
			rel = strings.TrimSuffix(rel, filepath.Ext(rel))
			var segments []string
			for _, segment := range strings.Split(rel, "/") {
				if segment == "" || segment == "." {
					continue
				}
				segments = append(segments, segment)
			}
			return segments
		}
	}
}

// GenerateTrackingID builds a deterministic identifier from its ordered
// parts: lowercased, whitespace runs become dashes, and every character
// outside [a-z0-9-_/] is stripped.
func GenerateTrackingID(parts ...string) string {
	combined := strings.ToLower(strings.Join(parts, "-"))
	combined = whitespaceRun.ReplaceAllString(combined, "-")
	return trackingChars.ReplaceAllString(combined, "")
}

// validPageURL accepts a well-formed URL; when a root URL was configured the
// result must be absolute.
func validPageURL(pageURL string, absolute bool) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	if absolute && (u.Scheme == "" || u.Host == "") {
		return false
	}
	return true
}

func clampWeight(w float64) float64 {
	if w < 0 {
		return 0
	}
	if w > maxWeight {
		return maxWeight
	}
	return w
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

func htmlEscape(s string) string {
	return html.EscapeString(s)
}
