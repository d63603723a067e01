// Package pipeline assembles a Document from a URL:
// fetch → parse → extract → normalize → insights.
//
// A Pipeline holds no per-request state, so one value can serve
// concurrent requests.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/docmind/core"
	"github.com/gaurav-prasanna/docmind/core/extract"
	"github.com/gaurav-prasanna/docmind/core/insight"
	"github.com/gaurav-prasanna/docmind/core/markup"
	"github.com/gaurav-prasanna/docmind/core/normalize"
	"github.com/rs/zerolog"
)

// Pipeline turns web pages into Documents.
type Pipeline struct {
	fetcher  core.Fetcher
	log      zerolog.Logger
	markdown bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithMarkdown also renders the content subtree as Markdown.
func WithMarkdown(enabled bool) Option {
	return func(p *Pipeline) { p.markdown = enabled }
}

// New creates a Pipeline. fetcher may be nil when only Build is used.
func New(fetcher core.Fetcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher: fetcher,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process fetches rawURL and builds its Document.
func (p *Pipeline) Process(ctx context.Context, rawURL string) (*core.Document, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("%w: url is required", core.ErrValidationFailure)
	}
	if p.fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher configured", core.ErrFetchFailure)
	}

	result, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	doc, err := p.Build(rawURL, result.HTML)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return doc, nil
}

// Build assembles a Document from markup without any I/O. Identical
// input always yields an identical Document.
func (p *Pipeline) Build(rawURL, html string) (doc *core.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Str("url", rawURL).Msg("extraction panicked")
			doc, err = nil, fmt.Errorf("%w: %v", core.ErrParseFailure, r)
		}
	}()

	tree, err := markup.Parse(html)
	if err != nil {
		return nil, err
	}

	title := tree.Title()
	if title == "" {
		title = core.UntitledDocument
	}

	res := extract.New(p.log).Extract(tree)

	content, truncated := normalize.Text(res.Content.Text())
	if truncated {
		p.log.Debug().Str("url", rawURL).Int("chars", len([]rune(content))).Msg("content truncated")
	}

	doc = &core.Document{
		Title:             core.Truncate(title, core.MaxTitleChars),
		Content:           content,
		StructuredContent: core.StructuredContent{Sections: res.Sections},
		CodeBlocks:        res.CodeBlocks,
		URL:               rawURL,
		Insights:          insight.Generate(content, title, res.CodeBlocks),
	}

	if p.markdown {
		fragment, err := markup.OuterHTML(res.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: serializing content: %w", core.ErrParseFailure, err)
		}
		md, err := normalize.NewMarkdown().Normalize(fragment)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrParseFailure, err)
		}
		doc.Markdown = md
	}

	return doc, nil
}

// Build assembles a Document with a default Pipeline.
func Build(rawURL, html string) (*core.Document, error) {
	return New(nil).Build(rawURL, html)
}
