// Package pipeline chains the fetch, selection, analysis and artifact
// steps for one request. Nothing survives a request; every call starts
// from the repository URL.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DG1001/code-to-music/internal/analysis"
	"github.com/DG1001/code-to-music/internal/github"
	"github.com/DG1001/code-to-music/internal/llm"
	"github.com/DG1001/code-to-music/internal/models"
	"github.com/DG1001/code-to-music/internal/music"
	"github.com/DG1001/code-to-music/internal/selection"
)

// ContentSource is the repository backend the pipeline reads from.
// *github.Client satisfies it.
type ContentSource interface {
	GetRepo(ctx context.Context, owner, repo string) (*models.RepoMetadata, error)
	ListFiles(ctx context.Context, owner, repo string) ([]models.FileEntry, error)
	GetFileContent(ctx context.Context, url string) (string, error)
}

// Options carries the style choice for one request.
type Options struct {
	// Style applies to Generate; StyleAuto lets the pipeline pick.
	Style music.Style
	// Styles applies to GenerateStyles.
	Styles []music.Style
}

type Pipeline struct {
	source   ContentSource
	selector *selection.Selector
	analyzer *analysis.Analyzer
	composer *music.Composer
}

func New(source ContentSource, gen llm.Generator) *Pipeline {
	return &Pipeline{
		source:   source,
		selector: selection.New(gen),
		analyzer: analysis.New(source, gen),
		composer: music.NewComposer(gen),
	}
}

// Generate runs the whole chain for a single style and returns the
// prompt and lyrics artifacts. Only the repository fetches and the
// final artifact calls can fail; everything in between degrades to
// deterministic fallbacks.
func (p *Pipeline) Generate(ctx context.Context, repoURL string, opts Options) (*models.Result, error) {
	front, err := p.prepare(ctx, repoURL)
	if err != nil {
		return nil, err
	}
	result := front.result

	style := opts.Style
	if style == "" {
		style = music.StyleAuto
	}
	result.Style = string(style)
	if style == music.StyleAuto {
		style = p.composer.ResolveStyle(ctx, front.meta, front.analysis)
		result.ResolvedStyle = string(style)
	}

	prompt, err := p.composer.ComposePrompt(ctx, front.meta, front.analysis, style)
	if err != nil {
		return nil, err
	}
	lyrics, err := p.composer.ComposeLyrics(ctx, front.meta, front.analysis, style)
	if err != nil {
		return nil, err
	}

	result.Prompt = prompt
	result.Lyrics = lyrics
	result.GeneratedAt = time.Now().UTC()
	return result, nil
}

// GenerateStyles runs the chain once and fans lyric generation out over
// the requested styles. A failing style lands in Failures instead of
// failing the batch. The prompt artifact is composed for the first
// requested style.
func (p *Pipeline) GenerateStyles(ctx context.Context, repoURL string, opts Options) (*models.Result, error) {
	if len(opts.Styles) == 0 {
		return nil, errors.New("no styles requested")
	}

	front, err := p.prepare(ctx, repoURL)
	if err != nil {
		return nil, err
	}
	result := front.result

	// Resolve auto once; every auto entry in the batch shares the pick.
	styles := make([]music.Style, len(opts.Styles))
	copy(styles, opts.Styles)
	for i, s := range styles {
		if s != music.StyleAuto {
			continue
		}
		resolved := p.composer.ResolveStyle(ctx, front.meta, front.analysis)
		result.ResolvedStyle = string(resolved)
		for j := i; j < len(styles); j++ {
			if styles[j] == music.StyleAuto {
				styles[j] = resolved
			}
		}
		break
	}

	prompt, err := p.composer.ComposePrompt(ctx, front.meta, front.analysis, styles[0])
	if err != nil {
		return nil, err
	}
	result.Prompt = prompt

	lyrics := make([]string, len(styles))
	failures := make([]error, len(styles))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, style := range styles {
		i, style := i, style
		g.Go(func() error {
			out, err := p.composer.ComposeLyrics(gCtx, front.meta, front.analysis, style)
			if err != nil {
				failures[i] = err
				return nil // other styles continue
			}
			lyrics[i] = out
			return nil
		})
	}
	_ = g.Wait()

	for i, style := range styles {
		if failures[i] != nil {
			result.Failures = append(result.Failures, models.StyleFailure{
				Style: string(style),
				Error: failures[i].Error(),
			})
			continue
		}
		result.LyricsByStyle = append(result.LyricsByStyle, models.StyleLyrics{
			Style:  string(style),
			Lyrics: lyrics[i],
		})
	}
	result.GeneratedAt = time.Now().UTC()
	return result, nil
}

// prepared is the style-independent front half of a request.
type prepared struct {
	meta     *models.RepoMetadata
	analysis models.Analysis
	result   *models.Result
}

func (p *Pipeline) prepare(ctx context.Context, repoURL string) (*prepared, error) {
	owner, repo, err := github.ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	meta, err := p.source.GetRepo(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("fetching repository: %w", err)
	}
	files, err := p.source.ListFiles(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}

	selected := p.selector.Select(ctx, meta, files)
	contents := p.analyzer.FetchContents(ctx, selected)
	a := p.analyzer.Analyze(ctx, meta, contents)

	refs := make([]models.FileRef, len(selected))
	for i, f := range selected {
		refs[i] = models.FileRef{Name: f.Name, Path: f.Path, Category: f.Category}
	}

	return &prepared{
		meta:     meta,
		analysis: a,
		result: &models.Result{
			Repository: *meta,
			Files: models.FileStats{
				Total:    len(files),
				Selected: len(selected),
				Analyzed: len(contents),
			},
			Analysis:      a,
			SelectedFiles: refs,
		},
	}, nil
}
