package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/DG1001/code-to-music/internal/config"
	"github.com/DG1001/code-to-music/internal/github"
	"github.com/DG1001/code-to-music/internal/llm"
	"github.com/DG1001/code-to-music/internal/logger"
	"github.com/DG1001/code-to-music/internal/models"
	"github.com/DG1001/code-to-music/internal/music"
	"github.com/DG1001/code-to-music/internal/pipeline"
	"github.com/DG1001/code-to-music/internal/server"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "code-to-music",
		Short: "GitHub repo → AI music prompt and lyrics",
	}

	root.AddCommand(generateCmd(), stylesCmd(), serveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var style string
	var styles []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate [repo-url]",
		Short: "Turn a GitHub repository into a music prompt and lyrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := config.Load()
			logger.Setup(cfg.Debug)

			pipe, err := buildPipeline(ctx, cfg)
			if err != nil {
				return err
			}

			var result *models.Result
			if len(styles) > 0 {
				opts := pipeline.Options{Styles: make([]music.Style, len(styles))}
				for i, s := range styles {
					opts.Styles[i] = music.Style(strings.TrimSpace(s))
				}
				result, err = pipe.GenerateStyles(ctx, args[0], opts)
			} else {
				result, err = pipe.Generate(ctx, args[0], pipeline.Options{Style: music.Style(style)})
			}
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printResult(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", "auto", "Music style, or auto to let the model pick")
	cmd.Flags().StringSliceVar(&styles, "styles", nil, "Generate lyrics for several styles at once")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

func stylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the supported music styles",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range music.Styles() {
				if s == music.DefaultStyle {
					fmt.Printf("%s (default)\n", s)
				} else {
					fmt.Println(s)
				}
			}
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg := config.Load()
			logger.Setup(cfg.Debug)

			if addr != "" {
				cfg.Addr = addr
			}

			pipe, err := buildPipeline(ctx, cfg)
			if err != nil {
				return err
			}

			slog.Info("http server listening", "addr", cfg.Addr)
			return http.ListenAndServe(cfg.Addr, server.New(pipe).Handler())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides ADDR)")
	return cmd
}

func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, error) {
	gen, err := llm.New(ctx, llm.Options{
		Provider: cfg.LLMProvider,
		BaseURL:  cfg.LLMBaseURL,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
	})
	if err != nil {
		return nil, err
	}

	gh := github.NewClient(cfg.GitHubBaseURL, cfg.GitHubToken)
	return pipeline.New(gh, gen), nil
}

func printResult(r *models.Result) {
	fmt.Printf("%s  ★ %d\n", r.Repository.FullName, r.Repository.Stars)
	if r.Repository.Description != nil {
		fmt.Printf("%s\n", *r.Repository.Description)
	}
	fmt.Printf("Files: %d listed, %d selected, %d analyzed\n", r.Files.Total, r.Files.Selected, r.Files.Analyzed)

	if r.Style != "" {
		fmt.Printf("Style: %s\n", r.Style)
	}
	if r.ResolvedStyle != "" {
		fmt.Printf("Resolved style: %s\n", r.ResolvedStyle)
	}

	fmt.Printf("\n--- Prompt (%d chars) ---\n%s\n", len(r.Prompt), r.Prompt)

	if r.Lyrics != "" {
		fmt.Printf("\n--- Lyrics (%d chars) ---\n%s\n", len(r.Lyrics), r.Lyrics)
	}
	for _, ls := range r.LyricsByStyle {
		fmt.Printf("\n--- Lyrics: %s (%d chars) ---\n%s\n", ls.Style, len(ls.Lyrics), ls.Lyrics)
	}
	for _, f := range r.Failures {
		fmt.Printf("\n%s failed: %s\n", f.Style, f.Error)
	}
}
