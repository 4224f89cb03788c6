// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"

	"github.com/tomtom215/genrematch/internal/catalog"
	"github.com/tomtom215/genrematch/internal/logging"
	"github.com/tomtom215/genrematch/internal/recommend"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// maxSuggestions bounds the "did you mean" list printed for unknown titles.
const maxSuggestions = 5

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "genrematch",
		Short: "Genre-based movie recommendations from a MovieLens catalog",
		Long: `genrematch recommends movies that share genres with a movie you name.

Each movie's genre string is turned into a TF-IDF vector and the catalog is
ranked by cosine similarity to the selected title.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			if _, err := logging.ParseLevel(level); err != nil {
				return err
			}
			logging.Init(logging.Config{
				Level:  level,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	rootCmd.PersistentFlags().String("catalog", "", "Path to movies.dat or movies.csv")
	rootCmd.PersistentFlags().String("format", string(catalog.FormatAuto), "Catalog format: auto, dat or csv")
	rootCmd.PersistentFlags().String("encoding", string(catalog.EncodingAuto), "Catalog encoding: auto, iso-8859-1, windows-1252 or utf-8")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newRecommendCmd(),
		newTitlesCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend TITLE",
		Short: "List the movies most similar in genre to TITLE",
		Long: `List the movies most similar in genre to TITLE.

TITLE must match a catalog title exactly, including the year, e.g.
"Toy Story (1995)". Words may be passed unquoted; they are joined with
single spaces.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _ := cmd.Flags().GetInt("k")
			showScores, _ := cmd.Flags().GetBool("scores")
			jsonOut, _ := cmd.Flags().GetBool("json")
			title := strings.Join(args, " ")

			cfg := recommend.DefaultConfig()
			if k > cfg.Limits.MaxK {
				return fmt.Errorf("-k must be at most %d", cfg.Limits.MaxK)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			engine, movies, err := loadEngine(ctx, cmd, cfg)
			if err != nil {
				return err
			}

			results, err := engine.RecommendScored(ctx, title, k)
			if err != nil {
				if errors.Is(err, recommend.ErrNotFound) {
					return notFound(title, movies)
				}
				return err
			}

			return printRecommendations(cmd.OutOrStdout(), results, showScores, jsonOut)
		},
	}

	cmd.Flags().IntP("k", "k", 0, "Number of recommendations (0 uses the default of 5)")
	cmd.Flags().Bool("scores", false, "Show rank and similarity score")

	return cmd
}

func newTitlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "titles",
		Short: "List catalog titles",
		Long:  `List catalog titles in catalog order, optionally filtered by a case-insensitive substring.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grep, _ := cmd.Flags().GetString("grep")
			jsonOut, _ := cmd.Flags().GetBool("json")

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			movies, err := loadCatalog(ctx, cmd)
			if err != nil {
				return err
			}

			matched := grepTitles(movies, grep)
			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, map[string]interface{}{
					"count":  len(matched),
					"movies": matched,
				})
			}
			for i := range matched {
				fmt.Fprintln(out, matched[i].Title)
			}
			return nil
		},
	}

	cmd.Flags().String("grep", "", "Only list titles containing this text (case-insensitive)")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "genrematch version %s\n", version)
			return nil
		},
	}
}

// loadCatalog reads the catalog named by the persistent flags.
func loadCatalog(ctx context.Context, cmd *cobra.Command) ([]recommend.Movie, error) {
	path, _ := cmd.Flags().GetString("catalog")
	formatName, _ := cmd.Flags().GetString("format")
	encodingName, _ := cmd.Flags().GetString("encoding")

	if path == "" {
		return nil, errors.New("--catalog is required")
	}

	format, err := catalog.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	encoding, err := catalog.ParseEncoding(encodingName)
	if err != nil {
		return nil, err
	}

	source, err := catalog.NewFileSource(path, format, encoding)
	if err != nil {
		return nil, err
	}

	movies, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("source", source.String()).
		Int("movies", len(movies)).
		Msg("catalog loaded")

	return movies, nil
}

// loadEngine reads the catalog and publishes it to a new engine. The index
// is built lazily by the first query.
func loadEngine(ctx context.Context, cmd *cobra.Command, cfg *recommend.Config) (*recommend.Engine, []recommend.Movie, error) {
	movies, err := loadCatalog(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}

	cfg.Build.EagerRebuild = false
	engine, err := recommend.NewEngine(cfg, logging.WithComponent("engine"))
	if err != nil {
		return nil, nil, err
	}
	if _, err := engine.SetCatalog(ctx, movies); err != nil {
		return nil, nil, err
	}
	return engine, movies, nil
}

func printRecommendations(w io.Writer, results []recommend.ScoredMovie, showScores, jsonOut bool) error {
	if jsonOut {
		if !showScores {
			titles := make([]string, len(results))
			for i := range results {
				titles[i] = results[i].Title
			}
			return writeJSON(w, titles)
		}
		return writeJSON(w, results)
	}

	for i := range results {
		if showScores {
			fmt.Fprintf(w, "%3d. %.4f  %s\n", results[i].Rank, results[i].Score, results[i].Title)
			continue
		}
		fmt.Fprintln(w, results[i].Title)
	}
	return nil
}

// notFound builds the error for an unknown title, listing catalog titles
// that contain it as a hint.
func notFound(title string, movies []recommend.Movie) error {
	suggestions := grepTitles(movies, title)
	if len(suggestions) == 0 {
		return &recommend.NotFoundError{Title: title}
	}

	names := make([]string, 0, maxSuggestions)
	for i := range suggestions {
		if i == maxSuggestions {
			break
		}
		names = append(names, suggestions[i].Title)
	}
	return fmt.Errorf("%w; did you mean: %s", &recommend.NotFoundError{Title: title}, strings.Join(names, ", "))
}

// grepTitles returns the movies whose title contains text, ignoring case.
func grepTitles(movies []recommend.Movie, text string) []recommend.Movie {
	text = strings.TrimSpace(text)
	if text == "" {
		return movies
	}

	folder := cases.Fold()
	needle := folder.String(text)

	var out []recommend.Movie
	for i := range movies {
		if strings.Contains(folder.String(movies[i].Title), needle) {
			out = append(out, movies[i])
		}
	}
	return out
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
