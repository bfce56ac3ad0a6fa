package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tendant/simple-dublincore/pkg/dublincore"
	"github.com/tendant/simple-dublincore/pkg/dublincore/embed"
)

// NewRenderCommand creates the render command
func NewRenderCommand() *cobra.Command {
	var (
		file      string
		frontPage bool
		page      int
		license   string
		ccLicense string
		asJSON    bool
		noEmbeds  bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render Dublin Core meta tags for an item file",
		Long: `Render the Dublin Core <meta> tags of the item described in a YAML file.

Nothing is printed when the view is not a single item, when it is the front
page, or when the document disables automatic Dublin Core generation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			doc, err := LoadDocument(file)
			if err != nil {
				return err
			}

			var opts []dublincore.BuilderOption
			switch {
			case license != "":
				opts = append(opts, dublincore.WithLicenseProvider(dublincore.StaticLicense(license)))
			case ccLicense != "":
				cc, err := dublincore.NewCreativeCommons(ccLicense, "")
				if err != nil {
					return err
				}
				opts = append(opts, dublincore.WithLicenseProvider(cc))
			}
			if verbose {
				opts = append(opts, dublincore.WithTagFilter(dublincore.LoggingHook(logger)))
			}

			var media dublincore.MediaExtractor
			if !noEmbeds {
				media = embed.New()
			}

			view := dublincore.View{Singular: true, FrontPage: frontPage, Page: page}
			tags := dublincore.NewBuilder(opts...).Build(cmd.Context(), doc.Input(view, media))

			if verbose {
				logger.Info("rendered item", "file", file, "kind", doc.Item.Kind, "tags", len(tags))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if tags == nil {
					tags = []dublincore.Tag{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(tags)
			}
			if head := dublincore.RenderHead(tags); head != "" {
				fmt.Fprintln(out, head)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML item file (required)")
	cmd.Flags().BoolVar(&frontPage, "front-page", false, "render as the site front page")
	cmd.Flags().IntVar(&page, "page", 0, "page number of paginated content")
	cmd.Flags().StringVar(&license, "license", "", "license URL for dcterms.license")
	cmd.Flags().StringVar(&ccLicense, "cc-license", "", "Creative Commons license code (by, by-sa, ...)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print tags as JSON")
	cmd.Flags().BoolVar(&noEmbeds, "no-embeds", false, "skip embedded media discovery")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dcmeta %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
