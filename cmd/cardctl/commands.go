package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/unclebandit/campaign-studio-backend/internal/config"
	"github.com/unclebandit/campaign-studio-backend/internal/generator"
	"github.com/unclebandit/campaign-studio-backend/internal/logger"
	"github.com/unclebandit/campaign-studio-backend/internal/model"
	"github.com/unclebandit/campaign-studio-backend/internal/service"
)

// generateFile mirrors the HTTP generate request body.
type generateFile struct {
	Product        model.Product          `json:"product"`
	Strategy       model.CampaignStrategy `json:"strategy"`
	WeeklySchedule []model.ScheduleSlot   `json:"weeklySchedule"`
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cardctl",
		Short:         "Generate and inspect scheduled campaign cards",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newGenerateCmd(), newBrandCmd(), newDateCmd(), newStatusCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var file, output string
	var offline bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate campaign cards from a JSON or YAML request file (- for stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("unknown output format %q", output)
			}

			req, err := readGenerateFile(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			svc, cleanup, err := buildService(cmd.Context(), offline)
			if err != nil {
				return err
			}
			defer cleanup()

			result := svc.Generate(cmd.Context(), req.Product, req.Strategy, req.WeeklySchedule)

			return writeCards(cmd.OutOrStdout(), output, result.Cards)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "request file with product, strategy and weeklySchedule")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&offline, "offline", false, "skip the external generator and use templates only")
	return cmd
}

func newBrandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brand PRODUCT_NAME...",
		Short: "Resolve the brand label for product names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), service.ResolveBrand(args))
			return err
		},
	}
}

func newDateCmd() *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "date DAY_LABEL",
		Short: "Resolve a day label (weekday, today, early_month, mid_month, late_month) to a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := &service.CardService{}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), svc.DateForLabel(args[0], index))
			return err
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "slot position within the batch")
	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status YYYY-MM-DD",
		Short: "Classify a scheduled date as draft, scheduled or active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := &service.CardService{}
			status, err := svc.StatusForDate(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), status)
			return err
		},
	}
}

// readGenerateFile accepts JSON or YAML. YAML keys use the same camelCase names as the HTTP body.
func readGenerateFile(path string, stdin io.Reader) (*generateFile, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open request file: %w", err)
		}
		defer f.Close()
		r = f
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read request file: %w", err)
	}

	// JSON is valid YAML, so both formats go through the YAML decoder and
	// are re-encoded as JSON to reuse the model's json tags.
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode request file: %w", err)
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("decode request file: %w", err)
	}

	var req generateFile
	if err := json.Unmarshal(asJSON, &req); err != nil {
		return nil, fmt.Errorf("decode request file: %w", err)
	}
	if strings.TrimSpace(req.Product.Name) == "" {
		return nil, fmt.Errorf("product.name is required")
	}
	return &req, nil
}

func writeCards(w io.Writer, format string, cards []model.CampaignCard) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	}

	asJSON, err := json.Marshal(cards)
	if err != nil {
		return err
	}
	var doc any
	if err := yaml.Unmarshal(asJSON, &doc); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func buildService(ctx context.Context, offline bool) (*service.CardService, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	// Development config writes to stderr, keeping stdout valid JSON.
	lg, err := logger.New(cfg.Log.Level, false)
	if err != nil {
		return nil, nil, err
	}

	var gen generator.Generator = generator.Disabled{}
	if !offline {
		gen, err = generator.New(ctx, generator.Config{
			Provider: cfg.Generator.Provider,
			APIKey:   cfg.Generator.APIKey,
			BaseURL:  cfg.Generator.BaseURL,
			Model:    cfg.Generator.Model,
			Timeout:  cfg.Generator.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
	}

	svc := &service.CardService{
		Generator: gen,
		Templates: service.NewTemplateEngine(),
		Logger:    lg,
		Options: service.GenerationOptions{
			Temperature: cfg.Generator.Temperature,
			MaxTokens:   cfg.Generator.MaxTokens,
		},
	}
	return svc, func() { _ = lg.Sync() }, nil
}
