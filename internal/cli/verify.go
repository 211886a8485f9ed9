package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/provenly/vouch/internal/logger"
	"github.com/provenly/vouch/internal/model"
	"github.com/provenly/vouch/internal/pipeline"
)

var (
	outJSON     string
	outMD       string
	emailDir    string
	timeout     time.Duration
	noCache     bool
	noFooter    bool
	maxResults  int
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <person.yaml>",
	Short: "Verify one person's stated history against open-web evidence",
	Long: `Verify reads a YAML person description and, for every claim in it:
- Issues the category's query templates through the provider chain
- Scores and filters returned hits for relevance to the claim
- Deduplicates surviving evidence and derives a category confidence
- Folds categories into one weighted overall confidence with provenance

Example:
  vouch verify person.yaml
  vouch verify person.yaml --json report.json --md report.md
  vouch verify person.yaml --emails ./drafts --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	verifyCmd.Flags().StringVar(&emailDir, "emails", "", "directory for employment verification email drafts (optional)")
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall verification timeout (sequential pacing adds up)")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search result cache")
	verifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	verifyCmd.Flags().IntVar(&maxResults, "max-results", 8, "hits requested per query")

	verifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	verifyCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	log := logger.New(logLevel())

	person, err := model.LoadPersonFile(args[0])
	if err != nil {
		return fmt.Errorf("load person: %w", err)
	}

	verifier, err := pipeline.NewVerifier(cfg, log)
	if err != nil {
		return fmt.Errorf("build verifier: %w", err)
	}

	result, err := verifier.VerifyPerson(ctx, person)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(result, outMD); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}
	if emailDir != "" {
		written, err := renderer.RenderEmails(result, emailDir)
		if err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote %d email draft(s)\n", len(written))
		}
	}

	renderer.RenderSummary(result)
	return nil
}

// buildConfig assembles the runtime configuration: defaults, then the
// config file / VOUCH_* environment via viper, then CLI flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Output.IncludeFooter = !noFooter
	cfg.Output.Verbose = verbose
	if maxResults > 0 {
		cfg.Output.MaxResults = maxResults
	}

	// Google Programmable Search credentials come from the environment
	// (VOUCH_GOOGLE_API_KEY / VOUCH_GOOGLE_ENGINE_ID) unless the config
	// file sets them.
	for i := range cfg.Providers {
		if cfg.Providers[i].Name != "google" {
			continue
		}
		if key := viper.GetString("google_api_key"); key != "" {
			cfg.Providers[i].APIKey = key
		}
		if id := viper.GetString("google_engine_id"); id != "" {
			cfg.Providers[i].EngineID = id
		}
		if cfg.Providers[i].APIKey != "" && cfg.Providers[i].EngineID != "" {
			cfg.Providers[i].Enabled = true
		}
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.StrictEvidence = true
		if cfg.LLM.Provider == "openai" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func logLevel() string {
	if verbose {
		return "debug"
	}
	return "info"
}
