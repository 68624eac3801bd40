// Command validate-cli runs one email through the same ValidationService
// cmd/edge-validator serves over HTTP, for shell scripts and signup-flow
// batch jobs that would rather shell out than speak HTTP.
//
// Grounded on jhkimqd-chaos-utils/cmd/chaos-runner's single spf13/cobra
// root command with persistent flags; "construct adapters, wire into
// service, run" follows cmd/email-retrieval/main.go's shape, reused
// verbatim from cmd/edge-validator.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stoik/emailrisk/internal/adapters/kvredis"
	"github.com/stoik/emailrisk/internal/adapters/refreshsource"
	"github.com/stoik/emailrisk/internal/application"
	"github.com/stoik/emailrisk/internal/configstore"
	"github.com/stoik/emailrisk/internal/domain"
	"github.com/stoik/emailrisk/internal/ports"
	"github.com/stoik/emailrisk/internal/recorder"
	"github.com/stoik/emailrisk/internal/refdata"
	"github.com/stoik/emailrisk/internal/risk"
)

const (
	exitAllowOrWarn = 0
	exitBlock       = 1
	exitInvalid     = 2
	exitInternal    = 3
)

var (
	consumer   string
	flow       string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "validate-cli [email]",
	Short: "Validate one email address against the risk-scoring pipeline",
	Long: `validate-cli runs a single email address through the same validation
pipeline cmd/edge-validator serves over HTTP, printing the decision and
exiting 0 (allow/warn), 1 (block), 2 (invalid input), or 3 (internal error).`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.Flags().StringVar(&consumer, "consumer", "", "opaque consumer identifier, logging only")
	rootCmd.Flags().StringVar(&flow, "flow", "", "opaque flow identifier, logging only")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the full ValidationResult as JSON")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitInternal)
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "validate-cli").Logger()

	service, cleanup, err := buildService(logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "validate-cli: setup failed:", err)
		os.Exit(exitInternal)
	}
	defer cleanup()

	req := domain.ValidationRequest{Email: args[0], Consumer: consumer, Flow: flow}

	result, err := service.Validate(cmd.Context(), req)
	if err != nil {
		if domain.KindOf(err) == domain.ErrInvalidRequest {
			fmt.Fprintln(os.Stderr, "validate-cli:", err)
			os.Exit(exitInvalid)
		}
		fmt.Fprintln(os.Stderr, "validate-cli: internal error:", err)
		os.Exit(exitInternal)
	}

	printResult(result)

	if result.Decision == domain.DecisionBlock {
		os.Exit(exitBlock)
	}
	os.Exit(exitAllowOrWarn)
	return nil
}

func printResult(result domain.ValidationResult) {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
		return
	}
	fmt.Printf("decision=%s risk_score=%.4f reason=%s message=%q\n",
		result.Decision, result.RiskScore, result.Reason, result.Message)
}

// buildService wires the same adapters cmd/edge-validator constructs. The
// CLI has no listener of its own, so refdata.Store.Start runs a background
// refresh loop for the lifetime of this one-shot invocation and is torn
// down on cleanup.
func buildService(logger zerolog.Logger) (*application.ValidationService, func(), error) {
	redisClient := redis.NewClient(&redis.Options{Addr: getEnv("REDIS_ADDR", "localhost:6379")})
	kv := kvredis.New(redisClient)

	secrets := domain.Secrets{
		AdminAPIKey:        os.Getenv("ADMIN_API_KEY"),
		RefreshSourceToken: os.Getenv("REFRESH_SOURCE_TOKEN"),
	}

	configStore := configstore.NewStore(kv, secrets, logger)

	var source ports.RefreshSource = refreshsource.Disabled{}
	if url := os.Getenv("REFRESH_SOURCE_URL"); url != "" {
		source = refreshsource.New(url, logger)
	}
	refStore := refdata.NewStore(kv, source, logger)

	ctx, cancel := context.WithCancel(context.Background())
	refStore.Start(ctx)

	engine := risk.NewEngine()
	sink := recorder.NewSink(logger, nil, false)
	forwarder := recorder.NewOriginForwarder(os.Getenv("ORIGIN_URL"), logger)

	service := application.NewValidationService(configStore, refStore, engine, sink, forwarder, logger)

	cleanup := func() {
		cancel()
		kv.Close()
	}
	return service, cleanup, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
