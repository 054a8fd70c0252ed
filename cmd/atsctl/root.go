package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/config"
	"alfredoptarigan/talent-ats/internal/logger"
	"alfredoptarigan/talent-ats/internal/repositories"
	"alfredoptarigan/talent-ats/internal/services"
)

const (
	app       = "atsctl"
	envPrefix = "ATS"

	resumeChunkSize    = 1000
	resumeChunkOverlap = 150
)

var rootCmd = &cobra.Command{
	Use:           app,
	Short:         "atsctl runs fit analyses and resume indexing outside the API",
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().Uint("company", 0, "company id every command is scoped to (env ATS_COMPANY)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("company", rootCmd.PersistentFlags().Lookup("company"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// deps is the subset of the API wiring the commands share.
type deps struct {
	cfg    *config.Config
	log    *zap.Logger
	gemini services.GeminiService
	qdrant services.QdrantService

	companies  repositories.CompanyRepository
	jobs       repositories.JobRepository
	candidates repositories.CandidateRepository
	documents  repositories.DocumentRepository
	fits       repositories.FitAnalysisRepository
}

func companyID() (uint, error) {
	id := viper.GetUint("company")
	if id == 0 {
		return 0, fmt.Errorf("--company (or %s_COMPANY) is required", envPrefix)
	}
	return id, nil
}

// setup connects to every backend a command needs. withIndex controls
// whether Qdrant is dialed.
func setup(ctx context.Context, withIndex bool) (*deps, error) {
	cfg := config.Load()
	cfg.Log.JSON = viper.GetBool("json")
	cfg.Log.Debug = cfg.Log.Debug || viper.GetBool("debug")

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	gemini, err := services.NewGeminiService(ctx, cfg.Gemini, log)
	if err != nil {
		return nil, fmt.Errorf("initializing gemini: %w", err)
	}

	d := &deps{
		cfg:        cfg,
		log:        log,
		gemini:     gemini,
		companies:  repositories.NewCompanyRepository(db),
		jobs:       repositories.NewJobRepository(db),
		candidates: repositories.NewCandidateRepository(db),
		documents:  repositories.NewDocumentRepository(db),
		fits:       repositories.NewFitAnalysisRepository(db),
	}

	if withIndex {
		d.qdrant, err = services.NewQdrantService(cfg.Qdrant, log)
		if err != nil {
			return nil, fmt.Errorf("initializing qdrant: %w", err)
		}
		if err := d.qdrant.InitCollection(ctx); err != nil {
			return nil, fmt.Errorf("initializing qdrant collection: %w", err)
		}
	}
	return d, nil
}
