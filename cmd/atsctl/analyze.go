package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/models"
	"alfredoptarigan/talent-ats/internal/services"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute (or read from cache) the fit analysis of one candidate for one job",
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Uint("candidate", 0, "candidate application id")
	analyzeCmd.Flags().Uint("job", 0, "job id")
	analyzeCmd.Flags().Bool("refresh", false, "ignore a cached analysis and recompute it")
	_ = analyzeCmd.MarkFlagRequired("candidate")
	_ = analyzeCmd.MarkFlagRequired("job")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	companyID, err := companyID()
	if err != nil {
		return err
	}
	candidateID, _ := cmd.Flags().GetUint("candidate")
	jobID, _ := cmd.Flags().GetUint("job")
	refresh, _ := cmd.Flags().GetBool("refresh")

	d, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer func() { _ = d.log.Sync() }()

	company, err := d.companies.FindByID(ctx, companyID)
	if err != nil {
		return err
	}
	job, err := d.jobs.FindByID(ctx, companyID, jobID)
	if err != nil {
		return err
	}
	candidate, err := d.candidates.FindByID(ctx, companyID, candidateID)
	if err != nil {
		return err
	}

	cache := services.NewAnalysisCache(d.fits, d.cfg.Scoring.CacheTTL, d.log)
	analyzer := services.NewFitAnalyzer(d.gemini, cache, d.cfg.Gemini, d.cfg.Scoring, d.log)

	analysis, cached, err := analyzer.Resolve(ctx, candidate, job, company, refresh)
	if err != nil {
		d.log.Warn("analysis could not be cached", zap.Error(err))
	}

	out, err := json.MarshalIndent(models.FitAnalysisResponse{
		Analysis: analysis,
		Cached:   cached,
		Degraded: analysis.Degraded(),
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
