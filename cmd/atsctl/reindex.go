package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/talent-ats/internal/services"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Re-embed every resume of a company into the vector index",
	RunE:  runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	companyID, err := companyID()
	if err != nil {
		return err
	}

	d, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer func() { _ = d.log.Sync() }()

	candidates, err := d.candidates.ListByCompany(ctx, companyID)
	if err != nil {
		return err
	}

	parser := services.NewPDFParserService()
	indexer := services.NewResumeIndexer(d.gemini, d.qdrant, services.NewTextChunker(resumeChunkSize, resumeChunkOverlap), d.log)

	var indexed, skipped, failed int
	for _, candidate := range candidates {
		log := d.log.With(zap.Uint("candidate_id", candidate.ID))

		text := candidate.ResumeText
		if text == "" && candidate.ResumeDocumentID != nil {
			doc, err := d.documents.FindByID(ctx, companyID, *candidate.ResumeDocumentID)
			if err != nil {
				log.Warn("resume document missing", zap.Error(err))
				failed++
				continue
			}
			content, err := parser.ExtractText(doc.FilePath)
			if err != nil {
				log.Warn("resume text extraction failed", zap.Error(err))
				failed++
				continue
			}
			text = content.Text
			if err := d.candidates.UpdateResumeText(ctx, companyID, candidate.ID, text); err != nil {
				log.Warn("failed to store resume text", zap.Error(err))
			}
		}
		if text == "" {
			skipped++
			continue
		}

		chunks, err := indexer.IndexResume(ctx, companyID, candidate.ID, text)
		if err != nil {
			log.Error("❌ indexing failed", zap.Error(err))
			failed++
			continue
		}
		log.Debug("resume indexed", zap.Int("chunks", chunks))
		indexed++
	}

	d.log.Info("✅ reindex finished",
		zap.Uint("company_id", companyID),
		zap.Int("indexed", indexed),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "indexed=%d skipped=%d failed=%d\n", indexed, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d resumes could not be indexed", failed)
	}
	return nil
}
