package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/domain/progress"
	domain "excel-analytics-api/internal/domain/user_file"
)

// MaxPromptContent caps the file content sent to the summarizer, in
// characters.
const MaxPromptContent = 5000

const promptTemplate = `Analyze the following data from an Excel/CSV file. Provide a concise summary of key insights, trends, and any notable observations. If it's a medicine booklet, highlight expiry dates, quantities, and suggest any immediate actions.

File Name: %s
File Content:
%s... (truncated for brevity if very large)`

type AnalysisService struct {
	logger             *zap.Logger
	userFileRepository domain.Repository
	storage            ports.BlobStorage
	codec              ports.SpreadsheetCodec
	summarizer         ports.Summarizer
	notifier           ports.Notifier
	mCounter           *prometheus.CounterVec
}

func NewAnalysisService(
	logger *zap.Logger,
	userFileRepository domain.Repository,
	storage ports.BlobStorage,
	codec ports.SpreadsheetCodec,
	summarizer ports.Summarizer,
	notifier ports.Notifier,
	mCounter *prometheus.CounterVec,
) ports.AnalysisService {
	return &AnalysisService{
		logger:             logger,
		userFileRepository: userFileRepository,
		storage:            storage,
		codec:              codec,
		summarizer:         summarizer,
		notifier:           notifier,
		mCounter:           mCounter,
	}
}

// Analyze summarises the caller's most recent upload. Nothing is persisted.
func (as *AnalysisService) Analyze(ctx context.Context, userID uuid.UUID) (string, error) {
	if as.notifier == nil {
		return "", ErrServiceUnavailable
	}

	room := userID.String()
	emit := func(p int, msg string, result any) {
		as.notifier.Emit(room, progress.AIAnalysis, progress.Event{Progress: p, Message: msg, Result: result})
	}
	fail := func(err error) (string, error) {
		as.logger.Error("ai analysis failed", zap.String("user_id", room), zap.Error(err))
		emit(0, "Error during AI analysis: "+err.Error(), "Failed to get insights: "+err.Error())
		as.mCounter.WithLabelValues("ai_analysis_failed_total").Inc()

		return "", fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	emit(10, "Fetching most recent file.", nil)

	uf, err := as.userFileRepository.FetchLatestUserFile(ctx, userID)
	if err != nil {
		return fail(err)
	}
	if uf == nil {
		emit(0, "No file found for analysis.", "No file found for AI analysis. Please upload a file first.")
		return "", fmt.Errorf("no file for analysis: %w", ErrNotFound)
	}

	var content string
	switch {
	case domain.IsCSV(uf.MimeType, uf.FileName):
		b, err := as.storage.Get(ctx, uf.StoragePath)
		if err != nil {
			return fail(err)
		}
		content = strings.ToValidUTF8(string(b), "�")

	case domain.IsExcel(uf.MimeType):
		b, err := as.storage.Get(ctx, uf.StoragePath)
		if err != nil {
			return fail(err)
		}
		emit(20, "Parsing Excel file for AI analysis...", nil)
		if content, err = as.codec.ToCSV(b); err != nil {
			return fail(err)
		}

	default:
		emit(0, "Unsupported file type for AI analysis.",
			fmt.Sprintf("Unsupported file type: %s. Please upload a CSV or Excel file.", uf.MimeType))
		return "", fmt.Errorf("%s: %w", uf.MimeType, ErrUnsupportedMediaType)
	}

	emit(30, fmt.Sprintf("Preparing data from %q for AI.", uf.FileName), nil)
	prompt := BuildPrompt(uf.FileName, content)

	emit(60, "Sending data to AI.", nil)
	summary, err := as.summarizer.Summarize(ctx, prompt)
	if err != nil {
		return fail(err)
	}

	emit(100, "AI analysis complete.", summary)
	as.mCounter.WithLabelValues("ai_analysis_total").Inc()

	return summary, nil
}

func BuildPrompt(fileName, content string) string {
	return fmt.Sprintf(promptTemplate, fileName, truncateRunes(content, MaxPromptContent))
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
