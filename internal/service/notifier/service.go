package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/m04kA/SMC-SpotWatcher/pkg/metrics"
)

// Статусы прогона для метрик
const (
	runStatusSuccess = "success"
	runStatusError   = "error"
)

// Service связывает пайплайн сбора, форматирование и доставку уведомления
// в один прогон
type Service struct {
	collector       SpotCollector
	formatter       SummaryFormatter
	sender          MessageSender
	metrics         *metrics.Metrics
	summaryFilePath string
	stdout          io.Writer
	logger          Logger
}

// NewService создает новый экземпляр сервиса уведомлений.
// summaryFilePath — опциональный side-channel файл (например, GITHUB_STEP_SUMMARY),
// куда дописывается отчёт прогона; пустой путь отключает запись.
// metricsCollector может быть nil, когда метрики выключены.
func NewService(
	collector SpotCollector,
	formatter SummaryFormatter,
	sender MessageSender,
	metricsCollector *metrics.Metrics,
	summaryFilePath string,
	logger Logger,
) *Service {
	return &Service{
		collector:       collector,
		formatter:       formatter,
		sender:          sender,
		metrics:         metricsCollector,
		summaryFilePath: summaryFilePath,
		stdout:          os.Stdout,
		logger:          logger,
	}
}

// Run выполняет один прогон: сбор → сводка → side-channel → печать или отправка.
// При dryRun (а также при пустом результате) сводка только печатается.
// Ошибка любого шага пайплайна или доставки возвращается вызывающему без
// повторов и подавления.
func (s *Service) Run(ctx context.Context, dryRun bool) error {
	result, err := s.collector.Execute(ctx)
	if err != nil {
		s.metrics.ObserveRun(runStatusError, 0)
		return err
	}

	formatted := s.formatter.Format(result.Spots)

	report := fmt.Sprintf("Tempo total da automação: %.2f segundos (início: %s | fim: %s).",
		result.Elapsed.Seconds(),
		result.StartedAt.Format(time.RFC3339),
		result.FinishedAt.Format(time.RFC3339))

	// Side-channel лог — best effort, прогон из-за него не падает
	if err := s.appendRunSummary(report, formatted.PlainText); err != nil {
		s.logger.Warn("Notify: failed to append run summary to %s: %v", s.summaryFilePath, err)
	}

	s.metrics.SetSpotsFound(len(result.Spots))

	if dryRun || len(result.Spots) == 0 {
		fmt.Fprintln(s.stdout, formatted.PlainText)
		fmt.Fprintln(s.stdout)
		fmt.Fprintln(s.stdout, report)
		s.metrics.ObserveRun(runStatusSuccess, result.Elapsed.Seconds())
		return nil
	}

	if _, err := s.sender.SendMessage(ctx, formatted.HTML); err != nil {
		// Сводка печатается до фатального завершения процесса
		fmt.Fprintln(s.stdout, formatted.PlainText)
		s.metrics.ObserveRun(runStatusError, result.Elapsed.Seconds())
		return err
	}
	s.metrics.IncMessagesSent()

	fmt.Fprintln(s.stdout, report)
	s.metrics.ObserveRun(runStatusSuccess, result.Elapsed.Seconds())

	s.logger.Info("Notify: run finished, %d spots reported in %.2fs",
		len(result.Spots), result.Elapsed.Seconds())
	return nil
}

// appendRunSummary дописывает отчёт и plain-сводку в side-channel файл
func (s *Service) appendRunSummary(report, plainText string) error {
	if s.summaryFilePath == "" {
		return nil
	}

	f, err := os.OpenFile(s.summaryFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s\n\n%s\n", report, plainText)
	return err
}
