package consumer

import (
	"context"
	"encoding/json"

	"go-payroll/internal/events"
	"go-payroll/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayrollRecorded renders a payslip for every recorded payroll. The
// payslip is generated from the stored breakdown, so what the user approved
// and what ends up on paper cannot drift apart.
func ConsumePayrollRecorded(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_recorded")
	log.Info("payroll recorded consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll recorded consumer stopped")
				return
			}
			log.Error("fetch payroll recorded message failed", zap.Error(err))
			continue
		}

		var event events.PayrollRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll recorded event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = payrollService.GeneratePayslip(ctx, event.CompanyID, event.PayrollID)
		if err != nil {
			log.Error("generate payslip failed",
				zap.String("payroll_id", event.PayrollID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll recorded message failed", zap.Error(err))
			continue
		}

		log.Info("payslip generated",
			zap.String("payroll_id", event.PayrollID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
