package worker

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// OwnershipExpirationWorker periodically marks owned submissions whose
// ownership window has passed as expired, freeing the lead for resubmission.
type OwnershipExpirationWorker struct {
	db           *sql.DB
	tickInterval time.Duration
}

func NewOwnershipExpirationWorker(db *sql.DB) *OwnershipExpirationWorker {
	return &OwnershipExpirationWorker{
		db:           db,
		tickInterval: time.Hour,
	}
}

func (w *OwnershipExpirationWorker) Start(ctx context.Context) {
	zap.L().Info("ownership expiration worker started",
		zap.Duration("tick_interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.expireOwnership(ctx)

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("ownership expiration worker stopped")
			return
		case <-ticker.C:
			w.expireOwnership(ctx)
		}
	}
}

func (w *OwnershipExpirationWorker) expireOwnership(ctx context.Context) {
	query := `
		UPDATE submissions
		SET
			status = 'expired',
			updated_at = NOW()
		WHERE
			status = 'owned'
			AND ownership_expires_at IS NOT NULL
			AND ownership_expires_at < NOW()
		RETURNING id, user_id, phone_number
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		zap.L().Error("failed to expire ownerships", zap.Error(err))
		return
	}
	defer rows.Close()

	expired := 0
	for rows.Next() {
		var id, userID, phoneNumber string
		if err := rows.Scan(&id, &userID, &phoneNumber); err != nil {
			zap.L().Warn("failed to scan expired submission", zap.Error(err))
			continue
		}
		zap.L().Info("ownership expired",
			zap.String("submission_id", id),
			zap.String("user_id", userID),
			zap.String("phone_number", phoneNumber))
		expired++
	}

	if expired > 0 {
		zap.L().Info("ownership expiry pass complete", zap.Int("expired", expired))
	}
}
