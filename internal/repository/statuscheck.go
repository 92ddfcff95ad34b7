package repository

import (
	"context"
	"fmt"

	"github.com/staynest/staynest/internal/model"
)

// statusCheckListLimit caps how many status checks a single list returns.
const statusCheckListLimit = 1000

// InsertStatusCheck records a client status check.
func (r *Repository) InsertStatusCheck(ctx context.Context, check *model.StatusCheck) error {
	query := `
		INSERT INTO status_checks (id, client_name, timestamp)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query,
		check.ID,
		check.ClientName,
		check.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert status check: %w", err)
	}

	return nil
}

// ListStatusChecks returns recorded status checks, newest first.
func (r *Repository) ListStatusChecks(ctx context.Context) ([]*model.StatusCheck, error) {
	query := `
		SELECT id, client_name, timestamp
		FROM status_checks
		ORDER BY timestamp DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, statusCheckListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list status checks: %w", err)
	}
	defer rows.Close()

	var checks []*model.StatusCheck
	for rows.Next() {
		var check model.StatusCheck
		if err := rows.Scan(&check.ID, &check.ClientName, &check.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan status check: %w", err)
		}
		checks = append(checks, &check)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status checks: %w", err)
	}

	return checks, nil
}
