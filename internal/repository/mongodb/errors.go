package mongodb

import (
	"errors"
	"fmt"

	"devevent/internal/domain"

	"go.mongodb.org/mongo-driver/mongo"
)

// mapError tags network failures and timeouts with domain.ErrConnectivity.
func mapError(err error) error {
	if err == nil || errors.Is(err, domain.ErrConnectivity) {
		return err
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %w", domain.ErrConnectivity, err)
	}
	return err
}
