// Package store provides data persistence interfaces and implementations.
// The analytics engine itself never touches storage; the store owns the
// durable trade collection, tag list, and goal thresholds that the host
// passes into the engine functions.
package store

import (
	"context"

	"trading-journal/internal/models"
)

// DataStore defines the interface for journal persistence.
type DataStore interface {
	// Trades
	SaveTrades(ctx context.Context, trades []models.Trade) error
	GetTrades(ctx context.Context) ([]models.Trade, error)
	GetTradeByID(ctx context.Context, id string) (*models.Trade, error)
	ReplaceTrade(ctx context.Context, trade models.Trade) error
	DeleteTrades(ctx context.Context, ids []string) error
	TagTrades(ctx context.Context, ids []string, tag string) error
	ClearTrades(ctx context.Context) error

	// Available tags
	GetTags(ctx context.Context) ([]string, error)
	SaveTags(ctx context.Context, tags []string) error

	// Daily goals
	GetGoals(ctx context.Context) (models.DailyGoals, error)
	SaveGoals(ctx context.Context, goals models.DailyGoals) error

	// Lifecycle
	Close() error
}
