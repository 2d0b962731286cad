package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/common"
	"github.com/ternarybob/valuelens/internal/interfaces"
)

// Manager owns the Badger connection and the storages built on it
type Manager struct {
	db          *BadgerDB
	cache       interfaces.FundamentalsCache
	evaluations interfaces.EvaluationStorage
	logger      arbor.ILogger
}

// NewManager opens the database and creates the storages
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (*Manager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:          db,
		cache:       NewFundamentalsCache(db, logger),
		evaluations: NewEvaluationStorage(db, logger),
		logger:      logger,
	}

	logger.Debug().Str("path", config.Path).Msg("Badger storage manager initialized")

	return manager, nil
}

// FundamentalsCache returns the per-symbol fundamentals cache
func (m *Manager) FundamentalsCache() interfaces.FundamentalsCache {
	return m.cache
}

// EvaluationStorage returns the evaluation history storage
func (m *Manager) EvaluationStorage() interfaces.EvaluationStorage {
	return m.evaluations
}

// Close closes the database connection
func (m *Manager) Close() error {
	return m.db.Close()
}
