package monitor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forgelabs-io/synthetics-forge/logger"
)

// MySQLStore implements the Store interface using GORM and MySQL.
type MySQLStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewMySQLStore creates a new MySQL-backed monitor store.
func NewMySQLStore(db *gorm.DB, log logger.Logger) *MySQLStore {
	return &MySQLStore{
		db:     db,
		logger: log,
	}
}

// Create creates a new monitor record in the database.
func (s *MySQLStore) Create(ctx context.Context, m *Monitor) error {
	if m.Status == "" {
		m.Status = StatusCreated
	}

	if err := m.Validate(); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		s.logger.Error(ctx, "failed to create monitor record", map[string]interface{}{
			"error":     err.Error(),
			"test_name": m.TestName,
		})
		return err
	}

	s.logger.Info(ctx, "monitor record created", map[string]interface{}{
		"monitor_record_id": m.ID.String(),
		"test_name":         m.TestName,
		"source":            m.Source,
	})

	return nil
}

// GetByID retrieves a monitor record by its ID.
func (s *MySQLStore) GetByID(ctx context.Context, id uuid.UUID) (*Monitor, error) {
	var m Monitor
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&m).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMonitorNotFound
		}
		s.logger.Error(ctx, "failed to get monitor record by ID", map[string]interface{}{
			"error":             err.Error(),
			"monitor_record_id": id.String(),
		})
		return nil, err
	}

	return &m, nil
}

// List retrieves monitor records, newest first, along with the total count.
func (s *MySQLStore) List(ctx context.Context, limit, offset int) ([]*Monitor, int, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&Monitor{}).Count(&total).Error; err != nil {
		s.logger.Error(ctx, "failed to count monitor records", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, 0, err
	}

	query := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var monitors []*Monitor
	if err := query.Find(&monitors).Error; err != nil {
		s.logger.Error(ctx, "failed to list monitor records", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, 0, err
	}

	return monitors, int(total), nil
}

// Update applies the given setters as a single UPDATE statement. Each setter
// contributes column-value pairs; no prior SELECT is needed.
func (s *MySQLStore) Update(ctx context.Context, id uuid.UUID, setters ...UpdateSetter) error {
	columns := make(map[string]interface{})
	for _, setter := range setters {
		for k, v := range setter() {
			columns[k] = v
		}
	}

	result := s.db.WithContext(ctx).
		Model(&Monitor{}).
		Where("id = ?", id).
		Updates(columns)

	if result.Error != nil {
		s.logger.Error(ctx, "failed to update monitor record", map[string]interface{}{
			"error":             result.Error.Error(),
			"monitor_record_id": id.String(),
		})
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrMonitorNotFound
	}

	return nil
}

// Delete deletes a monitor record by its ID.
func (s *MySQLStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Monitor{})

	if result.Error != nil {
		s.logger.Error(ctx, "failed to delete monitor record", map[string]interface{}{
			"error":             result.Error.Error(),
			"monitor_record_id": id.String(),
		})
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrMonitorNotFound
	}

	s.logger.Info(ctx, "monitor record deleted", map[string]interface{}{
		"monitor_record_id": id.String(),
	})

	return nil
}
