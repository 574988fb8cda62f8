package monitor

import (
	"testing"

	"gorm.io/gorm"

	"github.com/forgelabs-io/synthetics-forge/logger"
	"github.com/forgelabs-io/synthetics-forge/testutil"
)

// setupTestStore creates a test database and monitor store for testing.
func setupTestStore(t *testing.T) (*gorm.DB, Store) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &Monitor{})

	log := logger.NewTestLogger()
	return db, NewMySQLStore(db, log)
}

// createTestMonitor returns a valid monitor record with default values.
func createTestMonitor(testName, url string) *Monitor {
	return &Monitor{
		TestName:        testName,
		WebsiteURL:      url,
		FilePath:        "synthetic_tests/" + testName + ".journey.ts",
		Locations:       "us_east",
		ScheduleMinutes: 10,
		Source:          SourceHeuristic,
	}
}
