package services

import (
	"os"
	"testing"

	"opportunity-admin-backend/config"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	config.Logger = zap.NewNop()
	os.Exit(m.Run())
}
