package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/crm-gateway/models"
)

func TestGetBuildInfo_ReturnsLinkedValues(t *testing.T) {
	svc := NewAppInfoService(models.NewBuildInfo("v1.2.3", "2026-03-01", "abc123"))

	assert.Equal(t, models.BuildInfo{Version: "v1.2.3", Date: "2026-03-01", Commit: "abc123"}, svc.GetBuildInfo(context.Background()))
}

func TestGetBuildInfo_UnsetValuesAreNA(t *testing.T) {
	svc := NewAppInfoService(models.NewBuildInfo("", "", ""))

	info := svc.GetBuildInfo(context.Background())

	assert.Equal(t, "N/A", info.Version)
	assert.Equal(t, "N/A", info.Date)
	assert.Equal(t, "N/A", info.Commit)
}
