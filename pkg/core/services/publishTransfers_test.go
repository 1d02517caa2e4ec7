package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/internal/config"
	"github.com/mdvenues/kitplanner/pkg/clients/sheetsclient"
	"github.com/mdvenues/kitplanner/pkg/core/kitplan"
)

func testWeekPlan() *WeekPlan {
	return &WeekPlan{
		WeekStart: "2025-11-10",
		WeekEnd:   "2025-11-16",
		Transfers: []kitplan.KitTransferSuggestion{
			{ScenarioID: "alpha", ScenarioTitle: "Alpha", KitNumber: 1, FromStoreName: "Shibuya", ToStoreName: "Shinjuku", TransferDate: "2025-11-06", Reason: "Performance at Shinjuku on 11/10"},
			{ScenarioID: "beta", KitNumber: 2, FromStoreName: "Unknown", ToStoreName: "Shibuya", TransferDate: "2025-11-10", Reason: "Performance at Shibuya on 11/11"},
		},
	}
}

func TestPublishTransfers(t *testing.T) {
	publisher := &mockPublisher{}
	cfg := &config.Config{ChecklistSheetID: "sheet-123"}

	err := PublishTransfers(publisher, cfg, zap.NewNop(), testWeekPlan())
	require.NoError(t, err)

	assert.Equal(t, "sheet-123", publisher.spreadsheetID)
	require.NotNil(t, publisher.checklist)
	assert.Equal(t, "2025-11-10", publisher.checklist.WeekStart)
	assert.Equal(t, []sheetsclient.ChecklistRow{
		{TransferDate: "2025-11-06", Scenario: "Alpha", KitNumber: 1, From: "Shibuya", To: "Shinjuku", Reason: "Performance at Shinjuku on 11/10"},
		{TransferDate: "2025-11-10", Scenario: "beta", KitNumber: 2, From: "Unknown", To: "Shibuya", Reason: "Performance at Shibuya on 11/11"},
	}, publisher.checklist.Rows)
}

func TestPublishTransfers_NoSheetConfigured(t *testing.T) {
	publisher := &mockPublisher{}

	err := PublishTransfers(publisher, &config.Config{}, zap.NewNop(), testWeekPlan())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checklistSheetID")
	assert.Nil(t, publisher.checklist)
}

func TestPublishTransfers_PublisherError(t *testing.T) {
	publisher := &mockPublisher{publishErr: errors.New("quota exceeded")}
	cfg := &config.Config{ChecklistSheetID: "sheet-123"}

	err := PublishTransfers(publisher, cfg, zap.NewNop(), testWeekPlan())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish transfer checklist")
}
