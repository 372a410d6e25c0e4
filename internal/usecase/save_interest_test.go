package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renoxbert/leadmarket/internal/entity"
)

func TestSaveInterestSuccess(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockLeads.On("FindByID", ctx, "lead-1").Return(publishedLead("lead-1", "Roofing"), nil)

	mockInterests := new(MockInterestRepository)
	mockInterests.On("Upsert", ctx, mock.MatchedBy(func(i *entity.Interest) bool {
		return i.ContractorID == "con-1" && i.LeadID == "lead-1" && i.Type == entity.InterestSaved
	})).Return(nil)

	uc := NewSaveInterestUseCase(mockInterests, mockLeads)

	output, err := uc.Execute(ctx, SaveInterestInput{
		ContractorID: "con-1",
		LeadID:       "lead-1",
		Type:         entity.InterestSaved,
	})

	require.NoError(t, err)
	assert.True(t, output.Success)
	mockInterests.AssertExpectations(t)
}

func TestSaveInterestInvalidType(t *testing.T) {
	uc := NewSaveInterestUseCase(new(MockInterestRepository), new(MockLeadRepository))

	_, err := uc.Execute(context.Background(), SaveInterestInput{
		ContractorID: "con-1",
		LeadID:       "lead-1",
		Type:         "BOOKMARKED",
	})

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INTEREST_TYPE", domainErr.Code)
}

func TestSaveInterestUnknownLead(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockLeads.On("FindByID", ctx, "missing").Return(nil, entity.ErrLeadNotFound)

	uc := NewSaveInterestUseCase(new(MockInterestRepository), mockLeads)

	_, err := uc.Execute(ctx, SaveInterestInput{
		ContractorID: "con-1",
		LeadID:       "missing",
		Type:         entity.InterestApplied,
	})

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LEAD_NOT_FOUND", domainErr.Code)
}

// TestSaveInterestNeverMutatesLead records interest repeatedly against a live
// repo and checks the lead row is untouched: interest is informational only.
func TestSaveInterestNeverMutatesLead(t *testing.T) {
	ctx := context.Background()

	lead := publishedLead("lead-1", "Roofing")
	repo := newMemLeadRepo(lead)

	mockInterests := new(MockInterestRepository)
	mockInterests.On("Upsert", ctx, mock.Anything).Return(nil)

	uc := NewSaveInterestUseCase(mockInterests, repo)

	for i := 0; i < 5; i++ {
		interestType := entity.InterestSaved
		if i%2 == 1 {
			interestType = entity.InterestApplied
		}
		_, err := uc.Execute(ctx, SaveInterestInput{
			ContractorID: "con-1",
			LeadID:       "lead-1",
			Type:         interestType,
			Message:      "still interested",
		})
		require.NoError(t, err)
	}

	after, err := repo.FindByID(ctx, "lead-1")
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusPublished, after.Status)
	assert.Nil(t, after.ClaimedByID)
}
