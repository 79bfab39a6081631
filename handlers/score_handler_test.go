package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thahbeeb/artsfest-api/models"
	"github.com/thahbeeb/artsfest-api/services"
)

type stubScoreService struct {
	listInput  services.ListScoresInput
	bulkInput  services.BulkPublishInput
	bulkResult *services.BulkPublishResult
	deletedID  int
	err        error
}

func (s *stubScoreService) CreateScore(ctx context.Context, input services.ScoreInput) (*models.Score, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Score{ID: 1, ItemID: input.ItemID}, nil
}

func (s *stubScoreService) UpdateScore(ctx context.Context, id int, input services.ScoreInput) (*models.Score, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Score{ID: id, ItemID: input.ItemID}, nil
}

func (s *stubScoreService) DeleteScore(ctx context.Context, id int) error {
	s.deletedID = id
	return s.err
}

func (s *stubScoreService) ListScores(ctx context.Context, input services.ListScoresInput) ([]models.Score, error) {
	s.listInput = input
	return []models.Score{}, s.err
}

func (s *stubScoreService) BulkSetPublished(ctx context.Context, input services.BulkPublishInput) (*services.BulkPublishResult, error) {
	s.bulkInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.bulkResult, nil
}

func (s *stubScoreService) TeamTotals(ctx context.Context, category string) ([]models.TeamTotal, error) {
	return nil, s.err
}

func (s *stubScoreService) TeamTotalsGroup(ctx context.Context) ([]models.TeamTotal, error) {
	return nil, s.err
}

func TestListScoresQueryParams(t *testing.T) {
	t.Run("category and published are forwarded", func(t *testing.T) {
		stub := &stubScoreService{}
		h := NewScoreHandler(stub)

		req := httptest.NewRequest(http.MethodGet, "/api/scores?category=Junior&published=true", nil)
		rec := httptest.NewRecorder()
		h.ListScores(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Junior", stub.listInput.Category)
		require.NotNil(t, stub.listInput.Published)
		assert.True(t, *stub.listInput.Published)
	})

	t.Run("bad published value is a 400", func(t *testing.T) {
		h := NewScoreHandler(&stubScoreService{})

		req := httptest.NewRequest(http.MethodGet, "/api/scores?published=maybe", nil)
		rec := httptest.NewRecorder()
		h.ListScores(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBulkPublishHandler(t *testing.T) {
	stub := &stubScoreService{
		bulkResult: &services.BulkPublishResult{Matched: 2, Modified: 1, Published: true},
	}
	h := NewScoreHandler(stub)

	body := bytes.NewBufferString(`{"score_ids": [4, 5], "published": true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/scores/publish", body)
	rec := httptest.NewRecorder()
	h.BulkPublish(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{4, 5}, stub.bulkInput.ScoreIDs)

	var result services.BulkPublishResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, int64(2), result.Matched)
	assert.Equal(t, int64(1), result.Modified)
	assert.True(t, result.Published)
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"score not found", services.ErrScoreNotFound, http.StatusNotFound},
		{"validation", services.ErrScoreItemRequired, http.StatusBadRequest},
		{"bad credentials", services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{"email conflict", services.ErrUserEmailConflict, http.StatusConflict},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			mapServiceErrorToHTTP(rec, req, tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
