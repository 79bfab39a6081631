package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/thahbeeb/artsfest-api/services"
)

type ScoreHandler struct {
	scoreService services.ScoreService
}

func NewScoreHandler(scoreService services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// ListScores handles GET /api/scores?category=&published=.
func (h *ScoreHandler) ListScores(w http.ResponseWriter, r *http.Request) {
	input := services.ListScoresInput{
		Category: r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("published"); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			badRequestResponse(w, r, errors.New("published must be true or false"))
			return
		}
		input.Published = &published
	}

	scores, err := h.scoreService.ListScores(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"scores": scores,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) CreateScore(w http.ResponseWriter, r *http.Request) {
	var input services.ScoreInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	score, err := h.scoreService.CreateScore(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"score": score,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	scoreID, err := getIDFromURL(r, "scoreID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	score, err := h.scoreService.UpdateScore(r.Context(), scoreID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"score": score,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) DeleteScore(w http.ResponseWriter, r *http.Request) {
	scoreID, err := getIDFromURL(r, "scoreID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scoreService.DeleteScore(r.Context(), scoreID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"ok": true,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// BulkPublish handles POST /api/scores/publish. Without score_ids it flips
// every record whose flag differs from the requested state.
func (h *ScoreHandler) BulkPublish(w http.ResponseWriter, r *http.Request) {
	var input services.BulkPublishInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.scoreService.BulkSetPublished(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, result, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TeamTotals handles GET /api/scores/totals/teams?category=, the individual
// leaderboard.
func (h *ScoreHandler) TeamTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.scoreService.TeamTotals(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"totals": totals,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TeamTotalsGroup handles GET /api/scores/totals/teams-group, the group event
// leaderboard.
func (h *ScoreHandler) TeamTotalsGroup(w http.ResponseWriter, r *http.Request) {
	totals, err := h.scoreService.TeamTotalsGroup(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"totals": totals,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
