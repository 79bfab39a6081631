package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/thahbeeb/artsfest-api/models"
	"github.com/thahbeeb/artsfest-api/repositories"
	"github.com/thahbeeb/artsfest-api/storage"
)

type TeamInput struct {
	Name         string  `json:"name"`
	CaptainName  *string `json:"captain_name,omitempty"`
	CaptainEmail *string `json:"captain_email,omitempty"`
	CaptainPhone *string `json:"captain_phone,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// MembersUpload carries a roster sheet plus the participants parsed from it
// upstream. The sheet itself is only archived; this service never parses
// spreadsheets.
type MembersUpload struct {
	FileName     string
	ContentType  string
	File         io.Reader
	Participants []models.Participant
}

type TeamService interface {
	CreateTeam(ctx context.Context, input TeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id int, input TeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	UploadMembers(ctx context.Context, teamID int, upload MembersUpload) (*models.Team, error)
	ListParticipants(ctx context.Context, teamID int, category string) ([]models.Participant, error)
}

type teamService struct {
	db       *sql.DB
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewTeamService(db *sql.DB, teamRepo repositories.TeamRepository, uploader storage.FileUploader, logger *slog.Logger) TeamService {
	return &teamService{
		db:       db,
		teamRepo: teamRepo,
		uploader: uploader,
		logger:   logger,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input TeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{
		Name:         strings.TrimSpace(input.Name),
		CaptainName:  input.CaptainName,
		CaptainEmail: input.CaptainEmail,
		CaptainPhone: input.CaptainPhone,
		Description:  input.Description,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.populateMembersFileURL(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for i := range teams {
		s.populateMembersFileURL(&teams[i])
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input TeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTeamNameRequired
	}

	team := &models.Team{
		ID:           id,
		Name:         strings.TrimSpace(input.Name),
		CaptainName:  input.CaptainName,
		CaptainEmail: input.CaptainEmail,
		CaptainPhone: input.CaptainPhone,
		Description:  input.Description,
	}
	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team %d: %w", id, err)
	}
	return s.GetTeamByID(ctx, id)
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}
	return nil
}

// UploadMembers archives the submitted roster sheet in object storage and
// replaces the team's participant list in one transaction.
func (s *teamService) UploadMembers(ctx context.Context, teamID int, upload MembersUpload) (*models.Team, error) {
	if upload.File == nil {
		return nil, ErrFileRequired
	}
	if _, err := s.GetTeamByID(ctx, teamID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/members_%d%s", teamID, time.Now().UnixNano(), path.Ext(upload.FileName))
	if _, err := s.uploader.Upload(ctx, key, upload.ContentType, upload.File); err != nil {
		return nil, fmt.Errorf("failed to store members sheet for team %d: %w", teamID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("rollback failed", slog.Any("error", rbErr), slog.Any("cause", txErr))
			}
		}
	}()

	if txErr = s.teamRepo.UpdateMembersFileKey(ctx, tx, teamID, &key); txErr != nil {
		return nil, txErr
	}
	if txErr = s.teamRepo.ReplaceParticipants(ctx, tx, teamID, upload.Participants); txErr != nil {
		return nil, txErr
	}
	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("failed to commit members upload: %w", txErr)
	}

	return s.GetTeamByID(ctx, teamID)
}

func (s *teamService) ListParticipants(ctx context.Context, teamID int, category string) ([]models.Participant, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	participants, err := s.teamRepo.ListParticipants(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for team %d: %w", teamID, err)
	}

	category = strings.TrimSpace(category)
	if category == "" || category == models.CategoryAll {
		return participants, nil
	}
	filtered := make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *teamService) populateMembersFileURL(team *models.Team) {
	if team == nil || team.MembersFileKey == nil || *team.MembersFileKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*team.MembersFileKey); url != "" {
		team.MembersFileURL = &url
	}
}
