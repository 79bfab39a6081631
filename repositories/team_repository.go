package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thahbeeb/artsfest-api/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name already exists")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int) error
	UpdateMembersFileKey(ctx context.Context, exec SQLExecutor, teamID int, key *string) error
	ReplaceParticipants(ctx context.Context, exec SQLExecutor, teamID int, participants []models.Participant) error
	ListParticipants(ctx context.Context, teamID int) ([]models.Participant, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	executor := r.getExecutor(nil)
	query := `
		INSERT INTO teams (name, captain_name, captain_email, captain_phone, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		team.Name, team.CaptainName, team.CaptainEmail, team.CaptainPhone, team.Description,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) scanTeam(rowScanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := rowScanner.Scan(
		&t.ID, &t.Name, &t.CaptainName, &t.CaptainEmail, &t.CaptainPhone,
		&t.Description, &t.MembersFileKey, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	executor := r.getExecutor(nil)
	query := `
		SELECT id, name, captain_name, captain_email, captain_phone, description, members_file_key, created_at, updated_at
		FROM teams
		WHERE id = $1`

	team, err := r.scanTeam(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	participants, err := r.ListParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	team.Participants = participants
	return team, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	executor := r.getExecutor(nil)
	query := `
		SELECT id, name, captain_name, captain_email, captain_phone, description, members_file_key, created_at, updated_at
		FROM teams
		ORDER BY created_at DESC, id DESC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		t, errScan := r.scanTeam(rows)
		if errScan != nil {
			return nil, errScan
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	executor := r.getExecutor(nil)
	query := `
		UPDATE teams SET
			name = $1, captain_name = $2, captain_email = $3, captain_phone = $4,
			description = $5, updated_at = NOW()
		WHERE id = $6`

	result, err := executor.ExecContext(ctx, query,
		team.Name, team.CaptainName, team.CaptainEmail, team.CaptainPhone,
		team.Description, team.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	executor := r.getExecutor(nil)
	result, err := executor.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateMembersFileKey(ctx context.Context, exec SQLExecutor, teamID int, key *string) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE teams SET members_file_key = $1, updated_at = NOW() WHERE id = $2`, key, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) ReplaceParticipants(ctx context.Context, exec SQLExecutor, teamID int, participants []models.Participant) error {
	executor := r.getExecutor(exec)

	if _, err := executor.ExecContext(ctx, `DELETE FROM team_participants WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("failed to clear participants for team %d: %w", teamID, err)
	}

	query := `
		INSERT INTO team_participants (team_id, name, category, chest_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	for i := range participants {
		participants[i].TeamID = teamID
		err := executor.QueryRowContext(ctx, query,
			teamID, participants[i].Name, participants[i].Category, participants[i].ChestNumber,
		).Scan(&participants[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert participant for team %d: %w", teamID, err)
		}
	}
	return nil
}

func (r *postgresTeamRepository) ListParticipants(ctx context.Context, teamID int) ([]models.Participant, error) {
	executor := r.getExecutor(nil)
	query := `
		SELECT id, team_id, name, category, chest_number
		FROM team_participants
		WHERE team_id = $1
		ORDER BY id`

	rows, err := executor.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.Category, &p.ChestNumber); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
