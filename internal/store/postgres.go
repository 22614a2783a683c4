package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/skillmatch/internal/types"
)

// Postgres stores profiles and job postings in PostgreSQL. Structured
// fields (skills, preferences, salary) live in JSONB columns so the
// schema tracks the Go types without migration churn.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// GetProfile implements ProfileStore.
func (p *Postgres) GetProfile(ctx context.Context, id string) (*types.Profile, error) {
	var profile types.Profile
	var skillsJSON, locationsJSON, modesJSON []byte

	err := p.pool.QueryRow(ctx,
		`SELECT id, narrative_text, skills, total_experience_years,
		        preferred_locations, preferred_work_modes, salary_floor, salary_ceiling
		 FROM profiles WHERE id = $1`,
		id,
	).Scan(&profile.ID, &profile.NarrativeText, &skillsJSON, &profile.TotalExperienceYears,
		&locationsJSON, &modesJSON, &profile.SalaryFloor, &profile.SalaryCeiling)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "profile", ID: id}
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}

	if skillsJSON != nil {
		if err := json.Unmarshal(skillsJSON, &profile.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills for profile %s: %w", id, err)
		}
	}
	if locationsJSON != nil {
		_ = json.Unmarshal(locationsJSON, &profile.PreferredLocations)
	}
	if modesJSON != nil {
		_ = json.Unmarshal(modesJSON, &profile.PreferredWorkModes)
	}

	return &profile, nil
}

// UpsertProfile stores or replaces a profile.
func (p *Postgres) UpsertProfile(ctx context.Context, profile *types.Profile) error {
	skillsJSON, err := json.Marshal(profile.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	locationsJSON, err := json.Marshal(profile.PreferredLocations)
	if err != nil {
		return fmt.Errorf("failed to marshal locations: %w", err)
	}
	modesJSON, err := json.Marshal(profile.PreferredWorkModes)
	if err != nil {
		return fmt.Errorf("failed to marshal work modes: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO profiles (id, narrative_text, skills, total_experience_years,
		                       preferred_locations, preferred_work_modes, salary_floor, salary_ceiling)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		     narrative_text = $2, skills = $3, total_experience_years = $4,
		     preferred_locations = $5, preferred_work_modes = $6,
		     salary_floor = $7, salary_ceiling = $8, updated_at = NOW()`,
		profile.ID, profile.NarrativeText, skillsJSON, profile.TotalExperienceYears,
		locationsJSON, modesJSON, profile.SalaryFloor, profile.SalaryCeiling,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", profile.ID, err)
	}
	return nil
}

// GetJob implements JobStore.
func (p *Postgres) GetJob(ctx context.Context, id string) (*types.JobPosting, error) {
	job, err := scanJob(p.pool.QueryRow(ctx, jobSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "job", ID: id}
		}
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	return job, nil
}

// ListJobs implements JobStore.
func (p *Postgres) ListJobs(ctx context.Context, ids []string) ([]*types.JobPosting, error) {
	rows, err := p.pool.Query(ctx, jobSelect+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*types.JobPosting, len(ids))
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		byID[job.ID] = job
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs := make([]*types.JobPosting, 0, len(ids))
	for _, id := range ids {
		job, ok := byID[id]
		if !ok {
			return nil, &NotFoundError{Kind: "job", ID: id}
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// ListActiveJobs implements JobStore.
func (p *Postgres) ListActiveJobs(ctx context.Context) ([]*types.JobPosting, error) {
	rows, err := p.pool.Query(ctx, jobSelect+` WHERE active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*types.JobPosting
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	return jobs, nil
}

// UpsertJob stores or replaces a job posting.
func (p *Postgres) UpsertJob(ctx context.Context, job *types.JobPosting) error {
	skillsJSON, err := json.Marshal(job.RequiredSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal required skills: %w", err)
	}
	var salaryJSON []byte
	if job.Salary != nil {
		salaryJSON, err = json.Marshal(job.Salary)
		if err != nil {
			return fmt.Errorf("failed to marshal salary range: %w", err)
		}
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO job_postings (id, title, description_text, required_skills,
		                           min_experience_years, location, work_mode, salary_range, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		     title = $2, description_text = $3, required_skills = $4,
		     min_experience_years = $5, location = $6, work_mode = $7,
		     salary_range = $8, active = $9, updated_at = NOW()`,
		job.ID, job.Title, job.DescriptionText, skillsJSON,
		job.MinExperienceYears, job.Location, string(job.WorkMode), salaryJSON, job.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert job %s: %w", job.ID, err)
	}
	return nil
}

const jobSelect = `SELECT id, title, description_text, required_skills,
       min_experience_years, location, work_mode, salary_range, active
  FROM job_postings`

// scanJob decodes one job_postings row.
func scanJob(row pgx.Row) (*types.JobPosting, error) {
	var job types.JobPosting
	var skillsJSON, salaryJSON []byte
	var workMode string

	err := row.Scan(&job.ID, &job.Title, &job.DescriptionText, &skillsJSON,
		&job.MinExperienceYears, &job.Location, &workMode, &salaryJSON, &job.Active)
	if err != nil {
		return nil, err
	}
	job.WorkMode = types.WorkMode(workMode)

	if skillsJSON != nil {
		if err := json.Unmarshal(skillsJSON, &job.RequiredSkills); err != nil {
			return nil, fmt.Errorf("failed to decode required skills: %w", err)
		}
	}
	if salaryJSON != nil {
		if err := json.Unmarshal(salaryJSON, &job.Salary); err != nil {
			return nil, fmt.Errorf("failed to decode salary range: %w", err)
		}
	}

	return &job, nil
}
