package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"sprintops-backend/internal/auth"
	"sprintops-backend/internal/config"
	"sprintops-backend/internal/database"
	"sprintops-backend/internal/database/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Fixture structures matching the YAML files under cmd/seed/data.
// Cross-references use natural keys (team name, email, task title) so the
// fixtures stay readable and the loader stays idempotent.
type TeamData struct {
	Name string `yaml:"name"`
}

type UserData struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	TeamName string `yaml:"team_name"`
}

type TaskData struct {
	Title         string  `yaml:"title"`
	Description   *string `yaml:"description,omitempty"`
	Status        string  `yaml:"status"`
	Priority      string  `yaml:"priority"`
	TeamName      string  `yaml:"team_name"`
	AssigneeEmail string  `yaml:"assignee_email,omitempty"`
	DueInDays     *int    `yaml:"due_in_days,omitempty"`
	BlockReason   *string `yaml:"block_reason,omitempty"`
}

type BugData struct {
	Title           string  `yaml:"title"`
	Description     *string `yaml:"description,omitempty"`
	Severity        string  `yaml:"severity"`
	Status          string  `yaml:"status"`
	TeamName        string  `yaml:"team_name"`
	LinkedTaskTitle string  `yaml:"linked_task_title,omitempty"`
}

type TeamsFile struct {
	Teams []TeamData `yaml:"teams"`
}

type UsersFile struct {
	Users []UserData `yaml:"users"`
}

type TasksFile struct {
	Tasks []TaskData `yaml:"tasks"`
}

type BugsFile struct {
	Bugs []BugData `yaml:"bugs"`
}

func main() {
	log.Println("Loading demo data from YAML files...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadDataFromYAMLFiles(db, "cmd/seed/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Demo data loaded successfully")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: gormlogger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	var teamsFile TeamsFile
	if err := readYAML(filepath.Join(dataDir, "teams.yaml"), &teamsFile); err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}
	var usersFile UsersFile
	if err := readYAML(filepath.Join(dataDir, "users.yaml"), &usersFile); err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	var tasksFile TasksFile
	if err := readYAML(filepath.Join(dataDir, "tasks.yaml"), &tasksFile); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	var bugsFile BugsFile
	if err := readYAML(filepath.Join(dataDir, "bugs.yaml"), &bugsFile); err != nil {
		return fmt.Errorf("failed to load bugs: %w", err)
	}

	teamMap := make(map[string]*models.Team)
	teamsCreated := 0
	for _, teamData := range teamsFile.Teams {
		team, created, err := createTeam(db, teamData)
		if err != nil {
			return fmt.Errorf("failed to create team %s: %w", teamData.Name, err)
		}
		teamMap[teamData.Name] = team
		if created {
			teamsCreated++
		}
	}
	log.Printf("Teams: %d created, %d total", teamsCreated, len(teamsFile.Teams))

	userMap := make(map[string]*models.User)
	usersCreated := 0
	for _, userData := range usersFile.Users {
		user, created, err := createUser(db, userData, teamMap)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Email, err)
		}
		userMap[userData.Email] = user
		if created {
			usersCreated++
		}
	}
	log.Printf("Users: %d created, %d total", usersCreated, len(usersFile.Users))

	taskMap := make(map[string]*models.Task)
	tasksCreated := 0
	for _, taskData := range tasksFile.Tasks {
		task, created, err := createTask(db, taskData, teamMap, userMap)
		if err != nil {
			return fmt.Errorf("failed to create task %s: %w", taskData.Title, err)
		}
		taskMap[taskData.Title] = task
		if created {
			tasksCreated++
		}
	}
	log.Printf("Tasks: %d created, %d total", tasksCreated, len(tasksFile.Tasks))

	bugsCreated := 0
	for _, bugData := range bugsFile.Bugs {
		_, created, err := createBug(db, bugData, teamMap, taskMap)
		if err != nil {
			return fmt.Errorf("failed to create bug %s: %w", bugData.Title, err)
		}
		if created {
			bugsCreated++
		}
	}
	log.Printf("Bugs: %d created, %d total", bugsCreated, len(bugsFile.Bugs))

	return nil
}

func readYAML(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, target)
}

func createTeam(db *gorm.DB, data TeamData) (*models.Team, bool, error) {
	var existing models.Team
	err := db.First(&existing, "name = ?", data.Name).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	team := &models.Team{Name: data.Name}
	if err := db.Create(team).Error; err != nil {
		return nil, false, err
	}
	return team, true, nil
}

func createUser(db *gorm.DB, data UserData, teamMap map[string]*models.Team) (*models.User, bool, error) {
	var existing models.User
	err := db.First(&existing, "email = ?", data.Email).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	team, ok := teamMap[data.TeamName]
	if !ok {
		return nil, false, fmt.Errorf("unknown team %q", data.TeamName)
	}

	hash, err := auth.HashPassword(data.Password)
	if err != nil {
		return nil, false, err
	}

	user := &models.User{
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: hash,
		Role:         models.UserRole(data.Role),
		TeamID:       team.ID,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func createTask(db *gorm.DB, data TaskData, teamMap map[string]*models.Team, userMap map[string]*models.User) (*models.Task, bool, error) {
	team, ok := teamMap[data.TeamName]
	if !ok {
		return nil, false, fmt.Errorf("unknown team %q", data.TeamName)
	}

	var existing models.Task
	err := db.First(&existing, "title = ? AND team_id = ?", data.Title, team.ID).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	task := &models.Task{
		Title:       data.Title,
		Description: data.Description,
		Status:      models.TaskStatus(data.Status),
		Priority:    models.TaskPriority(data.Priority),
		TeamID:      team.ID,
	}
	if data.AssigneeEmail != "" {
		if user, ok := userMap[data.AssigneeEmail]; ok {
			task.AssignedToID = &user.ID
		}
	}
	if data.DueInDays != nil {
		due := time.Now().AddDate(0, 0, *data.DueInDays)
		task.DueDate = &due
	}
	if task.Status == models.TaskStatusBlocked {
		now := time.Now()
		task.BlockedAt = &now
		task.BlockReason = data.BlockReason
	}

	if err := db.Create(task).Error; err != nil {
		return nil, false, err
	}
	return task, true, nil
}

func createBug(db *gorm.DB, data BugData, teamMap map[string]*models.Team, taskMap map[string]*models.Task) (*models.Bug, bool, error) {
	team, ok := teamMap[data.TeamName]
	if !ok {
		return nil, false, fmt.Errorf("unknown team %q", data.TeamName)
	}

	var existing models.Bug
	err := db.First(&existing, "title = ? AND team_id = ?", data.Title, team.ID).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	bug := &models.Bug{
		Title:       data.Title,
		Description: data.Description,
		Severity:    models.BugSeverity(data.Severity),
		Status:      models.BugStatus(data.Status),
		TeamID:      team.ID,
	}
	if data.LinkedTaskTitle != "" {
		if task, ok := taskMap[data.LinkedTaskTitle]; ok {
			bug.LinkedTaskID = &task.ID
		}
	}

	if err := db.Create(bug).Error; err != nil {
		return nil, false, err
	}
	return bug, true, nil
}
