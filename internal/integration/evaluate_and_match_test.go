package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"dev-match/internal/config"
	"dev-match/internal/database"
	"dev-match/internal/database/migration"
	dbpostgres "dev-match/internal/database/postgres"
	"dev-match/internal/delivery/http/handler"
	"dev-match/internal/delivery/http/middleware"
	"dev-match/internal/delivery/http/routes"
	"dev-match/internal/domain/matching"
	"dev-match/internal/repository"
	"dev-match/internal/usecase"
	"dev-match/internal/usecase/evaluator"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type evaluateResponse struct {
	Type        string          `json:"type"`
	ProjectID   uuid.UUID       `json:"project_id"`
	Message     string          `json:"message"`
	ChatHistory []chatTurn      `json:"chat_history"`
	Data        []matchItem     `json:"data"`
	Reqs        json.RawMessage `json:"requirements"`
}

type chatTurn struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type matchItem struct {
	DeveloperID      uuid.UUID `json:"developer_id"`
	DeveloperName    string    `json:"developer_name"`
	MatchScore       int       `json:"match_score"`
	SkillsNotMatched []struct {
		Name string `json:"name"`
	} `json:"skills_not_matched"`
}

// scriptedOracle replays canned replies in order and repeats the last one.
type scriptedOracle struct {
	mu      sync.Mutex
	replies []string
	calls   int
}

func (o *scriptedOracle) Generate(_ context.Context, _, _ string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	i := o.calls
	if i >= len(o.replies) {
		i = len(o.replies) - 1
	}
	o.calls++
	return o.replies[i], nil
}

type seededDevs struct {
	skill  string
	expert uuid.UUID
	junior uuid.UUID
	hidden uuid.UUID
}

func TestIntegration_EvaluateAndMatch_QuestionThenMatches(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedDevelopers(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	oracle := &scriptedOracle{replies: []string{
		`{"ready": false, "question": "Which timezone should the team work in?"}`,
		fmt.Sprintf(`{"ready": true, "requirements": {"skills": [{"name": %q, "level": "intermediate", "required": true}], "start_date": "now"}}`, seed.skill),
	}}
	app := newTestFiberApp(t, db, oracle)

	first := callEvaluate(t, app, map[string]any{
		"project": map[string]any{
			"title":           "Integration project",
			"project_type":    []string{"web_app"},
			"required_skills": []map[string]string{{"skill_name": seed.skill, "minimum_level": "intermediate"}},
			"start_date":      "now",
		},
		"message": "Hi, we need help",
	})
	if first.Type != "question" {
		t.Fatalf("first turn: expected question, got %q", first.Type)
	}
	if first.ProjectID == uuid.Nil {
		t.Fatalf("first turn: expected project_id")
	}
	defer cleanupProject(t, ctx, db, first.ProjectID)
	if len(first.ChatHistory) != 2 {
		t.Fatalf("first turn: expected 2 dialogue turns, got %d", len(first.ChatHistory))
	}

	second := callEvaluate(t, app, map[string]any{
		"project_id": first.ProjectID.String(),
		"message":    "UTC+7, start right away",
	})
	if second.Type != "matches" {
		t.Fatalf("second turn: expected matches, got %q", second.Type)
	}
	if len(second.Data) != 1 {
		t.Fatalf("second turn: expected exactly the expert developer, got %d results", len(second.Data))
	}
	if second.Data[0].DeveloperID != seed.expert {
		t.Fatalf("second turn: expected developer %s, got %s", seed.expert, second.Data[0].DeveloperID)
	}
	if second.Data[0].MatchScore != matching.RequiredSkillPoints+matching.StartDatePoints {
		t.Fatalf("second turn: expected score 40, got %d", second.Data[0].MatchScore)
	}

	var stored []struct {
		DeveloperID uuid.UUID `json:"developer_id"`
		Status      string    `json:"status"`
	}
	getData(t, app, "/api/v1/projects/"+first.ProjectID.String()+"/matches", &stored)
	if len(stored) != 1 || stored[0].DeveloperID != seed.expert || stored[0].Status != "suggested" {
		t.Fatalf("stored matches: unexpected %+v", stored)
	}

	var history []chatTurn
	getData(t, app, "/api/v1/projects/"+first.ProjectID.String()+"/history", &history)
	if len(history) != 3 {
		t.Fatalf("history: expected 3 dialogue turns, got %d", len(history))
	}
	if history[2].Role != "user" || history[2].Message != "UTC+7, start right away" {
		t.Fatalf("history: unexpected last turn %+v", history[2])
	}

	var status string
	if err := db.QueryRow(ctx, `SELECT status FROM projects WHERE id = $1`, first.ProjectID).Scan(&status); err != nil {
		t.Fatalf("load project status: %v", err)
	}
	if status != "matched" {
		t.Fatalf("project status: expected matched, got %q", status)
	}
}

func TestIntegration_FollowUpUnknownProject(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()
	runMigrations(t, ctx, db)

	app := newTestFiberApp(t, db, &scriptedOracle{replies: []string{`{"ready": false, "question": "?"}`}})

	b, _ := json.Marshal(map[string]string{"project_id": uuid.NewString(), "message": "hello"})
	req := httptest.NewRequest("POST", "/api/v1/evaluate-and-match", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("evaluate request error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	url := os.Getenv("DEVMATCH_TEST_DATABASE_URL")
	host := stringsOrDefault(os.Getenv("DEVMATCH_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("DEVMATCH_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("DEVMATCH_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("DEVMATCH_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("DEVMATCH_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("DEVMATCH_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if url == "" && (host == "" || port == "" || name == "" || user == "") {
		t.Skip("missing test DB env vars: set DEVMATCH_TEST_DATABASE_URL or DEVMATCH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		URL:        url,
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{Dir: resolveMigrationsDir(t)}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/evaluate_and_match_test.go
	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	return migDir
}

// seedDevelopers inserts developers holding a skill name unique to this run,
// so rows from other runs or the sample seeders never qualify.
func seedDevelopers(t *testing.T, ctx context.Context, db database.DB) seededDevs {
	t.Helper()

	ns := uuid.NewString()[:8]
	out := seededDevs{skill: "ItSkill-" + ns}

	out.expert = ensureDeveloper(t, ctx, db, "Expert "+ns, "expert-"+ns+"@it.test", true, "now")
	out.junior = ensureDeveloper(t, ctx, db, "Junior "+ns, "junior-"+ns+"@it.test", true, "now")
	out.hidden = ensureDeveloper(t, ctx, db, "Hidden "+ns, "hidden-"+ns+"@it.test", false, "now")

	ensureDeveloperSkill(t, ctx, db, out.expert, out.skill, "expert", 6)
	ensureDeveloperSkill(t, ctx, db, out.junior, out.skill, "beginner", 1)
	ensureDeveloperSkill(t, ctx, db, out.hidden, out.skill, "expert", 9)

	return out
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, seed seededDevs) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM developers WHERE id = ANY($1)`, []uuid.UUID{seed.expert, seed.junior, seed.hidden})
}

func cleanupProject(t *testing.T, ctx context.Context, db database.DB, id uuid.UUID) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
}

func newTestFiberApp(t *testing.T, db database.DB, oracle evaluator.Oracle) *fiber.App {
	t.Helper()

	pool := usecase.NewDeveloperPool(repository.NewPostgresDeveloperRepository(db), nil, 0, nil)
	uc := usecase.NewMatchingUsecase(usecase.MatchingDeps{
		Projects:  repository.NewPostgresProjectRepository(db),
		History:   repository.NewPostgresChatHistoryRepository(db),
		Matches:   repository.NewPostgresMatchRepository(db),
		Pool:      pool,
		Evaluator: evaluator.New(oracle, nil, 5*time.Second),
		Policy:    matching.DefaultPolicy,
	})

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	reg := &routes.Registry{
		Evaluate: handler.NewEvaluateHandler(uc, nil),
		Projects: handler.NewProjectHandler(uc),
	}
	reg.Register(app)
	return app
}

func callEvaluate(t *testing.T, app *fiber.App, body map[string]any) evaluateResponse {
	t.Helper()

	b, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/api/v1/evaluate-and-match", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("evaluate request error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("evaluate: expected 200, got %d", resp.StatusCode)
	}

	var out evaluateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("evaluate decode error: %v", err)
	}
	return out
}

func getData(t *testing.T, app *fiber.App, path string, out any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("GET %s error: %v", path, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("GET %s decode error: %v", path, err)
	}
	if sr.Status != fiber.StatusOK {
		t.Fatalf("GET %s: expected status=200, got %d (message=%s)", path, sr.Status, sr.Message)
	}
	if err := json.Unmarshal(sr.Data, out); err != nil {
		t.Fatalf("GET %s data decode error: %v", path, err)
	}
}

func ensureDeveloper(t *testing.T, ctx context.Context, db database.DB, name, email string, public bool, availableFrom string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(ctx,
		`INSERT INTO developers (name, email, is_public, status, available_from)
		 VALUES ($1, $2, $3, 'active', $4)
		 ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		name, email, public, availableFrom,
	).Scan(&id)
	if err != nil {
		t.Fatalf("ensure developer %s: %v", email, err)
	}
	return id
}

func ensureDeveloperSkill(t *testing.T, ctx context.Context, db database.DB, devID uuid.UUID, skillName, level string, years int) {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO developer_skills (developer_id, skill_name, skill_level, years_experience)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (developer_id, skill_name) DO NOTHING`,
		devID, skillName, level, years,
	)
	if err != nil {
		t.Fatalf("ensure developer skill %s: %v", skillName, err)
	}
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
