package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kakeibo/internal/config"
	"kakeibo/internal/handlers"
	"kakeibo/internal/logger"
	"kakeibo/internal/middleware"
	"kakeibo/internal/models"
	"kakeibo/internal/services"
	"kakeibo/internal/validator"
)

const testPassphrase = "yuzu-household-1729"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Wallet{},
		&models.Category{},
		&models.SavingsGoal{},
		&models.Entry{},
		&models.Posting{},
		&models.Budget{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassphrase), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test passphrase: %v", err)
	}
	cfg := &config.Config{PassphraseHash: string(hash)}

	// Services
	targetService := services.NewTargetService(db)
	budgetService := services.NewBudgetService(db, targetService)
	ledgerService := services.NewLedgerService(db)
	summaryService := services.NewSummaryService(db, ledgerService)
	copyService := services.NewCopyService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg)
	budgetHandler := handlers.NewBudgetHandler(budgetService, summaryService, copyService)
	targetHandler := handlers.NewTargetHandler(targetService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/summary", budgetHandler.GetSummary)
	budgets.POST("/copy", budgetHandler.CopyBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	protected.GET("/targets", targetHandler.GetTargets)

	ledger := protected.Group("/ledger")
	ledger.GET("/postings", ledgerHandler.GetPostings)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// login authenticates with the household passphrase and returns the session token.
func (app *testApp) login(t *testing.T) string {
	t.Helper()
	body := fmt.Sprintf(`{"passphrase":%q}`, testPassphrase)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// --- seed helpers; targets and ledger rows have no write API ---

func (app *testApp) seedCategory(t *testing.T, name string, kind models.CategoryKind) *models.Category {
	t.Helper()
	cat := &models.Category{Name: name, Kind: kind}
	if err := app.DB.Create(cat).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return cat
}

func (app *testApp) seedSavingsGoal(t *testing.T, name string) *models.SavingsGoal {
	t.Helper()
	goal := &models.SavingsGoal{Name: name}
	if err := app.DB.Create(goal).Error; err != nil {
		t.Fatalf("failed to seed savings goal: %v", err)
	}
	return goal
}

func (app *testApp) seedWallet(t *testing.T, name string) *models.Wallet {
	t.Helper()
	wallet := &models.Wallet{Name: name}
	if err := app.DB.Create(wallet).Error; err != nil {
		t.Fatalf("failed to seed wallet: %v", err)
	}
	return wallet
}

// seedExpense records an expense entry with a single negative posting
// against the given category.
func (app *testApp) seedExpense(t *testing.T, categoryID, walletID string, amount int64, occurredAt time.Time) {
	t.Helper()
	entry := &models.Entry{
		Type:       models.EntryTypeExpense,
		OccurredAt: occurredAt,
		Postings: []models.Posting{
			{WalletID: walletID, Amount: -amount, CategoryID: &categoryID},
		},
	}
	if err := app.DB.Create(entry).Error; err != nil {
		t.Fatalf("failed to seed expense: %v", err)
	}
}

// seedContribution records a savings contribution with a single positive
// posting against the given goal.
func (app *testApp) seedContribution(t *testing.T, goalID, walletID string, amount int64, occurredAt time.Time) {
	t.Helper()
	entry := &models.Entry{
		Type:       models.EntryTypeSavingsContribution,
		OccurredAt: occurredAt,
		Postings: []models.Posting{
			{WalletID: walletID, Amount: amount, SavingsGoalID: &goalID},
		},
	}
	if err := app.DB.Create(entry).Error; err != nil {
		t.Fatalf("failed to seed contribution: %v", err)
	}
}
