package authController_test

import (
	"bytes"
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	authRoutes "elearn/routers/authRoutes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.LoadConfig()
	config.AppConfig.SaltRound = bcrypt.MinCost

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app, db
}

func createAccount(t *testing.T, db *gorm.DB, email string, roleName models.RoleName) (*models.User, string) {
	t.Helper()

	var role models.Role
	if err := db.Where("name = ?", string(roleName)).First(&role).Error; err != nil {
		role = models.Role{Name: string(roleName)}
		require.NoError(t, db.Create(&role).Error)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:     "Test " + string(roleName),
		Email:    email,
		Password: string(hashed),
		RoleID:   role.ID,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateAccessToken(user.ID, user.Name, string(roleName), user.Email)
	require.NoError(t, err)

	return &user, token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// registerAccount drives the real registration endpoint and returns the token
// pair from the response.
func registerAccount(t *testing.T, app *fiber.App, email string) (accessToken, refreshToken string) {
	t.Helper()

	resp := doJSON(t, app, "POST", "/auth/register", "", map[string]interface{}{
		"name":     "New User",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]interface{})
	return data["accessToken"].(string), data["refreshToken"].(string)
}
