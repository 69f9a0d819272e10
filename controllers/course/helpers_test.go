package courseController_test

import (
	"bytes"
	"elearn/config"
	"elearn/database"
	"elearn/middleware"
	"elearn/models"
	courseModels "elearn/models/course"
	courseRoutes "elearn/routers/courseRoutes"
	"elearn/utils"
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

// setupTestApp wires the course routes against a throwaway sqlite database.
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
	courseRoutes.SetupCourseRoutes(app)
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

func createCourse(t *testing.T, db *gorm.DB, owner *models.User, title string) *courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Title:        title,
		Slug:         utils.Slugify(title),
		Description:  "About " + title,
		InstructorID: owner.ID,
		Level:        "beginner",
		Language:     "English",
		Status:       courseModels.StatusDraft,
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
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
