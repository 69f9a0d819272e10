package courseController_test

import (
	courseModels "elearn/models/course"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourseDefaults(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")

	resp := doJSON(t, app, "POST", "/course/create", token, map[string]interface{}{
		"title":       "Advanced Go Patterns",
		"description": "Generics and beyond",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var course courseModels.Course
	require.NoError(t, db.Where("slug = ?", "advanced-go-patterns").First(&course).Error)
	assert.Equal(t, courseModels.StatusDraft, course.Status)
	assert.Equal(t, "beginner", course.Level)
	assert.Equal(t, "English", course.Language)
	assert.Equal(t, owner.ID, course.InstructorID)
	assert.False(t, course.IsPublished)
	assert.Nil(t, course.PublishedAt)
}

func TestCreateCourseDuplicateSlug(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := createAccount(t, db, "owner@example.com", "instructor")

	resp := doJSON(t, app, "POST", "/course/create", token, map[string]interface{}{
		"title":       "Go Basics",
		"description": "The fundamentals",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/course/create", token, map[string]interface{}{
		"title":       "Different Title",
		"slug":        "go-basics",
		"description": "Same slug though",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDeletedCourseStillReservesItsSlug(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	resp := doJSON(t, app, "DELETE", fmt.Sprintf("/course/%d", course.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Soft-deleted rows keep their slug, so re-creating under the same slug
	// is still a conflict. The unique index spans deleted rows too.
	resp = doJSON(t, app, "POST", "/course/create", token, map[string]interface{}{
		"title":       "Go Basics",
		"description": "Second run",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestInstructorCannotMutateForeignCourse(t *testing.T) {
	app, db := setupTestApp(t)
	owner, _ := createAccount(t, db, "owner@example.com", "instructor")
	_, intruderToken := createAccount(t, db, "intruder@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	resp := doJSON(t, app, "PUT", fmt.Sprintf("/course/%d", course.ID), intruderToken, map[string]interface{}{
		"title": "Hijacked",
	})
	// The course exists, so the denial is a 403, not a 404
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "FORBIDDEN", body["error"])

	var unchanged courseModels.Course
	require.NoError(t, db.First(&unchanged, course.ID).Error)
	assert.Equal(t, "Go Basics", unchanged.Title)
}

func TestAdminMutatesAnyCourse(t *testing.T) {
	app, db := setupTestApp(t)
	owner, _ := createAccount(t, db, "owner@example.com", "instructor")
	_, adminToken := createAccount(t, db, "admin@example.com", "admin")
	course := createCourse(t, db, owner, "Go Basics")

	resp := doJSON(t, app, "PUT", fmt.Sprintf("/course/%d", course.ID), adminToken, map[string]interface{}{
		"title": "Go Basics, Second Edition",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMineRouteIsInstructorOnly(t *testing.T) {
	app, db := setupTestApp(t)
	_, adminToken := createAccount(t, db, "admin@example.com", "admin")
	_, instructorToken := createAccount(t, db, "teach@example.com", "instructor")

	// Roles are not hierarchical: admin is not an instructor
	resp := doJSON(t, app, "GET", "/course/mine", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/course/mine", instructorToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublishLifecyclePreservesPublishedAt(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/submit", course.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/publish", course.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var published courseModels.Course
	require.NoError(t, db.First(&published, course.ID).Error)
	assert.Equal(t, courseModels.StatusPublished, published.Status)
	assert.True(t, published.IsPublished)
	require.NotNil(t, published.PublishedAt)
	firstPublished := *published.PublishedAt

	resp = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/unpublish", course.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var unpublished courseModels.Course
	require.NoError(t, db.First(&unpublished, course.ID).Error)
	assert.Equal(t, courseModels.StatusDraft, unpublished.Status)
	assert.False(t, unpublished.IsPublished)
	require.NotNil(t, unpublished.PublishedAt, "unpublishing keeps the original publication time")

	// Republishing keeps the first publication timestamp
	resp = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/publish", course.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var republished courseModels.Course
	require.NoError(t, db.First(&republished, course.ID).Error)
	require.NotNil(t, republished.PublishedAt)
	assert.Equal(t, firstPublished.Unix(), republished.PublishedAt.Unix())
}

func TestInvalidStatusTransitionRejected(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	// draft -> archived is not a legal move
	resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/archive", course.ID), token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var unchanged courseModels.Course
	require.NoError(t, db.First(&unchanged, course.ID).Error)
	assert.Equal(t, courseModels.StatusDraft, unchanged.Status)
}

func TestRejectCourseIsAdminOnly(t *testing.T) {
	app, db := setupTestApp(t)
	owner, ownerToken := createAccount(t, db, "owner@example.com", "instructor")
	_, adminToken := createAccount(t, db, "admin@example.com", "admin")
	course := createCourse(t, db, owner, "Go Basics")

	resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/submit", course.ID), ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/reject", course.ID), ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/reject", course.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rejected courseModels.Course
	require.NoError(t, db.First(&rejected, course.ID).Error)
	assert.Equal(t, courseModels.StatusRejected, rejected.Status)
}

func TestDeleteCourseCascades(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), token, map[string]interface{}{"title": "Intro"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	module := liveModules(t, db, course.ID)[0]

	for _, title := range []string{"Lesson 1", "Lesson 2"} {
		resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/lesson", course.ID), token, map[string]interface{}{
			"module_id": module.ID,
			"title":     title,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/course/%d", course.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted courseModels.Course
	require.NoError(t, db.First(&deleted, course.ID).Error)
	assert.True(t, deleted.IsDeleted)

	var liveModuleCount, liveLessonCount int64
	db.Model(&courseModels.Module{}).Where("course_id = ? AND is_deleted = ?", course.ID, false).Count(&liveModuleCount)
	db.Model(&courseModels.Lesson{}).Where("course_id = ? AND is_deleted = ?", course.ID, false).Count(&liveLessonCount)
	assert.Zero(t, liveModuleCount, "no orphaned modules")
	assert.Zero(t, liveLessonCount, "no orphaned lessons")

	// The course is gone from lookups
	resp = doJSON(t, app, "GET", fmt.Sprintf("/course/%d", course.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
