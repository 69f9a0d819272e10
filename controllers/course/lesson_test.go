package courseController_test

import (
	courseModels "elearn/models/course"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func liveLessons(t *testing.T, db *gorm.DB, courseID, moduleID uint) []courseModels.Lesson {
	t.Helper()
	var lessons []courseModels.Lesson
	require.NoError(t, db.Where("course_id = ? AND module_id = ? AND is_deleted = ?", courseID, moduleID, false).
		Order("order_index asc").Find(&lessons).Error)
	return lessons
}

func TestCreateLessonOrdersPerScope(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), token, map[string]interface{}{"title": "Intro"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	module := liveModules(t, db, course.ID)[0]

	for _, title := range []string{"First", "Second"} {
		resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/lesson", course.ID), token, map[string]interface{}{
			"module_id": module.ID,
			"title":     title,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// A course-scoped lesson (no module) orders in its own scope
	resp = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/lesson", course.ID), token, map[string]interface{}{
		"title": "Standalone",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	inModule := liveLessons(t, db, course.ID, module.ID)
	require.Len(t, inModule, 2)
	assert.Equal(t, 1, inModule[0].Order)
	assert.Equal(t, 2, inModule[1].Order)

	courseScoped := liveLessons(t, db, course.ID, 0)
	require.Len(t, courseScoped, 1)
	assert.Equal(t, 1, courseScoped[0].Order)
	assert.Equal(t, "video", courseScoped[0].ContentType)
}

func TestCreateLessonModuleMustBelongToCourse(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")
	other := createCourse(t, db, owner, "Other Course")

	resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", other.ID), token, map[string]interface{}{"title": "Foreign"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	foreignModule := liveModules(t, db, other.ID)[0]

	resp = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/lesson", course.ID), token, map[string]interface{}{
		"module_id": foreignModule.ID,
		"title":     "Smuggled",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReorderLessonsWithinModule(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), token, map[string]interface{}{"title": "Intro"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	module := liveModules(t, db, course.ID)[0]

	for _, title := range []string{"A", "B", "C"} {
		resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/lesson", course.ID), token, map[string]interface{}{
			"module_id": module.ID,
			"title":     title + " lesson",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	before := liveLessons(t, db, course.ID, module.ID)
	require.Len(t, before, 3)

	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/course/%d/lessons/reorder", course.ID), token, map[string]interface{}{
		"module_id": module.ID,
		"items": []map[string]interface{}{
			{"id": before[0].ID, "order": 2},
			{"id": before[1].ID, "order": 3},
			{"id": before[2].ID, "order": 1},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	after := liveLessons(t, db, course.ID, module.ID)
	require.Len(t, after, 3)
	assert.Equal(t, before[2].ID, after[0].ID)
	assert.Equal(t, before[0].ID, after[1].ID)
	assert.Equal(t, before[1].ID, after[2].ID)
}

func TestReorderLessonsRejectsLessonOutsideScope(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), token, map[string]interface{}{"title": "Intro"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	module := liveModules(t, db, course.ID)[0]

	resp = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/lesson", course.ID), token, map[string]interface{}{
		"module_id": module.ID,
		"title":     "In module",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/lesson", course.ID), token, map[string]interface{}{
		"title": "Course scoped",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	courseScoped := liveLessons(t, db, course.ID, 0)

	// A course-scoped lesson is outside the module's reorder scope
	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/course/%d/lessons/reorder", course.ID), token, map[string]interface{}{
		"module_id": module.ID,
		"items": []map[string]interface{}{
			{"id": courseScoped[0].ID, "order": 1},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestDeleteLessonLeavesSiblingsAlone(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	for _, title := range []string{"A", "B", "C"} {
		resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/lesson", course.ID), token, map[string]interface{}{
			"title": title + " lesson",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	lessons := liveLessons(t, db, course.ID, 0)
	require.Len(t, lessons, 3)

	resp := doJSON(t, app, "DELETE", fmt.Sprintf("/course/%d/lesson/%d", course.ID, lessons[1].ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	remaining := liveLessons(t, db, course.ID, 0)
	require.Len(t, remaining, 2)
	assert.Equal(t, 1, remaining[0].Order)
	assert.Equal(t, 3, remaining[1].Order, "siblings keep their orders, the gap stays")

	// The next append continues past the highest order ever used
	resp = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/lesson", course.ID), token, map[string]interface{}{
		"title": "D lesson",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 4, liveLessons(t, db, course.ID, 0)[2].Order)
}
