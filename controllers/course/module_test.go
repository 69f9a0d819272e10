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

func liveModules(t *testing.T, db *gorm.DB, courseID uint) []courseModels.Module {
	t.Helper()
	var modules []courseModels.Module
	require.NoError(t, db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error)
	return modules
}

func TestCreateModuleAssignsSequentialOrders(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	for i, title := range []string{"Intro", "Syntax", "Tooling"} {
		resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), token, map[string]interface{}{
			"title": title,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, "module %d", i+1)
	}

	modules := liveModules(t, db, course.ID)
	require.Len(t, modules, 3)
	for i, mod := range modules {
		assert.Equal(t, i+1, mod.Order)
	}
}

func TestCreateModuleRejectsDuplicateTitle(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), token, map[string]interface{}{"title": "Intro"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Same title in a different case is still a duplicate
	resp = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), token, map[string]interface{}{"title": "INTRO"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "CONFLICT", body["error"])
}

func TestCreateModuleForeignCourseForbidden(t *testing.T) {
	app, db := setupTestApp(t)
	owner, _ := createAccount(t, db, "owner@example.com", "instructor")
	_, intruderToken := createAccount(t, db, "intruder@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), intruderToken, map[string]interface{}{"title": "Intro"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	assert.Empty(t, liveModules(t, db, course.ID))
}

func TestReorderModulesAppliesPermutation(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	for _, title := range []string{"A", "B", "C"} {
		resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), token, map[string]interface{}{"title": title + " module"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	before := liveModules(t, db, course.ID)
	require.Len(t, before, 3)

	// Rotate: 1->3, 2->1, 3->2
	resp := doJSON(t, app, "PATCH", fmt.Sprintf("/course/%d/modules/reorder", course.ID), token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"id": before[0].ID, "order": 3},
			{"id": before[1].ID, "order": 1},
			{"id": before[2].ID, "order": 2},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	after := liveModules(t, db, course.ID)
	require.Len(t, after, 3)
	assert.Equal(t, before[1].ID, after[0].ID)
	assert.Equal(t, before[2].ID, after[1].ID)
	assert.Equal(t, before[0].ID, after[2].ID)
}

func TestReorderModulesUnknownModuleMovesNothing(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")
	other := createCourse(t, db, owner, "Other Course")

	for _, title := range []string{"A", "B"} {
		resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), token, map[string]interface{}{"title": title + " module"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", other.ID), token, map[string]interface{}{"title": "Foreign"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	before := liveModules(t, db, course.ID)
	foreign := liveModules(t, db, other.ID)

	resp = doJSON(t, app, "PATCH", fmt.Sprintf("/course/%d/modules/reorder", course.ID), token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"id": before[0].ID, "order": 2},
			{"id": foreign[0].ID, "order": 1},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	after := liveModules(t, db, course.ID)
	require.Len(t, after, 2)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[0].Order, after[0].Order)
	assert.Equal(t, before[1].Order, after[1].Order)
}

func TestReorderModulesRejectsDuplicateTargetOrders(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	for _, title := range []string{"A", "B"} {
		resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), token, map[string]interface{}{"title": title + " module"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	modules := liveModules(t, db, course.ID)

	resp := doJSON(t, app, "PATCH", fmt.Sprintf("/course/%d/modules/reorder", course.ID), token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"id": modules[0].ID, "order": 1},
			{"id": modules[1].ID, "order": 1},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestReorderModulesRejectsOutOfBatchClash(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	for _, title := range []string{"A", "B", "C"} {
		resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), token, map[string]interface{}{"title": title + " module"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	modules := liveModules(t, db, course.ID)

	// Module 1 wants order 2, which module 2 (outside the batch) still holds
	resp := doJSON(t, app, "PATCH", fmt.Sprintf("/course/%d/modules/reorder", course.ID), token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"id": modules[0].ID, "order": 2},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	after := liveModules(t, db, course.ID)
	assert.Equal(t, 1, after[0].Order)
}

func TestDeleteModuleCascadesItsLessons(t *testing.T) {
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

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/course/%d/module/%d", course.ID, module.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Empty(t, liveModules(t, db, course.ID))

	var liveLessons int64
	db.Model(&courseModels.Lesson{}).Where("module_id = ? AND is_deleted = ?", module.ID, false).Count(&liveLessons)
	assert.Zero(t, liveLessons)
}

func TestInteriorOrderGapIsNeverRefilled(t *testing.T) {
	app, db := setupTestApp(t)
	owner, token := createAccount(t, db, "owner@example.com", "instructor")
	course := createCourse(t, db, owner, "Go Basics")

	for _, title := range []string{"A", "B", "C"} {
		resp := doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), token, map[string]interface{}{"title": title + " module"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	modules := liveModules(t, db, course.ID)

	// Delete the middle module, leaving orders 1 and 3
	resp := doJSON(t, app, "DELETE", fmt.Sprintf("/course/%d/module/%d", course.ID, modules[1].ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", fmt.Sprintf("/course/%d/module", course.ID), token, map[string]interface{}{"title": "D module"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	after := liveModules(t, db, course.ID)
	require.Len(t, after, 3)
	assert.Equal(t, 4, after[2].Order, "the freed slot 2 must not be handed out again")
}
