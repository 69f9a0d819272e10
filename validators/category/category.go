package categoryValidator

import (
	"elearn/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type CategoryPayload struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsActive    *bool  `json:"is_active"`
}

func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategoryPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		} else if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

func UpdateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCategoryID(c); err != nil {
			return err
		}

		reqData := new(CategoryPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		if reqData.Name != "" && len(strings.TrimSpace(reqData.Name)) < 2 {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Name must be at least 2 characters long!"})
		}

		c.Locals("validatedCategoryUpdate", reqData)
		return c.Next()
	}
}

// CategoryID validates the :id route parameter.
func CategoryID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCategoryID(c); err != nil {
			return err
		}
		return c.Next()
	}
}

func parseCategoryID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.ValidationErrorResponse(c, map[string]string{"id": "Category id must be a positive integer!"})
	}
	c.Locals("categoryID", id)
	return nil
}

type CategoryListPayload struct {
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Active *bool  `query:"active"`
}

func CategoryList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategoryListPayload)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid query parameters!")
		}

		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 {
			reqData.Limit = 10
		}
		if reqData.Limit > 100 {
			reqData.Limit = 100
		}

		c.Locals("validatedCategoryList", reqData)
		return c.Next()
	}
}
