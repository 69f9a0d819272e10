package courseValidator

import (
	"elearn/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type ModulePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCourseID(c); err != nil {
			return err
		}

		reqData := new(ModulePayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCourseID(c); err != nil {
			return err
		}
		if err := parseModuleID(c); err != nil {
			return err
		}

		reqData := new(ModulePayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		if reqData.Title != "" && len(strings.TrimSpace(reqData.Title)) < 3 {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title must be at least 3 characters long!"})
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// ModuleID validates the :module_id route parameter together with :id.
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCourseID(c); err != nil {
			return err
		}
		if err := parseModuleID(c); err != nil {
			return err
		}
		return c.Next()
	}
}

func parseModuleID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("module_id"))
	if err != nil || id < 1 {
		return middleware.ValidationErrorResponse(c, map[string]string{"module_id": "Module id must be a positive integer!"})
	}
	c.Locals("moduleID", id)
	return nil
}

// OrderItem is one target position in a reorder batch.
type OrderItem struct {
	ID    uint `json:"id"`
	Order int  `json:"order"`
}

type ReorderPayload struct {
	Items []OrderItem `json:"items"`
}

// validateOrderItems rejects empty batches, non-positive ids/orders and
// duplicate ids or target orders. Sparse (non-contiguous) orders are allowed.
func validateOrderItems(items []OrderItem) map[string]string {
	errors := make(map[string]string)

	if len(items) == 0 {
		errors["items"] = "At least one order entry is required!"
		return errors
	}

	seenIDs := make(map[uint]bool, len(items))
	seenOrders := make(map[int]bool, len(items))

	for _, item := range items {
		if item.ID < 1 {
			errors["items"] = "Every entry needs a positive id!"
			return errors
		}
		if item.Order < 1 {
			errors["items"] = "Every entry needs a positive order!"
			return errors
		}
		if seenIDs[item.ID] {
			errors["items"] = "Duplicate id in order entries!"
			return errors
		}
		if seenOrders[item.Order] {
			errors["items"] = "Duplicate target order in order entries!"
			return errors
		}
		seenIDs[item.ID] = true
		seenOrders[item.Order] = true
	}

	return errors
}

func ReorderModules() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseCourseID(c); err != nil {
			return err
		}

		reqData := new(ReorderPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		if errors := validateOrderItems(reqData.Items); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}
