package authValidator

import (
	"elearn/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// validationErrors flattens validator.v10 errors into the field->message map
// the response envelope expects.
func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				errors[fe.Field()] = fe.Field() + " is required!"
			case "email":
				errors[fe.Field()] = "Invalid email address!"
			case "min":
				errors[fe.Field()] = fe.Field() + " must be at least " + fe.Param() + " characters long!"
			case "oneof":
				errors[fe.Field()] = fe.Field() + " must be one of: " + fe.Param()
			default:
				errors[fe.Field()] = fe.Field() + " is invalid!"
			}
		}
	} else {
		errors["payload"] = "Invalid request body!"
	}
	return errors
}

type RegisterPayload struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	RoleType string `json:"role_type" validate:"omitempty,oneof=user instructor"`
}

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedRegister", reqData)
		return c.Next()
	}
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

type RefreshPayload struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func Refresh() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RefreshPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedRefresh", reqData)
		return c.Next()
	}
}

type ForgotPasswordPayload struct {
	Email string `json:"email" validate:"required,email"`
}

func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ForgotPasswordPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedForgotPassword", reqData)
		return c.Next()
	}
}

type ResetPasswordPayload struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ResetPasswordPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedResetPassword", reqData)
		return c.Next()
	}
}

type AssignRolePayload struct {
	UserID uint   `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=admin instructor user"`
}

func AssignRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AssignRolePayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedAssignRole", reqData)
		return c.Next()
	}
}

type UpdateRolePayload struct {
	Description string `json:"description" validate:"required,min=5"`
}

func UpdateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateRolePayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedRoleUpdate", reqData)
		return c.Next()
	}
}

type PermissionPayload struct {
	Permission string `json:"permission" validate:"required,min=2"`
}

func Permission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PermissionPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.ErrValidation, "Invalid request body!")
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedPermission", reqData)
		return c.Next()
	}
}

type UserListPayload struct {
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UserListPayload)

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

		c.Locals("validatedUserList", reqData)
		return c.Next()
	}
}
