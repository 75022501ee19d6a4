package controller

import (
	"intellichat-be/internal/pkg/serverutils"
	"intellichat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	authService  service.IAuthService
	providerName string
}

func NewAuthController(authService service.IAuthService, providerName string) IAuthController {
	return &authController{
		authService:  authService,
		providerName: providerName,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Get("me", serverutils.JwtMiddleware, c.Me)
	h.Get(":provider/login", c.Login)
	h.Get(":provider/callback", c.Callback)
}

// Me echoes the identity carried by the bearer token.
func (c *authController) Me(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"userId": ctx.Locals("user_id"),
	})
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	if ctx.Params("provider") != c.providerName {
		return fiber.NewError(fiber.StatusBadRequest, "Unsupported provider")
	}

	res, err := c.authService.GetLoginURL()
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *authController) Callback(ctx *fiber.Ctx) error {
	if ctx.Params("provider") != c.providerName {
		return fiber.NewError(fiber.StatusBadRequest, "Unsupported provider")
	}

	code := ctx.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing code")
	}

	res, err := c.authService.HandleCallback(ctx.Context(), code)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
