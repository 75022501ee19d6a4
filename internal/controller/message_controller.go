package controller

import (
	"intellichat-be/internal/dto"
	"intellichat-be/internal/entity"
	"intellichat-be/internal/pkg/serverutils"
	"intellichat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type messageController struct {
	chatService service.IChatService
}

func NewMessageController(chatService service.IChatService) IMessageController {
	return &messageController{
		chatService: chatService,
	}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/messages")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Delete("", c.Clear)
}

func (c *messageController) List(ctx *fiber.Ctx) error {
	sessionId := ctx.Query("sessionId")

	res, err := c.chatService.GetMessages(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *messageController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// Assistant turns are only ever written internally, after a completed
	// model call.
	if entity.MessageRole(req.Role) != entity.RoleUser {
		return fiber.NewError(fiber.StatusBadRequest, "Only user messages can be sent")
	}

	res, err := c.chatService.SendMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *messageController) Clear(ctx *fiber.Ctx) error {
	sessionId := ctx.Query("sessionId")

	if err := c.chatService.ClearMessages(ctx.Context(), sessionId); err != nil {
		return err
	}

	return ctx.JSON(dto.StatusResponse{Message: "All messages cleared"})
}
