// FILE: internal/controller/chat_controller.go
package controller

import (
	"ai-copychat-be/internal/dto"
	"ai-copychat-be/internal/pkg/serverutils"
	"ai-copychat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetSessions(ctx *fiber.Ctx) error
	GetSessionHistory(ctx *fiber.Ctx) error
	ExportSession(ctx *fiber.Ctx) error
}

type chatController struct {
	dispatcher   service.IDispatcherService
	chatService  service.IChatService
	usageService service.IUsageService
}

func NewChatController(
	dispatcher service.IDispatcherService,
	chatService service.IChatService,
	usageService service.IUsageService,
) IChatController {
	return &chatController{
		dispatcher:   dispatcher,
		chatService:  chatService,
		usageService: usageService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/message", c.SendMessage)
	h.Get("/sessions", c.GetSessions)
	h.Get("/sessions/:id", c.GetSessionHistory)
	h.Get("/sessions/:id/export", c.ExportSession)
}

func externalId(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals("external_id").(string)
	return id
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	reply := c.dispatcher.HandleMessage(ctx.Context(), dto.InboundMessage{
		ExternalId: externalId(ctx),
		Text:       req.Text,
	})
	return ctx.JSON(serverutils.SuccessResponse("Message handled", reply))
}

func (c *chatController) GetSessions(ctx *fiber.Ctx) error {
	user, err := c.usageService.UpsertUser(ctx.Context(), externalId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	res, err := c.chatService.SessionsOverview(ctx.Context(), user.Id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Sessions", res))
}

func (c *chatController) GetSessionHistory(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid session id"))
	}

	user, err := c.usageService.UpsertUser(ctx.Context(), externalId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	res, err := c.chatService.SessionHistory(ctx.Context(), user.Id, sessionId)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "session not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Session history", res))
}

func (c *chatController) ExportSession(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid session id"))
	}

	user, err := c.usageService.UpsertUser(ctx.Context(), externalId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	document, fileName, err := c.chatService.ExportSessionById(ctx.Context(), user.Id, sessionId)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "session not found"))
	}
	if len(document) == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "session is empty"))
	}

	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	return ctx.Send(document)
}
