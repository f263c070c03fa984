package controller

import (
	"strings"

	"cv-chatbot-be/internal/pkg/serverutils"
	"cv-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	GetSkills(ctx *fiber.Ctx) error
	GetTimeline(ctx *fiber.Ctx) error
	GetSuggestedPrompts(ctx *fiber.Ctx) error
}

type profileController struct {
	profileService service.IProfileService
}

func NewProfileController(profileService service.IProfileService) IProfileController {
	return &profileController{
		profileService: profileService,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profile/v1")
	h.Get("skills", c.GetSkills)
	h.Get("timeline", c.GetTimeline)
	h.Get("prompts", c.GetSuggestedPrompts)
}

func (c *profileController) GetSkills(ctx *fiber.Ctx) error {
	category := ctx.Query("category")

	res, err := c.profileService.GetSkills(ctx.Context(), category)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get skills", res))
}

func (c *profileController) GetTimeline(ctx *fiber.Ctx) error {
	var tags []string
	if raw := ctx.Query("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	res, err := c.profileService.GetTimeline(ctx.Context(), tags)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get timeline", res))
}

func (c *profileController) GetSuggestedPrompts(ctx *fiber.Ctx) error {
	res, err := c.profileService.GetSuggestedPrompts(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get suggested prompts", res))
}
