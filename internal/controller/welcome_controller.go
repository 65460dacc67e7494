package controller

import (
	"github.com/gofiber/fiber/v2"
)

type WelcomeController struct{}

func NewWelcomeController() *WelcomeController {
	return &WelcomeController{}
}

func (c *WelcomeController) Hello(ctx *fiber.Ctx) error {
	return ctx.SendString("User management service is running")
}
