package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes attaches middleware per route so that POST /api/contacts
// stays public while the rest of /api/contacts is admin only.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/register", handler.Register)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	users := api.Group("/users")
	users.Get("", handler.Authorize, handler.AdminOnly, handler.ListUsers)
	users.Get("/:id", handler.Authorize, handler.AdminOnly, handler.GetUser)
	users.Delete("/:id", handler.Authorize, handler.AdminOnly, handler.DeleteUser)

	appointments := api.Group("/appointments")
	appointments.Get("", handler.Authorize, handler.ListAppointments)
	appointments.Post("", handler.Authorize, handler.CreateAppointment)
	appointments.Delete("/:id", handler.Authorize, handler.DeleteAppointment)

	symptoms := api.Group("/symptoms")
	symptoms.Get("", handler.Authorize, handler.ListSymptoms)
	symptoms.Post("", handler.Authorize, handler.CreateSymptom)
	symptoms.Delete("/:id", handler.Authorize, handler.DeleteSymptom)

	contacts := api.Group("/contacts")
	contacts.Get("", handler.Authorize, handler.AdminOnly, handler.ListContacts)
	contacts.Post("", handler.CreateContact)
	contacts.Delete("/:id", handler.Authorize, handler.AdminOnly, handler.DeleteContact)
}
