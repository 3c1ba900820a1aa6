package http

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	appcategory "github.com/zmitacart/catalog-api/internal/application/category"
	"github.com/zmitacart/catalog-api/internal/infrastructure/observability"
	"github.com/zmitacart/catalog-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TreeManager *appcategory.TreeManager
	JWTSecret   string
	Log         zerolog.Logger
	Metrics     *observability.Collector // nil desactiva /metrics
}

// Router registra middlewares y rutas de la API.
// Debe llamarse antes de registrar otras rutas para que el log y el recover las cubran.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))
	// dentro del logger: el pánico llega como error y se registra con su request_id
	app.Use(recover.New(recover.Config{
		EnableStackTrace:  true,
		StackTraceHandler: logPanic(deps.Log),
	}))
	if deps.Metrics != nil {
		app.Use(Metrics(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")
	categories := api.Group("/categories")
	h := NewCategoryHandler(deps.TreeManager)

	// Lecturas (público). /superiors/tree antes que /:id/tree.
	categories.Get("/superiors", h.ListSuperiors)
	categories.Get("/superiors/tree", h.SuperiorsTree)
	categories.Get("/:id/tree", h.Subtree)

	// Mutaciones (administrator)
	admin := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdministrator)}
	categories.Post("/", append(admin, h.Create)...)
	categories.Put("/:id", append(admin, h.Update)...)
	categories.Delete("/:id", append(admin, h.Delete)...)
}

func logPanic(log zerolog.Logger) func(c *fiber.Ctx, e interface{}) {
	return func(c *fiber.Ctx, e interface{}) {
		log.Error().
			Str("request_id", c.GetRespHeader(HeaderRequestID)).
			Interface("panic", e).
			Bytes("stack", debug.Stack()).
			Msg("pánico recuperado")
	}
}
