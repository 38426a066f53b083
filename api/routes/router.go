package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jpcardenasg/esencia-backend/api/controllers"
	cartcontrollers "github.com/jpcardenasg/esencia-backend/api/controllers/cart"
	"github.com/jpcardenasg/esencia-backend/api/middleware"
	"github.com/jpcardenasg/esencia-backend/internal/auth"
	"github.com/jpcardenasg/esencia-backend/internal/cart"
	"github.com/jpcardenasg/esencia-backend/internal/catalog"
	"github.com/jpcardenasg/esencia-backend/internal/custom"
	"github.com/jpcardenasg/esencia-backend/internal/invoices"
	"github.com/jpcardenasg/esencia-backend/internal/users"
	"github.com/jpcardenasg/esencia-backend/pkg/config"
	"github.com/jpcardenasg/esencia-backend/pkg/db"
	"github.com/jpcardenasg/esencia-backend/pkg/enums"
	"github.com/jpcardenasg/esencia-backend/pkg/logger"
	"github.com/jpcardenasg/esencia-backend/pkg/redis"
)

// Services bundles everything the HTTP layer needs.
type Services struct {
	Auth       auth.Service
	Users      users.Service
	Perfumes   catalog.PerfumeService
	Categories catalog.CategoryService
	Notes      catalog.NoteService
	Cart       cart.Service
	Invoices   invoices.Service
	Custom     custom.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/registro", controllers.AuthRegister(svcs.Auth, logg))
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
	})

	var idem redis.IdempotencyStore
	if redisClient != nil {
		idem = redisClient
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/carrito", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(svcs.Cart, logg))
			r.With(middleware.Idempotency(idem, logg)).Post("/checkout", cartcontrollers.CartCheckout(svcs.Cart, logg))
			r.Route("/items", func(r chi.Router) {
				r.Post("/", cartcontrollers.CartAddItem(svcs.Cart, logg))
				r.Put("/{detalleId}", cartcontrollers.CartUpdateItemQuantity(svcs.Cart, logg))
				r.Delete("/{detalleId}", cartcontrollers.CartRemoveItem(svcs.Cart, logg))
			})
		})

		r.Route("/facturas", func(r chi.Router) {
			r.Get("/", controllers.InvoicesList(svcs.Invoices, logg))
			r.With(middleware.Idempotency(idem, logg)).Post("/procesar-compra", controllers.InvoicesProcessPurchase(svcs.Invoices, logg))
			r.Get("/usuario/{usuarioId}", controllers.InvoicesByUser(svcs.Invoices, logg))
			r.Get("/{facturaId}", controllers.InvoicesGet(svcs.Invoices, logg))
			r.With(middleware.RequireRole(enums.UserRoleAdmin, logg)).Delete("/{facturaId}", controllers.InvoicesDelete(svcs.Invoices, logg))
		})

		r.Route("/perfumes", func(r chi.Router) {
			r.Get("/", controllers.PerfumesList(svcs.Perfumes, logg))
			r.Post("/", controllers.PerfumesCreate(svcs.Perfumes, logg))
			r.Get("/buscar", controllers.PerfumesSearch(svcs.Perfumes, logg))
			r.Get("/categoria/{categoriaId}", controllers.PerfumesByCategory(svcs.Perfumes, logg))
			r.Get("/{perfumeId}", controllers.PerfumesGet(svcs.Perfumes, logg))
			r.Put("/{perfumeId}", controllers.PerfumesUpdate(svcs.Perfumes, logg))
			r.Delete("/{perfumeId}", controllers.PerfumesDelete(svcs.Perfumes, logg))
			r.Put("/{perfumeId}/categorias", controllers.PerfumesUpdateCategories(svcs.Perfumes, logg))
			r.Put("/{perfumeId}/notas", controllers.PerfumesUpdateNotes(svcs.Perfumes, logg))
		})

		r.Route("/categorias", func(r chi.Router) {
			r.Get("/", controllers.CategoriesList(svcs.Categories, logg))
			r.Post("/", controllers.CategoriesCreate(svcs.Categories, logg))
			r.Get("/{categoriaId}", controllers.CategoriesGet(svcs.Categories, logg))
			r.Put("/{categoriaId}", controllers.CategoriesUpdate(svcs.Categories, logg))
			r.Delete("/{categoriaId}", controllers.CategoriesDelete(svcs.Categories, logg))
		})

		r.Route("/notas-olfativas", func(r chi.Router) {
			r.Get("/", controllers.NotesList(svcs.Notes, logg))
			r.Post("/", controllers.NotesCreate(svcs.Notes, logg))
			r.Get("/{notaId}", controllers.NotesGet(svcs.Notes, logg))
			r.Put("/{notaId}", controllers.NotesUpdate(svcs.Notes, logg))
			r.Delete("/{notaId}", controllers.NotesDelete(svcs.Notes, logg))
		})

		r.Route("/perfumes-personalizados", func(r chi.Router) {
			r.Get("/", controllers.CustomPerfumesList(svcs.Custom, logg))
			r.Post("/", controllers.CustomPerfumesCreate(svcs.Custom, logg))
			r.Get("/aprobados", controllers.CustomPerfumesApproved(svcs.Custom, logg))
			r.Get("/usuario/{usuarioId}", controllers.CustomPerfumesByUser(svcs.Custom, logg))
			r.Get("/{perfumeId}", controllers.CustomPerfumesGet(svcs.Custom, logg))
			r.Put("/{perfumeId}", controllers.CustomPerfumesUpdate(svcs.Custom, logg))
			r.Delete("/{perfumeId}", controllers.CustomPerfumesDelete(svcs.Custom, logg))
		})

		r.Route("/usuarios", func(r chi.Router) {
			r.Get("/", controllers.UsersList(svcs.Users, logg))
			r.Get("/{usuarioId}", controllers.UsersGet(svcs.Users, logg))
			r.Put("/{usuarioId}", controllers.UsersUpdate(svcs.Users, logg))
			r.Delete("/{usuarioId}", controllers.UsersDelete(svcs.Users, logg))
		})
	})

	return r
}
