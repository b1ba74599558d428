package httpapi

import (
	stdhttp "net/http"
	"time"

	"flowz-server/internal/http/handlers"
	"flowz-server/internal/infra"
	appmw "flowz-server/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type RouterOptions struct {
	Config        *infra.Config
	Logger        infra.Logger
	CountryLookup appmw.CountryLookup
}

func NewRouter(app *handlers.App, opts RouterOptions) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		appmw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		appmw.Logger(opts.Logger),
		appmw.CORS(opts.Config.CORSOrigins),
		appmw.I18N("en", opts.CountryLookup),
	)
	if opts.Config.RateLimitPerMin > 0 {
		r.Use(appmw.RateLimit(opts.Config.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(appmw.AuthJWT(opts.Config.JWTSecret))

		r.Get("/v1/me", app.Me)

		r.Route("/v1/stores", func(r chi.Router) {
			r.Get("/", app.StoresList)
			r.Get("/{store_id}/export", app.StoreExport)
			r.Route("/{store_id}/products", func(r chi.Router) {
				r.Get("/", app.ProductsList)
				r.Get("/{product_id}", app.ProductGet)
				r.Put("/{product_id}/draft", app.ProductDraftUpdate)
				r.Get("/{product_id}/versions", app.ProductVersions)
				r.Post("/{product_id}/versions/{version}/restore", app.ProductRestore)
			})
		})

		r.Route("/v1/batches", func(r chi.Router) {
			r.Post("/generate", app.BatchGenerate)
			r.Get("/{job_id}", app.BatchStatus)
			r.Get("/{job_id}/items", app.BatchItems)
		})
	})

	return r
}
