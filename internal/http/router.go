package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pestlead/leadquote/internal/domain"
	"github.com/pestlead/leadquote/internal/service"
	"github.com/pestlead/leadquote/internal/store"
	"github.com/pestlead/leadquote/internal/upload"
	"github.com/pestlead/leadquote/pkg/httpx"
	"github.com/pestlead/leadquote/pkg/jwtx"
	"github.com/pestlead/leadquote/pkg/slogx"

	_ "github.com/pestlead/leadquote/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService *service.AuthService
	UserService *service.UserService
	Uploader    *upload.Cloudinary

	SessionTTL    time.Duration
	SecureCookies bool
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Pest Lead & Quotation Auth API
//	@version		0.1.0
//	@description	Authentication and user administration backend for the pest-control
//	@description	lead and quotation system. Sessions are carried in an HttpOnly cookie
//	@description	holding an HS256-signed JWT.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:   r.AuthService,
		UserService:   r.UserService,
		SessionTTL:    r.SessionTTL,
		SecureCookies: r.SecureCookies,
	}
	session := SessionMiddleware(r.verifier, r.store)

	// POST /auth/login - strict rate limit by IP + submitted email to slow
	// credential stuffing without letting one attacker lock out an office IP
	r.Mux.Handle("POST /api/v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// POST /auth/setup-password - strict rate limit by IP (unauthenticated
	// token-guessing surface)
	r.Mux.Handle("POST /api/v1/auth/setup-password",
		httpx.Chain(http.HandlerFunc(h.HandleSetupPassword),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/logout - lenient; clearing a cookie is harmless
	r.Mux.Handle("POST /api/v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// GET /auth/me - authenticated, lenient rate limit by user
	r.Mux.Handle("GET /api/v1/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			session,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UserHandler{
		UserService: r.UserService,
		Uploader:    r.Uploader,
	}
	session := SessionMiddleware(r.verifier, r.store)
	adminOnly := RequireRole(domain.RoleAdmin)

	// POST /users - admin write, moderate rate limit by user
	r.Mux.Handle("POST /api/v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			session, adminOnly,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /users - admin read, lenient rate limit by user
	r.Mux.Handle("GET /api/v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			session, adminOnly,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// GET /users/profile/{id} - any authenticated caller
	r.Mux.Handle("GET /api/v1/users/profile/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			session,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// PUT /users/profile/{id} - self-or-admin is enforced in the service
	r.Mux.Handle("PUT /api/v1/users/profile/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			session,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// DELETE /users/profile/{id} - admin write, moderate rate limit by user
	r.Mux.Handle("DELETE /api/v1/users/profile/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDeactivate),
			session, adminOnly,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /users/upload-profile-picture - authenticated, moderate by user
	r.Mux.Handle("POST /api/v1/users/upload-profile-picture",
		httpx.Chain(http.HandlerFunc(h.HandleUpload),
			session,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
