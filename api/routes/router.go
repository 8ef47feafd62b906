package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dcastano/warehouse-backend/api/controllers"
	"github.com/dcastano/warehouse-backend/api/middleware"
	"github.com/dcastano/warehouse-backend/internal/inventory"
	"github.com/dcastano/warehouse-backend/internal/movements"
	"github.com/dcastano/warehouse-backend/internal/picking"
	"github.com/dcastano/warehouse-backend/internal/problems"
	"github.com/dcastano/warehouse-backend/internal/tasks"
	"github.com/dcastano/warehouse-backend/internal/waves"
	"github.com/dcastano/warehouse-backend/pkg/config"
	"github.com/dcastano/warehouse-backend/pkg/db"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	"github.com/dcastano/warehouse-backend/pkg/logger"
	pkgredis "github.com/dcastano/warehouse-backend/pkg/redis"
)

// Services groups everything the router wires into handlers.
type Services struct {
	Inventory inventory.Service
	Tasks     tasks.Service
	Picking   picking.Service
	Waves     waves.Service
	Problems  problems.Service
	Movements movements.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	metricsHandler http.Handler,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	// a nil *Client must stay a nil interface or the idempotency
	// middleware would call through it
	var idempotencyStore pkgredis.IdempotencyStore
	var redisPinger pkgredis.Pinger
	if redisClient != nil {
		idempotencyStore = redisClient
		redisPinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	supervisor := string(enums.MemberRoleSupervisor)
	admin := string(enums.MemberRoleAdmin)
	picker := string(enums.MemberRolePicker)
	receiver := string(enums.MemberRoleReceiver)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.WarehouseContext(logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(svcs.Inventory, logg))
			r.With(middleware.RequireAnyRole(logg, receiver, supervisor, admin)).
				Post("/receive", controllers.InventoryReceive(svcs.Inventory, logg))
			r.Post("/move", controllers.InventoryMove(svcs.Inventory, logg))
			r.With(middleware.RequireAnyRole(logg, supervisor, admin)).
				Post("/adjust", controllers.InventoryAdjust(svcs.Inventory, logg))
		})

		r.Route("/putaway", func(r chi.Router) {
			r.Get("/", controllers.PutawayQueue(svcs.Tasks, logg))
			r.Post("/", controllers.PutawayCreate(svcs.Tasks, logg))
			r.Post("/pull", controllers.PutawayPull(svcs.Tasks, logg))
			r.Post("/{taskId}/pull", controllers.PutawayPullTask(svcs.Tasks, logg))
			r.Post("/{taskId}/release", controllers.PutawayRelease(svcs.Tasks, logg))
			r.Post("/{taskId}/complete", controllers.PutawayComplete(svcs.Tasks, logg))
		})

		r.Route("/picking", func(r chi.Router) {
			r.Get("/queue", controllers.PickQueue(svcs.Picking, logg))
			r.With(middleware.RequireAnyRole(logg, picker, supervisor, admin)).
				Group(func(r chi.Router) {
					r.Post("/pull", controllers.PickPull(svcs.Picking, logg))
					r.Post("/lines/{lineId}/pull", controllers.PickPullLine(svcs.Picking, logg))
					r.Post("/lines/{lineId}/release", controllers.PickRelease(svcs.Picking, logg))
					r.Post("/lines/{lineId}/complete", controllers.PickComplete(svcs.Picking, logg))
					r.Post("/lines/{lineId}/short", controllers.PickShort(svcs.Picking, logg))
				})
		})

		r.Route("/waves", func(r chi.Router) {
			r.Get("/", controllers.WaveList(svcs.Waves, logg))
			r.Get("/{waveId}", controllers.WaveDetail(svcs.Waves, logg))
			r.Post("/check", controllers.WaveCheckCommitment(svcs.Waves, logg))
			r.With(middleware.RequireAnyRole(logg, supervisor, admin)).
				Group(func(r chi.Router) {
					r.Post("/", controllers.WaveCreate(svcs.Waves, logg))
					r.Post("/{waveId}/release", controllers.WaveRelease(svcs.Waves, logg))
				})
		})

		r.Route("/problems", func(r chi.Router) {
			r.Get("/", controllers.ProblemList(svcs.Problems, logg))
			r.Get("/{ticketId}", controllers.ProblemDetail(svcs.Problems, logg))
			r.Post("/", controllers.ProblemCreate(svcs.Problems, logg))
			r.With(middleware.RequireAnyRole(logg, supervisor, admin)).
				Patch("/{ticketId}/status", controllers.ProblemUpdateStatus(svcs.Problems, logg))
		})

		r.Route("/movements", func(r chi.Router) {
			r.Get("/", controllers.MovementList(svcs.Movements, logg))
			r.Get("/summary", controllers.MovementSummary(svcs.Movements, logg))
		})
	})

	return r
}
