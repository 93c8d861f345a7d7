package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/config"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/handler"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/middleware"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/repository"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/service"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	metodoRepo := repository.NewMetodoPagoRepository(db)
	tasaRepo := repository.NewTasaCambioRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cisternaRepo := repository.NewCisternaRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	promocionRepo := repository.NewPromocionRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo)
	tasaSvc := service.NewTasaService(tasaRepo)
	cisternaSvc := service.NewCisternaService(cisternaRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, metodoRepo, tasaRepo, cisternaRepo, dispatcher)
	promoSvc := service.NewPromocionService(promocionRepo, ventaRepo, cisternaRepo, cfg.PromoLitrosBotella)
	deliverySvc := service.NewDeliveryService(deliveryRepo)
	reporteSvc := service.NewReporteService(ventaRepo, cisternaRepo, tasaRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	ventasH := handler.NewVentasHandler(ventaSvc, cfg.TicketStoragePath)
	cisternasH := handler.NewCisternasHandler(cisternaSvc)
	deliveriesH := handler.NewDeliveriesHandler(deliverySvc)
	promosH := handler.NewPromosHandler(promoSvc)
	tasaH := handler.NewTasaHandler(tasaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, tasaRepo, rdb)
	metodosH := handler.NewMetodosPagoHandler(metodoRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: trabajador, encargada, dueno — declared per-endpoint
		todos := middleware.RequireRole("trabajador", "encargada", "dueno")
		gestion := middleware.RequireRole("encargada", "dueno")
		soloDueno := middleware.RequireRole("dueno")

		v1.GET("/precio/:codigo", todos, consultaH.GetPrecioPorCodigo)

		v1.POST("/ventas", todos, ventasH.RegistrarVenta)
		v1.GET("/ventas", todos, ventasH.ListarVentas)
		v1.GET("/ventas/:id", todos, ventasH.ObtenerVenta)
		v1.GET("/ventas/:id/ticket", todos, ventasH.ObtenerTicket)

		v1.GET("/productos", todos, productosH.ListarProductos)
		prods := v1.Group("/productos", gestion)
		{
			prods.POST("", productosH.CrearProducto)
			prods.PUT("/:id", productosH.ActualizarProducto)
			prods.DELETE("/:id", productosH.EliminarProducto)
		}

		v1.GET("/cisternas/disponibilidad", todos, cisternasH.Disponibilidad)
		v1.GET("/cisternas", gestion, cisternasH.ListarEntradas)
		v1.POST("/cisternas", gestion, cisternasH.RegistrarIngreso)

		v1.GET("/metodos-pago", todos, metodosH.ListarMetodosPago)

		v1.POST("/deliveries", todos, deliveriesH.RegistrarDelivery)
		v1.GET("/deliveries", todos, deliveriesH.ListarDeliveries)
		v1.DELETE("/deliveries/:id", gestion, deliveriesH.EliminarDelivery)

		v1.POST("/promos", todos, promosH.RegistrarPromocion)
		v1.GET("/promos", todos, promosH.ListarPromociones)
		v1.POST("/promos/:id/retirar", todos, promosH.RetirarBotella)

		v1.GET("/tasa/vigente", todos, tasaH.TasaVigente)
		v1.GET("/tasa", gestion, tasaH.ListarTasas)
		v1.POST("/tasa", gestion, tasaH.RegistrarTasa)

		v1.GET("/reportes/resumen", gestion, reportesH.ResumenDiario)
		v1.GET("/reportes/control", soloDueno, reportesH.Control)
		v1.GET("/reportes/export", soloDueno, reportesH.ExportarCSV)

		usuarios := v1.Group("/usuarios", soloDueno)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
