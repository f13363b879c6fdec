package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/config"
	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/internal/handlers"
	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/internal/ledger"
	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/internal/middleware"
)

// SetupRoutes wires the handlers and registers every route. Public routes
// come first; everything under the protected group requires a valid session
// token.
func SetupRoutes(r *gin.Engine, settings *config.Settings) {
	store := ledger.NewStore(config.DB)
	till := ledger.NewTill(store)
	exportCfg := ledger.ExportConfig{
		SystemName:  settings.ExportSystemName,
		PointOfSale: settings.ExportPointOfSale,
	}

	pagos := handlers.NewPagoHandler(store)
	resumen := handlers.NewResumenHandler(store)
	export := handlers.NewExportHandler(store, exportCfg)
	caja := handlers.NewCajaHandler(till)

	r.POST("/login", handlers.LoginHandler)

	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		authRequired.GET("/logout", handlers.LogoutHandler)
		registerAPIRoutes(authRequired, pagos, resumen, export, caja)
	}
}

func registerAPIRoutes(rg *gin.RouterGroup, pagos *handlers.PagoHandler, resumen *handlers.ResumenHandler, export *handlers.ExportHandler, caja *handlers.CajaHandler) {
	api := rg.Group("/api")
	{
		// --- ALUMNOS (payer source) ---
		alumnos := api.Group("/alumnos")
		alumnos.Use(middleware.PermissionMiddleware("alumnos_view"))
		{
			alumnos.GET("", handlers.ListAlumnosHandler)
			alumnos.POST("", middleware.PermissionMiddleware("alumnos_create"), handlers.CreateAlumnoHandler)
			alumnos.GET("/:id", handlers.GetAlumnoHandler)
			alumnos.PUT("/:id", middleware.PermissionMiddleware("alumnos_edit"), handlers.UpdateAlumnoHandler)
			alumnos.DELETE("/:id", middleware.PermissionMiddleware("alumnos_delete"), handlers.DeactivateAlumnoHandler)
		}

		// --- PAGOS (ledger) ---
		pagosGroup := api.Group("/pagos")
		pagosGroup.Use(middleware.PermissionMiddleware("pagos_view"))
		{
			pagosGroup.GET("", pagos.List)
			pagosGroup.POST("", middleware.PermissionMiddleware("pagos_create"), pagos.Create)
			pagosGroup.PUT("/:id/correccion", middleware.PermissionMiddleware("pagos_correct"), pagos.Correct)
			pagosGroup.GET("/:id/recibo", pagos.Recibo)
		}

		// --- RECONCILIATION ---
		api.GET("/resumen", middleware.PermissionMiddleware("reportes_view"), resumen.Resumen)
		api.GET("/deudores", middleware.PermissionMiddleware("reportes_view"), resumen.Deudores)
		api.GET("/caja/hoy", middleware.PermissionMiddleware("caja_view"), caja.Hoy)

		// --- EXPORT ---
		api.GET("/exportaciones/facturacion", middleware.PermissionMiddleware("exportaciones_run"), export.Facturacion)

		// --- ACTIVIDADES ---
		actividades := api.Group("/actividades")
		actividades.Use(middleware.PermissionMiddleware("actividades_view"))
		{
			actividades.GET("", handlers.ListActividadesHandler)
			actividades.POST("", middleware.PermissionMiddleware("actividades_create"), handlers.CreateActividadHandler)
			actividades.PUT("/:id", middleware.PermissionMiddleware("actividades_edit"), handlers.UpdateActividadHandler)
		}
	}
}
