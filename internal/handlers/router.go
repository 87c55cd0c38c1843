package handlers

import (
	"time"

	"hospital-gin/internal/access"
	"hospital-gin/internal/apperr"
	"hospital-gin/internal/validation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// resourceRoutes are the CRUD handlers of one collection.
type resourceRoutes struct {
	list, show, create, update gin.HandlerFunc
}

// mount registers a collection under the page that shows it. Writes also
// need the minimum role configured for writeAction.
func (h *Handler) mount(api *gin.RouterGroup, path, page, writeAction string, r resourceRoutes) {
	g := api.Group(path, h.RequirePage(page))
	g.GET("", r.list)
	g.GET("/:id", r.show)
	g.POST("", h.RequireAction(writeAction), r.create)
	g.PUT("/:id", h.RequireAction(writeAction), r.update)
}

// SetupRouter builds the gin engine with every route.
func SetupRouter(h *Handler, corsOrigins []string) *gin.Engine {
	validation.Register()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		RequestLogger(h.logger),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			h.logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
			h.fail(c, apperr.Persistence(nil))
		}),
		cors.New(corsConfig(corsOrigins)),
		h.LoadSession(),
	)

	r.NoRoute(func(c *gin.Context) { h.fail(c, apperr.NotFound("Not found")) })
	r.NoMethod(func(c *gin.Context) { h.fail(c, apperr.MethodNotAllowed()) })

	r.GET("/health", Health)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.POST("/register", h.Register)

	authed := r.Group("", h.RequireAuth())
	authed.GET("/session", h.Session)
	authed.GET("/pages", h.Pages)
	authed.GET("/pages/:page", h.Page)
	authed.GET("/dashboard", h.RequirePage(access.PageDashboard), h.Dashboard)
	authed.GET("/chatbot", h.RequirePage(access.PageChatbot), h.ChatGreeting)
	authed.POST("/chatbot", h.RequirePage(access.PageChatbot), h.Chat)

	api := authed.Group("/api")
	api.GET("/departments", h.GetDepartments)
	api.GET("/medications", h.GetMedications)
	api.GET("/billing/export", h.RequirePage(access.PageBilling), h.RequireAction("billing.export"), h.ExportBills)

	h.mount(api, "/patients", access.PagePatients, "patients.write", resourceRoutes{
		h.GetAllPatients, h.GetPatientByID, h.InsertPatient, h.UpdatePatientByID,
	})
	h.mount(api, "/doctors", access.PageDoctors, "doctors.write", resourceRoutes{
		h.GetAllDoctors, h.GetDoctorByID, h.InsertDoctor, h.UpdateDoctorByID,
	})
	h.mount(api, "/staff", access.PageStaff, "staff.write", resourceRoutes{
		h.GetAllStaff, h.GetStaffByID, h.InsertStaff, h.UpdateStaffByID,
	})
	h.mount(api, "/appointments", access.PageAppointments, "appointments.write", resourceRoutes{
		h.GetAllAppointments, h.GetAppointmentByID, h.InsertAppointment, h.UpdateAppointmentByID,
	})
	h.mount(api, "/medical-records", access.PageMedicalRecords, "medical-records.write", resourceRoutes{
		h.GetAllMedicalRecords, h.GetMedicalRecordByID, h.InsertMedicalRecord, h.UpdateMedicalRecordByID,
	})
	h.mount(api, "/prescriptions", access.PagePrescriptions, "prescriptions.write", resourceRoutes{
		h.GetAllPrescriptions, h.GetPrescriptionByID, h.InsertPrescription, h.UpdatePrescriptionByID,
	})
	h.mount(api, "/billing", access.PageBilling, "billing.write", resourceRoutes{
		h.GetAllBills, h.GetBillByID, h.InsertBill, h.UpdateBillByID,
	})

	return r
}

// corsConfig allows credentials only for an explicit origin list.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
