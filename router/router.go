package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fieldops/inspector-app/controllers"
	"github.com/fieldops/inspector-app/middlewares"
	"github.com/fieldops/inspector-app/models"
	"github.com/fieldops/inspector-app/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	geoSvc := services.NewGeoService(db)

	userCtrl := controllers.NewUserController(db)
	inspectorCtrl := controllers.NewInspectorController(db, geoSvc)
	equipmentCtrl := controllers.NewEquipmentController(db)
	drugTestCtrl := controllers.NewDrugTestController(db)
	customerCtrl := controllers.NewCustomerController(db)
	contactCtrl := controllers.NewContactController(db)
	contractCtrl := controllers.NewContractController(db)
	quickLinkCtrl := controllers.NewQuickLinkController(db)
	adminCtrl := controllers.NewAdminController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/api")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
		public.POST("/refresh", userCtrl.Refresh)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", middlewares.RequireRoles(models.RoleAdmin), userCtrl.GetAllUsers)

	// INSPECTORS
	auth.GET("/inspectors", inspectorCtrl.GetAllInspectors)
	auth.GET("/inspectors/search", inspectorCtrl.SearchByRadius)
	auth.POST("/inspectors", middlewares.RequireRoles(models.RoleDispatcher), inspectorCtrl.CreateInspector)
	auth.GET("/inspectors/:inspector_id", inspectorCtrl.GetInspectorByID)
	auth.PATCH("/inspectors/:inspector_id", middlewares.RequireRoles(models.RoleDispatcher), inspectorCtrl.UpdateInspector)
	auth.DELETE("/inspectors/:inspector_id", middlewares.RequireRoles(models.RoleAdmin), inspectorCtrl.DeleteInspector)
	auth.POST("/inspectors/:inspector_id/mobilize", middlewares.RequireRoles(models.RoleDispatcher), inspectorCtrl.Mobilize)
	auth.POST("/inspectors/:inspector_id/demobilize", middlewares.RequireRoles(models.RoleDispatcher), inspectorCtrl.Demobilize)

	// EQUIPMENT
	auth.GET("/equipment", equipmentCtrl.GetAllEquipment)
	auth.POST("/equipment", middlewares.RequireRoles(models.RoleDispatcher), equipmentCtrl.CreateEquipment)
	auth.GET("/equipment/:equipment_id", equipmentCtrl.GetEquipmentByID)
	auth.PATCH("/equipment/:equipment_id", middlewares.RequireRoles(models.RoleDispatcher), equipmentCtrl.UpdateEquipment)
	auth.DELETE("/equipment/:equipment_id", middlewares.RequireRoles(models.RoleAdmin), equipmentCtrl.DeleteEquipment)
	auth.POST("/equipment/:equipment_id/assign", middlewares.RequireRoles(models.RoleDispatcher), equipmentCtrl.AssignToInspector)
	auth.POST("/equipment/:equipment_id/return", middlewares.RequireRoles(models.RoleDispatcher), equipmentCtrl.RecordReturn)
	auth.GET("/inspectors/:inspector_id/equipment", equipmentCtrl.GetInspectorEquipment)

	// DRUG TESTS
	auth.GET("/inspectors/:inspector_id/drug-tests", drugTestCtrl.GetInspectorDrugTests)
	auth.POST("/inspectors/:inspector_id/drug-tests", middlewares.RequireRoles(models.RoleDispatcher), drugTestCtrl.CreateDrugTest)
	auth.GET("/drug-tests/:test_id", drugTestCtrl.GetDrugTestByID)
	auth.PATCH("/drug-tests/:test_id", middlewares.RequireRoles(models.RoleDispatcher), drugTestCtrl.UpdateDrugTest)
	auth.DELETE("/drug-tests/:test_id", middlewares.RequireRoles(models.RoleAdmin), drugTestCtrl.DeleteDrugTest)

	// CUSTOMERS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.POST("/customers", middlewares.RequireRoles(models.RoleDispatcher), customerCtrl.CreateCustomer)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	auth.PATCH("/customers/:customer_id", middlewares.RequireRoles(models.RoleDispatcher), customerCtrl.UpdateCustomer)
	auth.DELETE("/customers/:customer_id", middlewares.RequireRoles(models.RoleAdmin), customerCtrl.DeleteCustomer)

	// CONTACTS
	auth.GET("/customers/:customer_id/contacts", contactCtrl.GetCustomerContacts)
	auth.POST("/customers/:customer_id/contacts", middlewares.RequireRoles(models.RoleDispatcher), contactCtrl.CreateContact)
	auth.GET("/contacts/:contact_id", contactCtrl.GetContactByID)
	auth.PATCH("/contacts/:contact_id", middlewares.RequireRoles(models.RoleDispatcher), contactCtrl.UpdateContact)
	auth.DELETE("/contacts/:contact_id", middlewares.RequireRoles(models.RoleDispatcher), contactCtrl.DeleteContact)

	// CONTRACTS
	auth.GET("/customers/:customer_id/contracts", contractCtrl.GetCustomerContracts)
	auth.POST("/customers/:customer_id/contracts", middlewares.RequireRoles(models.RoleDispatcher), contractCtrl.CreateContract)
	auth.GET("/contracts/:contract_id", contractCtrl.GetContractByID)
	auth.PATCH("/contracts/:contract_id", middlewares.RequireRoles(models.RoleDispatcher), contractCtrl.UpdateContract)
	auth.DELETE("/contracts/:contract_id", middlewares.RequireRoles(models.RoleAdmin), contractCtrl.DeleteContract)

	// QUICK LINKS
	auth.GET("/quick-links", quickLinkCtrl.GetAllQuickLinks)
	auth.POST("/quick-links", middlewares.RequireRoles(models.RoleAdmin), quickLinkCtrl.CreateQuickLink)
	auth.PATCH("/quick-links/:link_id", middlewares.RequireRoles(models.RoleAdmin), quickLinkCtrl.UpdateQuickLink)
	auth.DELETE("/quick-links/:link_id", middlewares.RequireRoles(models.RoleAdmin), quickLinkCtrl.DeleteQuickLink)

	// DASHBOARD
	auth.GET("/dashboard/stats", middlewares.RequireRoles(models.RoleAdmin), adminCtrl.GetDashboardStats)

	return r
}
