package routes

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/puskesmas/kia-backend/internal/common/middlewares"
	kiaControllers "github.com/puskesmas/kia-backend/internal/kia/controllers"
	kiaServices "github.com/puskesmas/kia-backend/internal/kia/services"
	laporanControllers "github.com/puskesmas/kia-backend/internal/laporan/controllers"
	laporanServices "github.com/puskesmas/kia-backend/internal/laporan/services"
	manajemenControllers "github.com/puskesmas/kia-backend/internal/manajemen/controllers"
	manajemenServices "github.com/puskesmas/kia-backend/internal/manajemen/services"
	masterControllers "github.com/puskesmas/kia-backend/internal/master/controllers"
	masterServices "github.com/puskesmas/kia-backend/internal/master/services"
	"github.com/puskesmas/kia-backend/internal/workflow"
	"github.com/puskesmas/kia-backend/ws"
)

// Init merangkai seluruh service, controller, dan route aplikasi.
func Init(e *echo.Echo, db *sql.DB) {
	authController := manajemenControllers.NewAuthController(manajemenServices.NewAuthService(db))
	userController := manajemenControllers.NewUserController(manajemenServices.NewUserService(db))

	desaController := masterControllers.NewDesaController(masterServices.NewDesaService(db))
	tempatPraktikController := masterControllers.NewTempatPraktikController(masterServices.NewTempatPraktikService(db))
	pasienController := masterControllers.NewPasienController(masterServices.NewPasienService(db))

	kehamilanController := kiaControllers.NewKehamilanController(kiaServices.NewKehamilanService(db))
	persalinanController := kiaControllers.NewPersalinanController(kiaServices.NewPersalinanService(db))
	kbController := kiaControllers.NewKBController(kiaServices.NewKBService(db))
	imunisasiController := kiaControllers.NewImunisasiController(kiaServices.NewImunisasiService(db))
	healthDataController := kiaControllers.NewHealthDataController(kiaServices.NewHealthDataService(db))

	laporanController := laporanControllers.NewLaporanController(laporanServices.NewRekapService(db))

	api := e.Group("/api")

	// Route login tidak dilindungi oleh middleware JWT.
	api.POST("/login", authController.Login)

	// WebSocket untuk dashboard verifikasi. Browser tidak bisa mengirim
	// header Authorization saat upgrade, jadi route ini tidak lewat JWT.
	e.GET("/ws", ws.ServeWS(ws.HubInstance))

	auth := api.Group("", middlewares.JWTMiddleware())

	// Manajemen user (admin).
	admin := auth.Group("", middlewares.RequireAdmin())
	admin.GET("/users", userController.ListUsers)
	admin.POST("/users", userController.AddUser)
	admin.PUT("/users/:id", userController.UpdateUser)
	admin.PUT("/users/:id/activate", userController.ActivateUser)
	admin.PUT("/users/:id/deactivate", userController.DeactivateUser)
	admin.PUT("/users/:id/reset-password", userController.ResetPassword)

	auth.PUT("/users/change-password", userController.ChangePassword)

	// Master data wilayah dan tempat praktik (admin untuk mutasi).
	auth.GET("/village", desaController.ListDesa)
	admin.POST("/village", desaController.CreateDesa)
	admin.PUT("/village/:id", desaController.UpdateDesa)
	admin.DELETE("/village/:id", desaController.DeleteDesa)

	auth.GET("/practice-place", tempatPraktikController.ListTempatPraktik)
	auth.GET("/practice-place/:id", tempatPraktikController.DetailTempatPraktik)
	admin.POST("/practice-place", tempatPraktikController.CreateTempatPraktik)
	admin.PUT("/practice-place/:id", tempatPraktikController.UpdateTempatPraktik)
	admin.DELETE("/practice-place/:id", tempatPraktikController.DeleteTempatPraktik)

	// Pasien dikelola bidan praktik.
	praktik := middlewares.RequirePosition(workflow.PositionBidanPraktik)
	auth.GET("/pasien", pasienController.ListPasien)
	auth.GET("/pasien/:id", pasienController.DetailPasien)
	auth.POST("/pasien", pasienController.CreatePasien, praktik)
	auth.PUT("/pasien/:id", pasienController.UpdatePasien, praktik)
	auth.DELETE("/pasien/:id", pasienController.DeletePasien, praktik)

	// Modul klinis: policy per aksi ada di service, route cukup JWT.
	auth.GET("/pemeriksaan-kehamilan", kehamilanController.ListKehamilan)
	auth.GET("/pemeriksaan-kehamilan/:id", kehamilanController.DetailKehamilan)
	auth.POST("/pemeriksaan-kehamilan", kehamilanController.CreateKehamilan)
	auth.PUT("/pemeriksaan-kehamilan/:id", kehamilanController.UpdateKehamilan)
	auth.DELETE("/pemeriksaan-kehamilan/:id", kehamilanController.DeleteKehamilan)
	auth.PUT("/pemeriksaan-kehamilan/:id/verify", kehamilanController.VerifyKehamilan)

	auth.GET("/persalinan", persalinanController.ListPersalinan)
	auth.GET("/persalinan/:id", persalinanController.DetailPersalinan)
	auth.POST("/persalinan", persalinanController.CreatePersalinan)
	auth.PUT("/persalinan/:id", persalinanController.UpdatePersalinan)
	auth.DELETE("/persalinan/:id", persalinanController.DeletePersalinan)
	auth.PUT("/persalinan/:id/verify", persalinanController.VerifyPersalinan)

	auth.GET("/keluarga-berencana", kbController.ListKB)
	auth.GET("/keluarga-berencana/:id", kbController.DetailKB)
	auth.POST("/keluarga-berencana", kbController.CreateKB)
	auth.PUT("/keluarga-berencana/:id", kbController.UpdateKB)
	auth.DELETE("/keluarga-berencana/:id", kbController.DeleteKB)
	auth.PUT("/keluarga-berencana/:id/verify", kbController.VerifyKB)

	auth.GET("/imunisasi", imunisasiController.ListImunisasi)
	auth.GET("/imunisasi/:id", imunisasiController.DetailImunisasi)
	auth.POST("/imunisasi", imunisasiController.CreateImunisasi)
	auth.PUT("/imunisasi/:id", imunisasiController.UpdateImunisasi)
	auth.DELETE("/imunisasi/:id", imunisasiController.DeleteImunisasi)
	auth.PUT("/imunisasi/:id/verify", imunisasiController.VerifyImunisasi)

	// Modul data kesehatan lama, termasuk endpoint approve/reject lamanya.
	auth.GET("/health-data", healthDataController.ListHealthData)
	auth.GET("/health-data-rejected", healthDataController.ListRejectedHealthData)
	auth.GET("/health-data/:id", healthDataController.DetailHealthData)
	auth.POST("/health-data", healthDataController.CreateHealthData)
	auth.PUT("/health-data/:id", healthDataController.UpdateHealthData)
	auth.DELETE("/health-data/:id", healthDataController.DeleteHealthData)
	auth.PUT("/health-data/:id/verify", healthDataController.VerifyHealthData)
	auth.PUT("/health-data/:id/approve", healthDataController.ApproveHealthData)
	auth.PUT("/health-data/:id/reject", healthDataController.RejectHealthData)

	// Rekapitulasi dan export untuk bidan koordinator.
	auth.GET("/rekapitulasi", laporanController.Rekapitulasi)
	auth.GET("/reports/:module/export", laporanController.ExportExcel)
}
