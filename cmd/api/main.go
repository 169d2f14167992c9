package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nimbuscrm/presence-backend-go/internal/config"
	appHTTP "github.com/nimbuscrm/presence-backend-go/internal/handler/http"
	"github.com/nimbuscrm/presence-backend-go/internal/pkg/cron"
	"github.com/nimbuscrm/presence-backend-go/internal/pkg/database"
	"github.com/nimbuscrm/presence-backend-go/internal/pkg/jwt"
	"github.com/nimbuscrm/presence-backend-go/internal/repository/postgresql"
	attendanceService "github.com/nimbuscrm/presence-backend-go/internal/service/attendance"
	summaryService "github.com/nimbuscrm/presence-backend-go/internal/service/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		fmt.Println("Error applying schema:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	presenceSvc := attendanceService.NewPresenceService(db, attendanceRepo)
	recordSvc := attendanceService.NewRecordService(db, attendanceRepo, employeeRepo)
	summarySvc := summaryService.NewSummaryService(attendanceRepo, employeeRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(presenceSvc, recordSvc)
	summaryHandler := appHTTP.NewSummaryHandler(summarySvc)

	router := appHTTP.NewRouter(
		jwtService,
		cfg.App.Env,
		attendanceHandler,
		summaryHandler,
	)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewAttendanceJobs(attendanceRepo, employeeRepo, db).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
