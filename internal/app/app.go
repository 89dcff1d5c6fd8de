package app

import (
	"context"
	"log"
	"net/http"

	"github.com/you/accountsvc/internal/config"
	httpx "github.com/you/accountsvc/internal/http"
	"github.com/you/accountsvc/internal/http/handlers"
	"github.com/you/accountsvc/internal/http/middleware"
	"github.com/you/accountsvc/internal/infrastructure/auth"
	"github.com/you/accountsvc/internal/infrastructure/database"
	"github.com/you/accountsvc/internal/services"
)

func Run(cfg *config.Config) error {
	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := database.AutoMigrate(container.DB); err != nil {
		return err
	}
	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(container.DB, cfg.CasbinModelPath)
	if err != nil {
		return err
	}

	policySvc := services.NewPolicyService(cas.E)

	authH := handlers.NewAuthHandlers(container.AuthSvc)
	polH := handlers.NewPolicyHandlers(policySvc)

	jwtMW := middleware.NewAuthMW(container.TokenSvc, container.SessionRepo)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, polH, jwtMW, casbinMW)

	if len(policySvc.GetPolicies()) == 0 {
		_ = policySvc.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
		_ = policySvc.AddPolicy("role_user", "/auth/me", "GET")
		_ = policySvc.AddPolicy("role_user", "/auth/logout", "POST")
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
