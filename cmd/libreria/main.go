package main

import (
	"context"
	"fmt"

	"github.com/psalazarh/libreria-backend/internal/adapter/auth"
	"github.com/psalazarh/libreria-backend/internal/adapter/config"
	"github.com/psalazarh/libreria-backend/internal/adapter/handler/http"
	"github.com/psalazarh/libreria-backend/internal/adapter/logger"
	"github.com/psalazarh/libreria-backend/internal/adapter/mailer"
	"github.com/psalazarh/libreria-backend/internal/adapter/storage"
	"github.com/psalazarh/libreria-backend/internal/adapter/storage/repository"
	"github.com/psalazarh/libreria-backend/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repo creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	mail, err := mailer.NewSMTPMailer(conf.SMTP, log.Named("Mailer"))
	if err != nil {
		log.Error("mailer creating error", zap.Error(err))
		return
	}

	svc, err := service.NewService(repo, tokenService, mail, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	userHandler, err := http.NewUserHandler(svc, log.Named("User handler"))
	if err != nil {
		log.Error("user handler creating error", zap.Error(err))
		return
	}
	productHandler, err := http.NewProductHandler(svc, log.Named("Product handler"))
	if err != nil {
		log.Error("product handler creating error", zap.Error(err))
		return
	}
	saleHandler, err := http.NewSaleHandler(svc, log.Named("Sale handler"))
	if err != nil {
		log.Error("sale handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService, userHandler, productHandler, saleHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
