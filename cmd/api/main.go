package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/PathForge-Automations/PrajaConnect/internal/db"
	authhttp "github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/http"
	"github.com/PathForge-Automations/PrajaConnect/internal/platform/config"
	phttp "github.com/PathForge-Automations/PrajaConnect/internal/platform/http"
	"github.com/PathForge-Automations/PrajaConnect/internal/platform/notify"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()

	if err := db.Migrate(context.Background(), cfg.PGDSN); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}
	dbpool := db.MustOpen(cfg.PGDSN)
	defer dbpool.Close()

	sms := notify.NewTextMessenger(cfg.SMSBaseURL, cfg.SMSAuthKey, cfg.SMSSenderID)
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)

	authModule := authhttp.NewModulePG(dbpool, sms, mailer, logger, cfg.JWTSecret, cfg.AccessTTL)
	defer authModule.Gate().Close()

	app := phttp.NewServer(phttp.Options{AppName: "prajaconnect-auth"}, authModule)

	logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
