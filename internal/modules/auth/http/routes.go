package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/domain"
	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/infra"
	pg "github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/infra/pg"
	"github.com/PathForge-Automations/PrajaConnect/internal/modules/auth/otp"
	plathttp "github.com/PathForge-Automations/PrajaConnect/internal/platform/http"
	"github.com/PathForge-Automations/PrajaConnect/internal/platform/security"
)

// Module wires up dependencies for the auth HTTP module.
type Module struct {
	accounts  domain.AccountRepo
	gate      *otp.Gate
	jwtSecret []byte
	accessTTL time.Duration
}

// NewModule assembles the module on the in-memory repo; dev and test use.
func NewModule(sms otp.SMSSender, email otp.EmailSender, log *zap.Logger) *Module {
	repo := infra.NewMemAccountRepo()
	return &Module{
		accounts:  repo,
		gate:      otp.NewGate(repo, sms, email, log),
		jwtSecret: []byte("super-secret"),
		accessTTL: 7 * 24 * time.Hour,
	}
}

// NewModulePG assembles the module on Postgres-backed repos.
func NewModulePG(db *pgxpool.Pool, sms otp.SMSSender, email otp.EmailSender, log *zap.Logger, jwtSecret string, accessTTL time.Duration) *Module {
	if accessTTL == 0 {
		accessTTL = 7 * 24 * time.Hour
	}
	repo := pg.NewAccountRepo(db)
	return &Module{
		accounts:  repo,
		gate:      otp.NewGate(repo, sms, email, log),
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
	}
}

// Gate exposes the OTP gate so main can drain dispatches on shutdown.
func (m *Module) Gate() *otp.Gate { return m.gate }

func (m *Module) Register(r fiber.Router) {
	jwtMgr := security.NewJWTManager(string(m.jwtSecret), m.accessTTL)

	auth := r.Group("/auth")
	auth.Post("/signup", SignUpHandler(m.accounts, m.gate))
	auth.Post("/verify-otp", VerifyOTPHandler(m.gate))
	auth.Post("/resend-otp", ResendOTPHandler(m.gate))
	auth.Post("/login", LoginHandler(m.accounts, jwtMgr))

	// aliases kept for older clients
	auth.Post("/register", SignUpHandler(m.accounts, m.gate))
	auth.Post("/signin", LoginHandler(m.accounts, jwtMgr))

	protected := auth.Group("", plathttp.JWTAuth(m.jwtSecret))
	protected.Get("/me", MeHandler(m.accounts))
}
