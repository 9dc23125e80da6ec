package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"bunganutz/internal/adapters/email"
	"bunganutz/internal/adapters/http/middleware"
	bedassignmentStore "bunganutz/internal/adapters/storage/bedassignment"
	mealplanStore "bunganutz/internal/adapters/storage/mealplan"
	memberStore "bunganutz/internal/adapters/storage/member"
	stayStore "bunganutz/internal/adapters/storage/stay"
	"bunganutz/internal/adapters/weather"
)

// Stores holds all storage dependencies.
type Stores struct {
	MemberStore     memberStore.Store
	StayStore       stayStore.Store
	BoardStore      bedassignmentStore.Store
	AssignmentStore mealplanStore.AssignmentStore
	DayGuestStore   mealplanStore.AttendanceStore
}

// loadCSRFKey reads the CSRF secret from BUNGANUT_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("BUNGANUT_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("BUNGANUT_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("BUNGANUT_ENV") == "production" {
		log.Fatal("BUNGANUT_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set BUNGANUT_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Global weather provider and cottage coordinates (set by SetWeather)
var weatherProvider weather.Provider
var cottageLat float64
var cottageLon float64

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// SetWeather sets the forecast provider and the coordinates it is asked about.
func SetWeather(provider weather.Provider, lat, lon float64) {
	weatherProvider = provider
	cottageLat = lat
	cottageLon = lon
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}
