package handler

import (
	"giftlist/config"
	"giftlist/di"
	"giftlist/shared/logger"
	"net/http"
	"sync"
)

var (
	app     http.Handler
	appOnce sync.Once
)

// Handler is the serverless entry point. The routed handler is built on the first invocation and
// reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	appOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		app = di.InitializeService().HTTP.Handler()
	})

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
