package main

import (
	"log"

	_ "wedplan/docs"
	"wedplan/internal/config"
	"wedplan/internal/server"
)

// @title           WedPlan API
// @version         1.0
// @description     API for collaborative wedding planning: boards, tasks, vendors, guests, budget and chat.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
