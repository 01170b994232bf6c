package main

import "collabhub_backend/internal/app"

// @title CollabHub API
// @version 1.0
// @description Маркетплейс сотрудничества брендов и инфлюенсеров
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
