package main

//go:generate swag init -g cmd/tracker/main.go -o docs

// @title           Card Listing Tracker API
// @version         0.1.0
// @description     Marketplace listing ingestion, grade normalization, and market value correlation for tracked collectible cards.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
