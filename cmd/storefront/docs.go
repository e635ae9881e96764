package main

// @title Crumbly Storefront API
// @version 1.0
// @description Cake storefront: catalog, favorites, cart and user sessions, with Prometheus metrics and Jaeger tracing

// @contact.name API Support
// @contact.email support@example.com

// @host localhost:8081
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token; the "token" cookie is accepted as well.

// @tag.name catalog
// @tag.description Cake listings

// @tag.name favorites
// @tag.description Per-user liked cakes

// @tag.name cart
// @tag.description Per-user shopping cart

// @tag.name auth
// @tag.description Registration and sessions

// @tag.name health
// @tag.description Health check endpoints
