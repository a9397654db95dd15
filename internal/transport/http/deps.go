package http

import (
	"github.com/AadiZee/car-system-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/AadiZee/car-system-api/internal/infrastructure/jwt"
	s3infra "github.com/AadiZee/car-system-api/internal/infrastructure/s3"
	"github.com/AadiZee/car-system-api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	CarRepo     *dynamo.CarRepo
	PhotoStore  *s3infra.Store
	Mailer      smtp.Mailer
	JWTProvider *jwtinfra.Provider
}
