package middleware

import (
	"catalog-sync-srv/pkg/jwt"
	"catalog-sync-srv/pkg/log"
)

type Middleware struct {
	l           log.Logger
	jwtManager  *jwt.Manager
	internalKey string
}

func New(l log.Logger, jwtManager *jwt.Manager, internalKey string) Middleware {
	return Middleware{
		l:           l,
		jwtManager:  jwtManager,
		internalKey: internalKey,
	}
}
