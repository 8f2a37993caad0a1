package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/color-game/palettetool/models"
)

func handleCors(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
		if r.Method == "OPTIONS" {
			return
		} else {
			h.ServeHTTP(w, r)
		}
	}
}

// getClaimsFromBearer parses the Authorization header
func (app *Application) getClaimsFromBearer(r *http.Request) (*models.JWTClaims, error) {
	header := r.Header.Get("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return nil, errors.New("no bearer token found")
	}

	claims, err := models.ValidateJWTToken(tokenString, app.Config.JwtSecret)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// authenticate requires a valid token carrying the write scope
func (app *Application) authenticate(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := app.getClaimsFromBearer(r)
		if err != nil {
			app.invalidAuthorization(w, r, err)
			return
		}

		if claims.Scope != models.ScopeWrite {
			app.invalidAuthorization(w, r, ErrInvalidPrivelege)
			return
		}

		h.ServeHTTP(w, r)
	}
}
