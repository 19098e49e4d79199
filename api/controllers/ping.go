package controllers

import (
	"net/http"

	"github.com/GESTIONMAX/my-vision-connect-sub001/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"message": "pong"})
	}
}
