package controllers

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"school-directory/utils"
)

// NewRouter wires the school endpoints onto a fresh router.
func NewRouter(db *sql.DB, maxBodyBytes int64) *mux.Router {
	schoolController := SchoolController{}
	router := mux.NewRouter()
	router.Use(utils.RequestLogger, utils.LimitBody(maxBodyBytes))

	router.HandleFunc("/schools", schoolController.GetSchools(db)).Methods(http.MethodGet)
	router.HandleFunc("/schools", schoolController.CreateSchool(db)).Methods(http.MethodPost)
	router.HandleFunc("/schools/{id}", schoolController.DeleteSchool(db)).Methods(http.MethodDelete)

	return router
}
