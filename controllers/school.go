package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"school-directory/models"
	"school-directory/utils"
)

type SchoolController struct{}

const selectSchools = `SELECT id, name, address, city, state, contact, image, email_id,
	description, established, studentCount, facilities, achievements FROM schools`

const insertSchool = `INSERT INTO schools
	(name, address, city, state, contact, image, email_id, description, established, studentCount, facilities, achievements)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// GetSchools returns every stored school in store order.
func (sc SchoolController) GetSchools(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.QueryContext(r.Context(), selectSchools)
		if err != nil {
			utils.Log.WithFields(logrus.Fields{"op": "list", "error": err}).Error("SQL Select Error")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch schools", Detail: err.Error()})
			return
		}
		defer rows.Close()

		schools := []models.School{}
		for rows.Next() {
			var school models.School
			var image, description sql.NullString
			if err := rows.Scan(&school.ID, &school.Name, &school.Address, &school.City, &school.State,
				&school.Contact, &image, &school.EmailID, &description, &school.Established,
				&school.StudentCount, &school.Facilities, &school.Achievements); err != nil {
				utils.Log.WithFields(logrus.Fields{"op": "list", "error": err}).Error("SQL Scan Error")
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch schools", Detail: err.Error()})
				return
			}
			school.Image = utils.NullStringToString(image)
			school.Description = utils.NullStringToString(description)
			for column, list := range map[string]*models.StringList{"facilities": &school.Facilities, "achievements": &school.Achievements} {
				if _, err := list.Normalize(); err != nil {
					utils.Log.WithFields(logrus.Fields{"op": "list", "id": school.ID, "column": column, "error": err}).Warn("Unreadable list column")
					*list = models.NewStringList()
				}
			}
			schools = append(schools, school)
		}
		if err := rows.Err(); err != nil {
			utils.Log.WithFields(logrus.Fields{"op": "list", "error": err}).Error("SQL Rows Error")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch schools", Detail: err.Error()})
			return
		}

		utils.Log.WithField("count", len(schools)).Debug("Schools listed")
		utils.ResponseJSON(w, schools)
	}
}

// CreateSchool inserts one school. Only name, address, city, state and
// contact are checked here; the rest default to empty.
func (sc SchoolController) CreateSchool(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.SchoolInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				utils.RespondWithError(w, http.StatusRequestEntityTooLarge, models.Error{Message: "Request body too large"})
				return
			}
			utils.Log.WithFields(logrus.Fields{"op": "create", "error": err}).Warn("JSON Decode Error")
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if !in.HasRequired() {
			utils.Log.WithField("op", "create").Warn("Missing required fields")
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Missing required fields"})
			return
		}

		_, err := db.ExecContext(r.Context(), insertSchool,
			in.Name, in.Address, in.City, in.State, string(in.Contact), in.Image, in.EmailID,
			in.Description, in.Established, in.StudentCount,
			models.NewStringList(in.Facilities...), models.NewStringList(in.Achievements...))
		if err != nil {
			utils.Log.WithFields(logrus.Fields{"op": "create", "error": err}).Error("SQL Insert Error")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to add school", Detail: err.Error()})
			return
		}

		utils.Log.WithFields(logrus.Fields{"op": "create", "name": in.Name, "city": in.City}).Info("School added")
		utils.ResponseJSONWithStatus(w, http.StatusCreated, models.Message{Message: "School added successfully"})
	}
}

// DeleteSchool removes the school with the path id. An id that matches no
// row is still reported as deleted.
func (sc SchoolController) DeleteSchool(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		result, err := db.ExecContext(r.Context(), "DELETE FROM schools WHERE id = ?", id)
		if err != nil {
			utils.Log.WithFields(logrus.Fields{"op": "delete", "id": id, "error": err}).Error("SQL Delete Error")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete school", Detail: err.Error()})
			return
		}

		affected, _ := result.RowsAffected()
		utils.Log.WithFields(logrus.Fields{"op": "delete", "id": id, "affected": affected}).Info("School deleted")
		utils.ResponseJSON(w, models.Message{Message: "School deleted successfully"})
	}
}
