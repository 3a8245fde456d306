package utils

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"school-directory/models"
)

var contactRegex = regexp.MustCompile(`^[0-9]{10}$`)

func RespondWithError(w http.ResponseWriter, status int, error models.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(error); err != nil {
		Log.WithError(err).Error("Failed to encode error response")
	}
}

func ResponseJSON(w http.ResponseWriter, data interface{}) {
	ResponseJSONWithStatus(w, http.StatusOK, data)
}

func ResponseJSONWithStatus(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		Log.WithError(err).Error("Failed to encode response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// IsPhoneNumber reports whether input is exactly ten decimal digits.
func IsPhoneNumber(input string) bool {
	return contactRegex.MatchString(input)
}

// SplitList splits comma separated input into trimmed items, dropping blanks.
// Empty input gives an empty, non-nil slice.
func SplitList(input string) []string {
	items := []string{}
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// EncodeDataURL renders data as a base64 data URL of the given media type.
func EncodeDataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func NullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
