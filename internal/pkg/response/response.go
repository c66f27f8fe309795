package response

import (
	"encoding/json"
	"net/http"

	"github.com/futig/question-generator/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Can't change response at this point
			return
		}
	}
}

// Error writes an error response. Details of server errors are not exposed.
func Error(w http.ResponseWriter, status int, message string, err error) {
	body := entity.ErrorResponse{Error: message}
	if err != nil && status < http.StatusInternalServerError {
		body.Message = err.Error()
	}
	JSON(w, status, body)
}
