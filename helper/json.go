package helper

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/TEJASTATODE/saas-notes/errs"
)

var Validator *validator.Validate

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())
}

func WriteJson(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

func ReadJson(w http.ResponseWriter, r *http.Request, payload any) error {
	maxBytes := 1_048_578
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(payload)
}

// WriteJsonError writes the {"message": ...} envelope clients depend on.
func WriteJsonError(w http.ResponseWriter, status int, message string) error {
	type envelop struct {
		Message string `json:"message"`
	}
	return WriteJson(w, status, envelop{Message: message})
}

// WriteError maps a taxonomy error onto the wire contract. Internal faults
// get logged with detail and an opaque message; quota rejections are a
// normal business outcome and only log at debug.
func WriteError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) error {
	switch errs.KindOf(err) {
	case errs.KindInternal:
		logger.Errorf("internal error: %v", err)
	case errs.KindQuotaExceeded:
		logger.Debugf("quota rejection: %v", err)
	}
	return WriteJsonError(w, errs.HTTPStatus(err), errs.Message(err))
}
