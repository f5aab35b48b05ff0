package handler

import (
	"net/http"
	"strconv"

	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/apierror"

	"github.com/gin-gonic/gin"
)

// Every boundary response is exactly one of these two envelopes.
type successEnvelope struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data"`
}

type errorBody struct {
	Code    apierror.Code     `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type failureEnvelope struct {
	OK    bool      `json:"ok"`
	Error errorBody `json:"error"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, successEnvelope{OK: true, Data: data})
}

// respondErr is the single point where internal errors become the closed
// taxonomy. Unclassified errors surface as STORAGE_ERROR with a generic
// message; the original cause stays in the server log only.
func respondErr(c *gin.Context, err error) {
	ae := apierror.From(err)
	c.JSON(statusFor(ae.Code), failureEnvelope{
		OK: false,
		Error: errorBody{
			Code:    ae.Code,
			Message: ae.Message,
			Fields:  ae.Fields,
		},
	})
	// Hand the raw error to the logging middleware.
	_ = c.Error(err)
}

func statusFor(code apierror.Code) int {
	switch code {
	case apierror.CodeValidation:
		return http.StatusUnprocessableEntity
	case apierror.CodeNotFound:
		return http.StatusNotFound
	case apierror.CodeDuplicateKey, apierror.CodeBusinessRule:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseID reads the :id route parameter. A non-integer id is a caller input
// problem, not a lookup miss.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondErr(c, apierror.Validation(map[string]string{"id": "must be an integer"}))
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body; malformed JSON is a validation failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondErr(c, apierror.Validation(map[string]string{"body": "invalid JSON: " + err.Error()}))
		return false
	}
	return true
}
