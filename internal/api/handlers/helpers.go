package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gridironhq/recruiting-ops/internal/engine"
	"github.com/gridironhq/recruiting-ops/pkg/utils"
)

// sendEngineError maps engine errors onto the response envelope. Roster
// validation failures are the caller's fault; config errors mean the loaded
// policy is unusable and surface as 500s.
func sendEngineError(c *gin.Context, err error) {
	var validationErr *engine.ValidationError
	if errors.As(err, &validationErr) {
		utils.SendValidationError(c, "Invalid roster data", validationErr.Error())
		return
	}

	var configErr *engine.ConfigError
	if errors.As(err, &configErr) {
		utils.SendError(c, http.StatusInternalServerError,
			utils.NewAppError(utils.ErrCodeConfig, "Calculator policy is invalid", configErr.Error()))
		return
	}

	utils.SendInternalError(c, "Computation failed")
}
