package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironhq/recruiting-ops/internal/engine"
	"github.com/gridironhq/recruiting-ops/pkg/utils"
)

func performEngineError(t *testing.T, trigger func(cfg *engine.CalculatorConfig) error) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	err := trigger(engine.DefaultConfig())
	require.Error(t, err)
	sendEngineError(c, err)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return recorder, resp
}

func TestSendEngineErrorValidation(t *testing.T) {
	recorder, resp := performEngineError(t, func(cfg *engine.CalculatorConfig) error {
		bad := engine.RosterPlayer{ID: "p1"} // missing name and everything else
		return engine.ValidateRoster([]engine.RosterPlayer{bad})
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, utils.ErrCodeValidation, resp.Error.Code)
}

func TestSendEngineErrorConfig(t *testing.T) {
	recorder, resp := performEngineError(t, func(cfg *engine.CalculatorConfig) error {
		delete(cfg.RevShareBands, engine.BandMed)
		p := engine.RosterPlayer{
			ID: "p1", Name: "P", PositionGroup: engine.GroupOL,
			GradYear: 2028, NILBand: engine.BandMed, Role: engine.RoleStarter,
		}
		_, err := engine.EstimateCost(p, cfg)
		return err
	})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, utils.ErrCodeConfig, resp.Error.Code)
}
