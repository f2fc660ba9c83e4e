// Package server exposes the pricing engine and board over HTTP.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/contactkeval/option-greeks/internal/board"
	"github.com/contactkeval/option-greeks/internal/logger"
	"github.com/contactkeval/option-greeks/internal/pricing"
)

// BuildFunc assembles one board snapshot from raw inputs. Defined here on
// the consumer side so handler tests can swap in a stub.
type BuildFunc func(board.Inputs) (*board.Snapshot, error)

// ErrorResponse is the JSON error body returned on failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MetricResponse is the JSON body of a single-metric request.
type MetricResponse struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// BoardHandler serves board and single-metric requests.
type BoardHandler struct {
	build BuildFunc
}

// NewBoardHandler returns a handler backed by the given board builder.
func NewBoardHandler(build BuildFunc) *BoardHandler {
	return &BoardHandler{build: build}
}

// parseInputs reads the five parameters and the option type from query
// strings, falling back to the dashboard's defaults.
func parseInputs(c *gin.Context) (board.Inputs, error) {
	var in board.Inputs
	var err error

	if in.Rate, err = queryFloat(c, "rate", 0.03); err != nil {
		return in, err
	}
	if in.Spot, err = queryFloat(c, "spot", 30); err != nil {
		return in, err
	}
	if in.Strike, err = queryFloat(c, "strike", 50); err != nil {
		return in, err
	}
	if in.Vol, err = queryFloat(c, "vol", 0.30); err != nil {
		return in, err
	}
	days := c.DefaultQuery("days", "250")
	if in.Days, err = strconv.Atoi(days); err != nil {
		return in, fmt.Errorf("days must be a whole number, got %q", days)
	}
	typ, err := pricing.ParseOptionType(c.DefaultQuery("type", "call"))
	if err != nil {
		return in, err
	}
	in.Type = typ
	return in, nil
}

func queryFloat(c *gin.Context, name string, def float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, raw)
	}
	return v, nil
}

// GetBoard returns the full board snapshot as JSON.
//
// GET /api/v1/board?rate=0.03&spot=30&strike=50&days=250&vol=0.3&type=call
func (h *BoardHandler) GetBoard(c *gin.Context) {
	in, err := parseInputs(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	snap, err := h.build(in)
	if err != nil {
		var ie *board.InputError
		if errors.As(err, &ie) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Errorf("server: building board: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetMetric returns one engine output as JSON, mirroring the engine's
// per-function surface.
//
// GET /api/v1/greeks/:metric with metric one of
// price|delta|gamma|theta|vega|rho, same query parameters as the board.
func (h *BoardHandler) GetMetric(c *gin.Context) {
	in, err := parseInputs(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err := in.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	p := in.Params()

	name := c.Param("metric")
	var v float64
	switch name {
	case "price":
		v, err = pricing.Price(p, in.Type)
	case "delta":
		v, err = pricing.Delta(p, in.Type)
	case "gamma":
		v, err = pricing.Gamma(p)
	case "theta":
		v, err = pricing.Theta(p, in.Type)
	case "vega":
		v, err = pricing.Vega(p)
	case "rho":
		v, err = pricing.Rho(p, in.Type)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unknown metric %q", name)})
		return
	}
	if err != nil {
		var de *pricing.DomainError
		if errors.As(err, &de) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Errorf("server: computing %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MetricResponse{Metric: name, Value: v})
}

// NewRouter wires the handler into a gin engine.
func NewRouter(h *BoardHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	v1 := r.Group("/api/v1")
	v1.GET("/board", h.GetBoard)
	v1.GET("/greeks/:metric", h.GetMetric)
	return r
}

// Serve runs the HTTP API on addr until the listener fails.
func Serve(addr string) error {
	h := NewBoardHandler(board.Build)
	r := NewRouter(h)
	logger.Infof("server: listening on %s", addr)
	return r.Run(addr)
}
