package server

import (
	"net/http"

	"git.lost.host/meutraa/riftvibe/internal/game"
	"git.lost.host/meutraa/riftvibe/internal/parser"
	"git.lost.host/meutraa/riftvibe/internal/solver"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

type DefaultServer struct {
	Parser *parser.JSONParser
	Solver solver.Solver
}

type response struct {
	Score       int               `json:"score"`
	Activations []game.Activation `json:"activations"`
	Candidates  []game.Activation `json:"candidates,omitempty"`
}

func invalid(err error) bool {
	return errors.Is(err, game.ErrInvalidTiming) || errors.Is(err, game.ErrInvalidEvent)
}

func (s *DefaultServer) Handle(body []byte, candidates bool) (int, interface{}) {
	// Chart paths would be resolved on this machine
	if gjson.GetBytes(body, "chart").Exists() {
		return http.StatusBadRequest, gin.H{"error": "charts are not accepted, send beatTimings instead"}
	}
	session, err := s.Parser.Read("request", "", body)
	if nil != err {
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	}

	result, err := s.Solver.Solve(session)
	if nil != err {
		if invalid(err) {
			return http.StatusBadRequest, gin.H{"error": err.Error()}
		}
		return http.StatusInternalServerError, gin.H{"error": err.Error()}
	}

	resp := response{Score: result.Score, Activations: result.Activations}
	if candidates {
		resp.Candidates = result.Candidates
	}
	return http.StatusOK, resp
}

func (s *DefaultServer) solve(c *gin.Context) {
	body, err := c.GetRawData()
	if nil != err {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read body"})
		return
	}
	status, payload := s.Handle(body, c.Query("all") == "true")
	c.JSON(status, payload)
}

func (s *DefaultServer) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS, so a browser page can post sessions directly
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/api/solve", s.solve)
	return r
}

func (s *DefaultServer) Run(address string) error {
	return s.Router().Run(address)
}
