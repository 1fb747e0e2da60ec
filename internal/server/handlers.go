package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spacey-learn/spacey/internal/catalog"
	lsn "github.com/spacey-learn/spacey/internal/lesson"
)

func (s *Server) getLesson(c *gin.Context) {
	c.JSON(http.StatusOK, s.opts.Catalog.Script())
}

func (s *Server) getProgress(c *gin.Context) {
	if s.opts.Store == nil {
		c.JSON(http.StatusOK, map[string]lsn.ProgressRecord{})
		return
	}
	progress, err := s.opts.Store.LoadProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, "load progress", err)
		return
	}
	if progress == nil {
		progress = map[string]lsn.ProgressRecord{}
	}
	c.JSON(http.StatusOK, progress)
}

func (s *Server) getBadges(c *gin.Context) {
	if s.opts.Store == nil {
		c.JSON(http.StatusOK, []catalog.Badge{})
		return
	}
	held, err := s.opts.Store.LoadBadges(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, "load badges", err)
		return
	}
	if held == nil {
		held = []catalog.Badge{}
	}
	c.JSON(http.StatusOK, held)
}

func (s *Server) fail(c *gin.Context, op string, err error) {
	s.log.Error(op, "user", c.Param("id"), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": op + " failed"})
}
