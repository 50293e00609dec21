package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type uploadRequest struct {
	Name     string           `json:"name"`
	Type     models.FileType  `json:"type"`
	ParentID models.ParentRef `json:"parentId"`
	IsPublic bool             `json:"isPublic"`
	Data     string           `json:"data"`
}

// bindJSON decodes the request body; an empty body leaves v at its zero
// value so field validation reports what is missing.
func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *HTTPServer) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.status.Status(c.Request.Context()))
}

func (s *HTTPServer) getStats(c *gin.Context) {
	stats, err := s.status.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *HTTPServer) postUser(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		abortWithError(c, s.logger, common.ErrInvalidData)
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "id", user.ID)
	c.JSON(http.StatusCreated, userResponse{ID: user.ID, Email: user.Email})
}

func (s *HTTPServer) connect(c *gin.Context) {
	email, password, ok := c.Request.BasicAuth()
	if !ok {
		abortWithError(c, s.logger, common.ErrorUnauthorized)
		return
	}

	token, err := s.auth.Connect(c.Request.Context(), email, password)
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *HTTPServer) disconnect(c *gin.Context) {
	if err := s.auth.Disconnect(c.Request.Context(), c.GetString(tokenKey)); err != nil {
		abortWithError(c, s.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) getMe(c *gin.Context) {
	user, err := s.users.Me(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, userResponse{ID: user.ID, Email: user.Email})
}

func (s *HTTPServer) postFile(c *gin.Context) {
	var req uploadRequest
	if err := bindJSON(c, &req); err != nil {
		abortWithError(c, s.logger, common.ErrInvalidData)
		return
	}

	file, err := s.files.Create(c.Request.Context(), c.GetString(userIDKey), services.UploadRequest{
		Name:     req.Name,
		Type:     req.Type,
		ParentID: req.ParentID,
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}

	c.JSON(http.StatusCreated, file)
}

func (s *HTTPServer) getFile(c *gin.Context) {
	file, err := s.files.Get(c.Request.Context(), c.GetString(userIDKey), c.Param("id"))
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

func (s *HTTPServer) listFiles(c *gin.Context) {
	parent := models.ParseParentRef(c.Query("parentId"))

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 0
	}

	result, err := s.files.List(c.Request.Context(), c.GetString(userIDKey), parent, page)
	if err != nil {
		abortWithError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
