package rest

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/gin-gonic/gin"
)

// userView is a user without the password digest.
type userView struct {
	ID       int64  `json:"user_id"`
	UserName string `json:"user_name"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *Server) createUser(c *gin.Context) {
	var req credentialsRequest
	if err := decode(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	u, err := s.users.Register(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) listUsers(c *gin.Context) {
	list, err := s.users.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]userView, 0, len(list))
	for _, u := range list {
		out = append(out, userView{ID: u.ID, UserName: u.UserName})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) updateUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}

	var req credentialsRequest
	if err := decode(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	u, err := s.users.Update(c.Request.Context(), identity(c), id, req.UserName, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) deleteUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}

	if err := s.users.Delete(c.Request.Context(), identity(c), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nil)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", errMalformedBody, err))
		return
	}
	if req.name() == "" {
		s.fail(c, common.ErrAuthenticationFailed)
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.name(), req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) currentUser(c *gin.Context) {
	u := identity(c)
	if u == nil {
		s.fail(c, common.ErrInvalidCredentials)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": u.UserName})
}
