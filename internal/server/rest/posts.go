package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listPosts(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}

	list, err := s.posts.List(c.Request.Context(), userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createPost(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}

	var req postRequest
	if err := decode(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	p, err := s.posts.Create(c.Request.Context(), identity(c), userID, req.Contents)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) updatePost(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	postID, err := pathID(c, "post_id")
	if err != nil {
		s.fail(c, err)
		return
	}

	var req postRequest
	if err := decode(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	p, err := s.posts.Update(c.Request.Context(), identity(c), userID, postID, req.Contents)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deletePost(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}
	postID, err := pathID(c, "post_id")
	if err != nil {
		s.fail(c, err)
		return
	}

	if err := s.posts.Delete(c.Request.Context(), identity(c), userID, postID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nil)
}
