package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"audimew-storefront/internal/member"
)

type checkIDRequest struct {
	UserID string `json:"userId"`
}

// CheckID handles POST /api/member/check-id. A free ID is remembered on the
// session until the signup form is submitted.
func (h *Handler) CheckID(c *gin.Context) {
	var req checkIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": member.MsgIDEmpty})
		return
	}

	free, err := h.remote.CheckID(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	sess := currentSession(c)
	if !free {
		sess.MarkIDChecked("")
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "아이디가 중복되었습니다. 다른 아이디를 사용해주세요."})
		return
	}
	sess.MarkIDChecked(userID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "아이디가 사용 가능합니다."})
}

// Signup handles POST /api/member/signup.
func (h *Handler) Signup(c *gin.Context) {
	var form member.SignupForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	sess := currentSession(c)
	if err := form.Validate(sess.IDChecked(strings.TrimSpace(form.UserID))); err != nil {
		var verr *member.ValidationError
		if errors.As(err, &verr) {
			body := gin.H{"error": verr.Message}
			if msg := form.PhoneMessage(); msg != "" {
				body["phoneMessage"] = msg
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, body)
			return
		}
		h.fail(c, err)
		return
	}

	res, err := h.remote.Register(c.Request.Context(), form.Request())
	if err != nil {
		h.fail(c, err)
		return
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "회원가입에 실패했습니다."
		}
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"success": false, "error": msg})
		return
	}

	sess.MarkIDChecked("")
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "회원가입이 완료되었습니다!", "redirect": loginPath})
}

type loginRequest struct {
	UserID string `json:"userId" binding:"required"`
	UserPw string `json:"userPw" binding:"required"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.remote.Login(c.Request.Context(), req.UserID, req.UserPw)
	if err != nil {
		h.fail(c, err)
		return
	}

	sess := currentSession(c)
	sess.SignIn(*res)
	h.log.Info("member logged in", zap.String("user", res.User.UserID), zap.String("session", sess.ID))
	c.JSON(http.StatusOK, gin.H{"user": sess.User()})
}

// Logout handles POST /api/auth/logout. The session is cleared even when the
// storefront API cannot revoke the refresh token.
func (h *Handler) Logout(c *gin.Context) {
	sess := currentSession(c)
	refresh := sess.SignOut()
	if refresh != "" {
		if err := h.remote.Logout(c.Request.Context(), refresh); err != nil {
			h.log.Warn("failed to revoke refresh token", zap.String("session", sess.ID), zap.Error(err))
		}
	}
	c.Status(http.StatusNoContent)
}
