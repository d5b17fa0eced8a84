package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"audimew-storefront/internal/member"
	"audimew-storefront/internal/model"
	"audimew-storefront/internal/session"
)

// profile loads the profile of the :userId path member after checking the
// session belongs to them.
func (h *Handler) profile(c *gin.Context) (*session.Session, *model.Profile, bool) {
	sess := currentSession(c)
	userID := c.Param("userId")
	if err := session.Authorize(sess, userID); err != nil {
		h.fail(c, err)
		return nil, nil, false
	}
	p, err := h.remote.Profile(c.Request.Context(), sess.AccessToken(), userID)
	if err != nil {
		h.fail(c, err)
		return nil, nil, false
	}
	return sess, p, true
}

// GetMyPage handles GET /api/mypage/{userId}.
func (h *Handler) GetMyPage(c *gin.Context) {
	_, p, ok := h.profile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         p.User,
		"profileImage": h.remote.ProfileImageURL(p.ProfileImage),
		"points":       member.PointHistory(p.Points, p.TotalPoint, 1),
		"reviews":      member.ReviewHistory(p.Reviews, 1),
	})
}

// GetPoints handles GET /api/mypage/{userId}/points?page=.
func (h *Handler) GetPoints(c *gin.Context) {
	_, p, ok := h.profile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, member.PointHistory(p.Points, p.TotalPoint, pageQuery(c)))
}

// GetReviews handles GET /api/mypage/{userId}/reviews?page=.
func (h *Handler) GetReviews(c *gin.Context) {
	_, p, ok := h.profile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, member.ReviewHistory(p.Reviews, pageQuery(c)))
}

// DeleteReview handles DELETE /api/mypage/{userId}/reviews/{reviewNo}.
func (h *Handler) DeleteReview(c *gin.Context) {
	sess := currentSession(c)
	if err := session.Authorize(sess, c.Param("userId")); err != nil {
		h.fail(c, err)
		return
	}
	reviewNo, err := strconv.ParseInt(c.Param("reviewNo"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid reviewNo"})
		return
	}

	deleted, err := h.remote.DeleteReview(c.Request.Context(), sess.AccessToken(), reviewNo)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !deleted {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "리뷰 삭제에 실패했습니다!!!"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "리뷰가 삭제되었습니다!!!"})
}

// PutProfileImage handles PUT /api/mypage/{userId}/profile-image with a
// multipart profileImage file.
func (h *Handler) PutProfileImage(c *gin.Context) {
	h.changeProfileImage(c, "프로필 이미지가 변경되었습니다.", "프로필 이미지 변경에 실패했습니다.",
		func(ctx context.Context, sess *session.Session, userID string) error {
			fh, err := c.FormFile("profileImage")
			if err != nil {
				return errBadUpload
			}
			f, err := fh.Open()
			if err != nil {
				return errBadUpload
			}
			defer f.Close()
			return h.remote.UpdateProfileImage(ctx, sess.AccessToken(), userID, fh.Filename, f)
		})
}

// DeleteProfileImage handles DELETE /api/mypage/{userId}/profile-image.
func (h *Handler) DeleteProfileImage(c *gin.Context) {
	h.changeProfileImage(c, "프로필 이미지가 삭제되었습니다.", "프로필 이미지 삭제에 실패했습니다.",
		func(ctx context.Context, sess *session.Session, userID string) error {
			return h.remote.DeleteProfileImage(ctx, sess.AccessToken(), userID)
		})
}

func (h *Handler) changeProfileImage(c *gin.Context, okMsg, failMsg string, change func(context.Context, *session.Session, string) error) {
	sess := currentSession(c)
	userID := c.Param("userId")
	if err := session.Authorize(sess, userID); err != nil {
		h.fail(c, err)
		return
	}

	if err := change(c.Request.Context(), sess, userID); err != nil {
		if errors.Is(err, errBadUpload) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "profileImage is required"})
			return
		}
		h.log.Error("profile image change failed", zap.String("user", userID), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": failMsg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": okMsg})
}
