package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agrilink/backend/internal/middleware"
	"github.com/agrilink/backend/internal/models"
	"github.com/agrilink/backend/internal/moderation"
	"github.com/agrilink/backend/internal/services"
)

type ForumHandler struct {
	postService *services.MongoPostService
	userService *services.MongoUserService
	scanner     *moderation.Scanner
}

func NewForumHandler(postService *services.MongoPostService, userService *services.MongoUserService, scanner *moderation.Scanner) *ForumHandler {
	return &ForumHandler{
		postService: postService,
		userService: userService,
		scanner:     scanner,
	}
}

func (h *ForumHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, ok := h.moderate(ctx, w, userID, req.Content, req.Title)
	if !ok {
		return
	}

	post, err := h.postService.Create(ctx, userID, user.Name, &req)
	if err != nil {
		log.Printf("[CreatePost] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create post"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(post))
}

func (h *ForumHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	post, err := h.postService.GetByID(ctx, postID)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}

func (h *ForumHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tag := query.Get("tag")

	limit := 50
	if rawLimit := query.Get("limit"); rawLimit != "" {
		if v, err := strconv.Atoi(rawLimit); err == nil && v > 0 {
			limit = v
		}
	}

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	posts, err := h.postService.List(ctx, tag, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list posts"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(posts))
}

func (h *ForumHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID := chi.URLParam(r, "postId")

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := h.postService.Delete(ctx, userID, postID)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		if err == services.ErrUnauthorized {
			writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Not authorized to delete this post"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Post deleted successfully"}))
}

func (h *ForumHandler) UpvotePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID := chi.URLParam(r, "postId")

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	upvotes, err := h.postService.Upvote(ctx, userID, postID)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to upvote post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]int{"upvotes": upvotes}))
}

func (h *ForumHandler) AddReply(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	postID := chi.URLParam(r, "postId")

	var req models.CreateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, ok := h.moderate(ctx, w, userID, req.Content, "")
	if !ok {
		return
	}

	reply, err := h.postService.AddReply(ctx, userID, user.Name, postID, &req)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		log.Printf("[AddReply] user=%s post=%s error=%v", userID, postID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to add reply"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(reply))
}

func (h *ForumHandler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID := chi.URLParam(r, "postId")
	replyID := chi.URLParam(r, "replyId")

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := h.postService.DeleteReply(ctx, userID, postID, replyID)
	if err != nil {
		if err == services.ErrReplyNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Reply not found"))
			return
		}
		if err == services.ErrUnauthorized {
			writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Not authorized to delete this reply"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete reply"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Reply deleted successfully"}))
}

// ModerationStatus lets a user see their own warning count and block state.
func (h *ForumHandler) ModerationStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	state, err := h.userService.LoadModerationState(ctx, userID)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load moderation status"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(state))
}
