package server

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/alfredjeanlab/gazette/internal/model"
)

// handleHome handles GET /. The home page shows at most HomePageSize news
// items, newest first.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	items, total, err := s.store.ListNews(r.Context(), model.NewsFilter{Limit: HomePageSize})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list news")
		return
	}

	if items == nil {
		items = []*model.News{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"news":  items,
		"total": total,
	})
}

// handleListNews handles GET /news: the full archive with limit/offset paging.
func (s *Server) handleListNews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.NewsFilter{}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	items, total, err := s.store.ListNews(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list news")
		return
	}

	if items == nil {
		items = []*model.News{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"news":  items,
		"total": total,
	})
}

// handleGetNews handles GET /news/{id}. The response includes the full
// comment thread, oldest first, and whether the caller may post a comment.
func (s *Server) handleGetNews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "news not found")
		return
	}

	news, err := s.store.GetNews(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "news not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get news")
		return
	}

	if news.Comments == nil {
		news.Comments = []*model.Comment{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"news":        news,
		"can_comment": s.currentUser(r) != nil,
	})
}

