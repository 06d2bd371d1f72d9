package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dvega-dev/bibliago/internal/domain"
)

func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.orch.Versions(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, versions)
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.orch.Books(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	book := chi.URLParam(r, "book")
	chapter, err := strconv.Atoi(chi.URLParam(r, "chapter"))
	if err != nil || chapter < 1 {
		writeError(w, http.StatusBadRequest, "invalid chapter number")
		return
	}
	version := r.URL.Query().Get("version")
	if version == "" {
		writeError(w, http.StatusBadRequest, "version query parameter is required")
		return
	}

	content, err := s.orch.LoadChapter(r.Context(), version, book, chapter)
	if err != nil {
		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, content)
}

type downloadSummary struct {
	Attempted int `json:"attempted"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	version := chi.URLParam(r, "id")

	results, err := s.orch.DownloadVersion(r.Context(), version, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summary := downloadSummary{Attempted: len(results)}
	for _, res := range results {
		if res.Skipped {
			summary.Skipped++
		}
		if res.Err != nil {
			summary.Failed++
		}
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	version := chi.URLParam(r, "id")

	if err := s.orch.DeleteVersion(r.Context(), version); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDownloaded(w http.ResponseWriter, r *http.Request) {
	version := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, map[string]bool{
		"downloaded": s.orch.IsVersionMarked(r.Context(), version),
	})
}

func (s *Server) handleAllHighlights(w http.ResponseWriter, r *http.Request) {
	highlights, err := s.orch.GetAllHighlights(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, highlights)
}

func (s *Server) handleBookHighlights(w http.ResponseWriter, r *http.Request) {
	highlights, err := s.orch.GetHighlightsForBook(r.Context(), chi.URLParam(r, "book"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, highlights)
}

// verseQuery extracts the (version, book, chapter, verse) identity common
// to the per-verse endpoints.
func verseQuery(r *http.Request) (version, book string, chapter, verse int, ok bool) {
	q := r.URL.Query()
	version = q.Get("version")
	book = q.Get("book")
	chapter, errCh := strconv.Atoi(q.Get("chapter"))
	verse, errVs := strconv.Atoi(q.Get("verse"))
	ok = version != "" && book != "" && errCh == nil && errVs == nil && chapter > 0 && verse > 0
	return
}

func (s *Server) handleVerseHighlight(w http.ResponseWriter, r *http.Request) {
	version, book, chapter, verse, ok := verseQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "version, book, chapter and verse are required")
		return
	}

	highlight, err := s.orch.GetHighlightForVerse(r.Context(), version, book, chapter, verse)
	if err != nil {
		if errors.Is(err, domain.ErrHighlightNotFound) {
			writeError(w, http.StatusNotFound, "no highlight for verse")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, highlight)
}

func (s *Server) handleSaveHighlight(w http.ResponseWriter, r *http.Request) {
	var input domain.HighlightInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	highlight, err := s.orch.SaveHighlight(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, highlight)
}

func (s *Server) handleRemoveHighlight(w http.ResponseWriter, r *http.Request) {
	version, book, chapter, verse, ok := verseQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "version, book, chapter and verse are required")
		return
	}

	if err := s.orch.RemoveHighlight(r.Context(), version, book, chapter, verse); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleConcordance(w http.ResponseWriter, r *http.Request) {
	version, book, chapter, verse, ok := verseQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "version, book, chapter and verse are required")
		return
	}

	content, err := s.orch.LoadChapter(r.Context(), version, book, chapter)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	var refs []domain.Reference
	for _, rec := range content {
		if rec.Kind == domain.KindVerse && rec.Number == verse {
			refs = rec.References
			break
		}
	}

	writeJSON(w, http.StatusOK, s.orch.ResolveReferences(r.Context(), version, refs))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	book := q.Get("book")
	chapter, errCh := strconv.Atoi(q.Get("chapter"))
	verse, errVs := strconv.Atoi(q.Get("verse"))
	if book == "" || errCh != nil || errVs != nil || chapter < 1 || verse < 1 {
		writeError(w, http.StatusBadRequest, "book, chapter and verse are required")
		return
	}

	var ids []string
	if raw := q.Get("versions"); raw != "" {
		ids = strings.Split(raw, ",")
	} else {
		versions, err := s.orch.Versions(r.Context())
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		for _, v := range versions {
			ids = append(ids, v.Abbreviation)
		}
	}

	writeJSON(w, http.StatusOK, s.orch.CompareVerse(r.Context(), book, chapter, verse, ids))
}
