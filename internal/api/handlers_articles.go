// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/copurchase"
)

// ArticlesRequest holds the validated query of GET /articles.
type ArticlesRequest struct {
	Macro   string  `json:"macro" validate:"omitempty,macro"`
	Gender  string  `json:"gender" validate:"omitempty,oneof=women men kids"`
	Exclude []int64 `json:"exclude" validate:"dive,article_id"`
	Limit   int     `json:"limit" validate:"min=1,max=500"`
	Offset  int     `json:"offset" validate:"min=0"`
}

// PartnersRequest holds the validated query of GET /articles/{id}/partners.
type PartnersRequest struct {
	Limit int `json:"limit" validate:"min=1,max=200"`
}

type partnerView struct {
	copurchase.Partner
	Article *articleView `json:"article,omitempty"`
}

// ListArticles filters the catalog by macro-category and gender.
//
// Query parameters: macro, gender, exclude (comma-separated ids),
// limit (default 50, max 500), offset.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ArticlesRequest{
		Macro:  q.Get("macro"),
		Gender: strings.ToLower(strings.TrimSpace(q.Get("gender"))),
	}

	var err error
	if req.Limit, err = getIntParam(r, "limit", 50); err != nil {
		h.respondParamError(w, r, err)
		return
	}
	if req.Offset, err = getIntParam(r, "offset", 0); err != nil {
		h.respondParamError(w, r, err)
		return
	}
	if req.Exclude, err = parseCommaSeparatedIDs("exclude", q.Get("exclude")); err != nil {
		h.respondParamError(w, r, err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	ds, err := h.engine.Dataset()
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	filter := catalog.Filter{Gender: catalog.Gender(req.Gender)}
	if req.Macro != "" {
		filter.Macro, _ = catalog.ParseMacro(req.Macro)
	}
	if len(req.Exclude) > 0 {
		filter.Exclude = make(map[int64]struct{}, len(req.Exclude))
		for _, id := range req.Exclude {
			filter.Exclude[id] = struct{}{}
		}
	}

	matches := ds.Catalog.Filter(filter)
	total := len(matches)
	start := min(req.Offset, total)
	end := min(start+req.Limit, total)

	views := make([]articleView, 0, end-start)
	for _, a := range matches[start:end] {
		views = append(views, h.viewArticle(a))
	}

	meta := newMetadata(r)
	meta.Pagination = &Pagination{Limit: req.Limit, Offset: req.Offset, Total: total}
	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     views,
		Metadata: meta,
	})
}

// GetArticle returns one article with its derived attributes.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	a, ok := h.lookupArticle(w, r)
	if !ok {
		return
	}
	respondData(w, r, h.viewArticle(a))
}

// ArticlePartners lists the articles co-purchased with {id}, highest
// count first.
func (h *Handler) ArticlePartners(w http.ResponseWriter, r *http.Request) {
	a, ok := h.lookupArticle(w, r)
	if !ok {
		return
	}

	var req PartnersRequest
	var err error
	if req.Limit, err = getIntParam(r, "limit", 20); err != nil {
		h.respondParamError(w, r, err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	ds, err := h.engine.Dataset()
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	partners := ds.Index.Partners(a.ID, req.Limit)
	views := make([]partnerView, 0, len(partners))
	for _, p := range partners {
		pv := partnerView{Partner: p}
		if pa, err := ds.Catalog.Lookup(p.ID); err == nil {
			v := h.viewArticle(pa)
			pv.Article = &v
		}
		views = append(views, pv)
	}
	respondData(w, r, views)
}

// ArticleImage serves the local product image, or redirects to the remote
// image location. A missing image is a 404.
func (h *Handler) ArticleImage(w http.ResponseWriter, r *http.Request) {
	a, ok := h.lookupArticle(w, r)
	if !ok {
		return
	}

	if path, ok := h.images.LocalPath(a.ID); ok {
		w.Header().Set("Cache-Control", "public, max-age=604800")
		http.ServeFile(w, r, path)
		return
	}
	if u := h.images.URL(a.ID); u != "" {
		http.Redirect(w, r, u, http.StatusFound)
		return
	}
	respondError(w, r, http.StatusNotFound, CodeImageNotFound, "No image for article "+a.Code(), nil)
}

// lookupArticle resolves the {id} path parameter, writing the error
// response itself when it fails.
func (h *Handler) lookupArticle(w http.ResponseWriter, r *http.Request) (*catalog.Article, bool) {
	id, err := articleIDParam(r)
	if err != nil {
		h.respondParamError(w, r, err)
		return nil, false
	}
	ds, err := h.engine.Dataset()
	if err != nil {
		respondDomainError(w, r, err)
		return nil, false
	}
	a, err := ds.Catalog.Lookup(id)
	if err != nil {
		respondDomainError(w, r, err)
		return nil, false
	}
	return a, true
}

func (h *Handler) respondParamError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *paramError
	if errors.As(err, &pe) {
		respondErrorDetails(w, r, http.StatusBadRequest, pe.apiError(), nil)
		return
	}
	respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil)
}
