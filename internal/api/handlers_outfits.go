// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/middleware"
	"github.com/tomtom215/outfitter/internal/recommend"
	"github.com/tomtom215/outfitter/internal/recommend/scoring"
)

// maxOutfitBodyBytes bounds POST /outfits bodies.
const maxOutfitBodyBytes = 64 << 10

// OutfitOptions are the request options shared by the GET and POST
// outfit endpoints.
type OutfitOptions struct {
	PerCategory  int      `json:"per_category" validate:"gte=0"`
	Targets      []string `json:"targets" validate:"max=5,dive,macro"`
	Exclude      []int64  `json:"exclude" validate:"dive,article_id"`
	Seed         int64    `json:"seed"`
	Weather      string   `json:"weather" validate:"omitempty,weather"`
	Place        string   `json:"place" validate:"max=100"`
	MergeSimilar bool     `json:"merge_similar"`
}

// OutfitRequest is the body of POST /outfits. Exactly one of BaseID and
// Upload names the base item; Upload wins when both are set.
type OutfitRequest struct {
	BaseID int64             `json:"base_id" validate:"omitempty,article_id"`
	Upload *recommend.Upload `json:"upload"`
	OutfitOptions
}

type candidateView struct {
	Article    articleView          `json:"article"`
	Count      int64                `json:"count"`
	Provenance recommend.Provenance `json:"provenance"`
	Score      scoring.Breakdown    `json:"score"`
	Display    float64              `json:"display_score"`
}

type categoryView struct {
	Macro catalog.Macro   `json:"macro_category"`
	Items []candidateView `json:"items"`
}

type outfitView struct {
	Base           articleView                `json:"base"`
	Categories     []categoryView             `json:"categories"`
	Empty          bool                       `json:"empty"`
	Recommendation recommend.ResponseMetadata `json:"recommendation"`
}

// OutfitForArticle recommends an outfit around catalog article {id}.
//
// Query parameters: per_category, targets (comma-separated macro
// categories), exclude (comma-separated ids), seed, weather, place,
// merge_similar.
func (h *Handler) OutfitForArticle(w http.ResponseWriter, r *http.Request) {
	id, err := articleIDParam(r)
	if err != nil {
		h.respondParamError(w, r, err)
		return
	}

	opts, err := outfitOptionsFromQuery(r)
	if err != nil {
		h.respondParamError(w, r, err)
		return
	}
	if apiErr := validateRequest(&opts); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	h.recommend(w, r, recommend.Request{BaseID: id}, &opts)
}

// RecommendOutfit recommends an outfit for a JSON request body, which may
// describe an uploaded garment instead of a catalog article.
func (h *Handler) RecommendOutfit(w http.ResponseWriter, r *http.Request) {
	var body OutfitRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxOutfitBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "Request body must be a JSON outfit request", err)
		return
	}

	if body.Upload != nil {
		if m, ok := catalog.ParseMacro(string(body.Upload.Macro)); ok {
			body.Upload.Macro = m
		}
	} else if body.BaseID == 0 {
		respondErrorDetails(w, r, http.StatusBadRequest, &APIError{
			Code:    CodeValidation,
			Message: "base_id is required when upload is missing",
			Details: map[string]interface{}{"field": "base_id", "tag": "required_without"},
		}, nil)
		return
	}
	if apiErr := validateRequest(&body); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	h.recommend(w, r, recommend.Request{BaseID: body.BaseID, Upload: body.Upload}, &body.OutfitOptions)
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, req recommend.Request, opts *OutfitOptions) {
	req.PerCategory = opts.PerCategory
	req.Exclude = opts.Exclude
	req.Seed = opts.Seed
	req.MergeSimilar = opts.MergeSimilar
	req.RequestID = middleware.GetRequestID(r.Context())
	for _, t := range opts.Targets {
		if m, ok := catalog.ParseMacro(t); ok {
			req.Targets = append(req.Targets, m)
		}
	}

	// Validated above; an explicit condition beats a place lookup.
	req.Weather, _ = scoring.ParseCondition(opts.Weather)
	if req.Weather == scoring.ConditionNone && opts.Place != "" && h.weather != nil {
		req.Weather = h.weather.Condition(r.Context(), opts.Place)
	}

	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondData(w, r, h.viewOutfit(resp))
}

func (h *Handler) viewOutfit(resp *recommend.Response) outfitView {
	out := outfitView{
		Base:           h.viewArticle(resp.Base),
		Categories:     make([]categoryView, 0, len(resp.Categories)),
		Empty:          resp.Empty,
		Recommendation: resp.Metadata,
	}
	for _, c := range resp.Categories {
		cv := categoryView{Macro: c.Macro, Items: make([]candidateView, 0, len(c.Items))}
		for i := range c.Items {
			item := &c.Items[i]
			cv.Items = append(cv.Items, candidateView{
				Article:    h.viewArticle(item.Article),
				Count:      item.Count,
				Provenance: item.Provenance,
				Score:      item.Score,
				Display:    item.Display,
			})
		}
		out.Categories = append(out.Categories, cv)
	}
	return out
}

func outfitOptionsFromQuery(r *http.Request) (OutfitOptions, error) {
	q := r.URL.Query()
	opts := OutfitOptions{
		Targets: parseCommaSeparated(q.Get("targets")),
		Weather: q.Get("weather"),
		Place:   q.Get("place"),
	}

	var err error
	if opts.PerCategory, err = getIntParam(r, "per_category", 0); err != nil {
		return opts, err
	}
	if opts.Seed, err = getInt64Param(r, "seed"); err != nil {
		return opts, err
	}
	if opts.Exclude, err = parseCommaSeparatedIDs("exclude", q.Get("exclude")); err != nil {
		return opts, err
	}
	if v := q.Get("merge_similar"); v != "" {
		if opts.MergeSimilar, err = strconv.ParseBool(v); err != nil {
			return opts, &paramError{name: "merge_similar", value: v, want: "a boolean"}
		}
	}
	return opts, nil
}
