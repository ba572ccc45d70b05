// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/outfitter/internal/logging"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		upstream string
		wantSame bool
	}{
		{name: "generated when absent"},
		{name: "upstream id kept", upstream: "edge-1234", wantSame: true},
		{name: "oversized upstream id replaced", upstream: strings.Repeat("a", maxUpstreamIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ctxID, logReqID, correlationID string
			handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
				ctxID = GetRequestID(r.Context())
				logReqID = logging.RequestIDFromContext(r.Context())
				correlationID = logging.CorrelationIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.upstream != "" {
				req.Header.Set(RequestIDHeader, tt.upstream)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			header := rec.Header().Get(RequestIDHeader)
			if header != ctxID || header != logReqID {
				t.Errorf("header %q, context %q, logging %q should match", header, ctxID, logReqID)
			}
			if correlationID == "" {
				t.Error("correlation ID not set")
			}
			if tt.wantSame {
				if header != tt.upstream {
					t.Errorf("request ID = %q, want upstream %q", header, tt.upstream)
				}
				return
			}
			if _, err := uuid.Parse(header); err != nil {
				t.Errorf("request ID %q is not a UUID: %v", header, err)
			}
		})
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
}
