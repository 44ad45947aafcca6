package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackathonweekly/community-api/internal/api/middleware"
	"github.com/hackathonweekly/community-api/internal/service"
)

type stubVoteService struct {
	remaining *int
	err       error
}

func (s *stubVoteService) Vote(context.Context, uint, uint, uint) (*int, error) {
	return s.remaining, s.err
}

func (s *stubVoteService) Unvote(context.Context, uint, uint, uint) (*int, error) {
	return s.remaining, s.err
}

func (s *stubVoteService) RemainingVotes(context.Context, uint, uint) (*int, error) {
	return s.remaining, s.err
}

func newVoteTestRouter(svc VoteService, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if authenticated {
		router.Use(func(ctx *gin.Context) {
			ctx.Set(middleware.ContextKeyUserID, uint(42))
		})
	}

	handler := NewVoteHandler(svc)
	router.POST("/api/v1/events/:eventID/submissions/:submissionID/vote", handler.HandleVote)
	router.DELETE("/api/v1/events/:eventID/submissions/:submissionID/vote", handler.HandleUnvote)
	router.GET("/api/v1/events/:eventID/remaining-votes", handler.HandleRemainingVotes)

	return router
}

func TestVoteHandler_HandleVote(t *testing.T) {
	two := 2

	tests := []struct {
		name     string
		svc      *stubVoteService
		wantCode int
		wantBody string
	}{
		{
			name:     "vote accepted",
			svc:      &stubVoteService{remaining: &two},
			wantCode: http.StatusOK,
			wantBody: `{"remaining_votes":2}`,
		},
		{
			name:     "like mode reports null budget",
			svc:      &stubVoteService{},
			wantCode: http.StatusOK,
			wantBody: `{"remaining_votes":null}`,
		},
		{
			name:     "voting closed",
			svc:      &stubVoteService{err: service.ErrVotingClosed},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "voting not enabled",
			svc:      &stubVoteService{err: service.ErrVotingNotEnabled},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "registration required",
			svc:      &stubVoteService{err: service.ErrRegistrationRequired},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "quota exhausted",
			svc:      &stubVoteService{err: service.ErrQuotaExhausted},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "self vote",
			svc:      &stubVoteService{err: service.ErrSelfVoteForbidden},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "already voted",
			svc:      &stubVoteService{err: service.ErrAlreadyVoted},
			wantCode: http.StatusConflict,
		},
		{
			name:     "event not found",
			svc:      &stubVoteService{err: service.ErrEventNotFound},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "submission not found",
			svc:      &stubVoteService{err: service.ErrSubmissionNotFound},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newVoteTestRouter(tt.svc, true)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/events/1/submissions/10/vote", nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, resp.Body.String())
			}
		})
	}
}

func TestVoteHandler_HandleUnvote(t *testing.T) {
	one := 1

	router := newVoteTestRouter(&stubVoteService{remaining: &one}, true)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/1/submissions/10/vote", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"remaining_votes":1}`, resp.Body.String())

	router = newVoteTestRouter(&stubVoteService{err: service.ErrNotVoted}, true)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/events/1/submissions/10/vote", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestVoteHandler_Unauthenticated(t *testing.T) {
	router := newVoteTestRouter(&stubVoteService{}, false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/1/submissions/10/vote", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestVoteHandler_InvalidParams(t *testing.T) {
	router := newVoteTestRouter(&stubVoteService{}, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/not-a-number/remaining-votes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
