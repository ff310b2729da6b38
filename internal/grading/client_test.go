package grading

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrade_Success(t *testing.T) {
	var gotAPIKey string
	var gotFields []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("x-api-key")

		require.NoError(t, r.ParseMultipartForm(10<<20))
		for field := range r.MultipartForm.File {
			gotFields = append(gotFields, field)
		}

		result := model.GradeResult{
			StudentInfo: model.StudentInfo{Name: "Alice", RegistrationNumber: "42"},
			Answers: []model.AnswerEvaluation{
				{QuestionNumber: 1, MarksAwarded: 8, MaxMarks: 10, Justification: "mostly correct"},
			},
		}
		json.NewEncoder(w).Encode(result)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-key", 5*time.Second)
	result, err := c.Grade(context.Background(),
		strings.NewReader("%PDF-student"), "answers.pdf",
		strings.NewReader("%PDF-key"), "key.pdf")
	require.NoError(t, err)

	assert.Equal(t, "secret-key", gotAPIKey)
	assert.ElementsMatch(t, []string{"student_pdf", "qp_or_key_pdf"}, gotFields)
	assert.Equal(t, "Alice", result.StudentInfo.Name)
	require.Len(t, result.Answers, 1)
	assert.Equal(t, 1, result.Answers[0].QuestionNumber)
	assert.Equal(t, 8.0, result.Answers[0].MarksAwarded)
}

func TestGrade_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 5*time.Second)
	_, err := c.Grade(context.Background(),
		strings.NewReader("a"), "a.pdf",
		strings.NewReader("b"), "b.pdf")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "model overloaded")
	assert.False(t, errors.Is(err, ErrNoResponse))
}

func TestGrade_NoResponse(t *testing.T) {
	// A closed server gives connection refused: no response at all.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "k", time.Second)
	_, err := c.Grade(context.Background(),
		strings.NewReader("a"), "a.pdf",
		strings.NewReader("b"), "b.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestGrade_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 5*time.Second)
	_, err := c.Grade(context.Background(),
		strings.NewReader("a"), "a.pdf",
		strings.NewReader("b"), "b.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadResponse)
	assert.False(t, errors.Is(err, ErrNoResponse))

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}
